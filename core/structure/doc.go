// Package structure models the secondary-structure components of one RNA
// molecule as annotated by bpRNA: stems, hairpins, bulges, internal loops,
// multiloops, external loops, ends and non-canonical base pairs.
//
// A Structure aggregates the typed records, maintains the per-nucleotide
// component array, resolves which components flank each other, and evaluates
// nearest-neighbor free energies for the four kinds that carry a model
// (stems, hairpins, bulges, internal loops).
//
// A Structure is built single-threaded by a loader. Once loaded and resolved
// it is safe for concurrent readers, including concurrent Energy calls.
package structure
