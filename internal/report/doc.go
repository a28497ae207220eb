// Package report evaluates and summarizes a loaded structure.
//
// Evaluation fans the evaluable records (stems, hairpins, bulges, internal
// loops) out to a bounded worker pool. Records are independent and read-only
// after loading, so workers share the Structure without locking. A record
// that cannot be evaluated yields a Result carrying its error; it never
// aborts the run.
package report
