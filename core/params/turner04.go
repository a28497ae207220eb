// core/params/turner04.go
package params

import "sync"

// Watson-Crick stacking, Turner 2004. Keys read 5'→3' along the first strand,
// e.g. {AU, CG} is 5'-AC-3'/3'-UG-5'.
var turner04Stack = map[StackKey]float64{
	{Pair("AU"), Pair("AU")}: -0.93,
	{Pair("AU"), Pair("UA")}: -1.10,
	{Pair("AU"), Pair("GC")}: -2.08,
	{Pair("AU"), Pair("CG")}: -2.24,

	{Pair("UA"), Pair("AU")}: -1.33,
	{Pair("UA"), Pair("UA")}: -0.93,
	{Pair("UA"), Pair("GC")}: -2.11,
	{Pair("UA"), Pair("CG")}: -2.35,

	{Pair("GC"), Pair("AU")}: -2.35,
	{Pair("GC"), Pair("UA")}: -2.24,
	{Pair("GC"), Pair("GC")}: -3.26,
	{Pair("GC"), Pair("CG")}: -3.42,

	{Pair("CG"), Pair("AU")}: -2.11,
	{Pair("CG"), Pair("UA")}: -2.08,
	{Pair("CG"), Pair("GC")}: -2.36,
	{Pair("CG"), Pair("CG")}: -3.26,
}

// Loop initiation by loop length.
var (
	turner04HairpinInit = map[int]float64{
		3: 5.4, 4: 5.6, 5: 5.7, 6: 5.4, 7: 6.0, 8: 5.5, 9: 6.4,
	}
	turner04BulgeInit = map[int]float64{
		1: 3.8, 2: 2.8, 3: 3.2, 4: 3.6, 5: 4.0, 6: 4.4,
	}
	turner04InternalInit = map[int]float64{
		4: 1.1, 5: 2.0, 6: 2.0,
	}
)

// First-mismatch bonuses for internal loops outside the 1x1/1x2/2x2/2x3 tables.
// Every mismatch is listed so strict evaluation never misses on this table.
var turner04MismatchOther = func() map[BasePair]float64 {
	m := make(map[BasePair]float64, 16)
	for _, a := range []byte("ACGU") {
		for _, b := range []byte("ACGU") {
			m[BasePair{a, b}] = 0
		}
	}
	m[Pair("GA")] = -1.1
	m[Pair("UU")] = -0.7
	return m
}()

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the embedded Turner 2004 subset: Watson-Crick stacking, loop
// initiation and generic internal-loop mismatches. Hairpin terminal mismatches,
// special hairpins and the small internal-loop tables are empty, so strict
// evaluation of those terms needs a parameter file (see LoadYAML).
func Default() *Set {
	defaultOnce.Do(func() {
		defaultSet = New(Tables{
			Name:          "turner2004-subset",
			Stack:         turner04Stack,
			HairpinInit:   turner04HairpinInit,
			BulgeInit:     turner04BulgeInit,
			InternalInit:  turner04InternalInit,
			MismatchOther: turner04MismatchOther,
		})
	})
	return defaultSet
}
