// core/structure/component.go
package structure

import (
	"math"

	"bprna-core/params"
)

// Component is any record held by a Structure.
type Component interface {
	Label() string
	Kind() Kind
	// Spans lists the nucleotide ranges the component occupies in the
	// component array. NCBPs occupy none.
	Spans() []Span
	String() string
}

// Evaluable is a component with a nearest-neighbor energy model.
type Evaluable interface {
	Component
	Energy(opt EnergyOptions) (float64, error)
	Canonical(set *params.Set) bool
}

// EnergyOptions selects the evaluation mode. The zero value is strict mode
// against params.Default().
type EnergyOptions struct {
	// Lenient substitutes zero (or the general loop formula) for missing
	// table entries instead of failing.
	Lenient bool
	// Intermolecular adds the duplex initiation term to stems.
	Intermolecular bool
	Params         *params.Set
}

func (o EnergyOptions) set() *params.Set {
	if o.Params != nil {
		return o.Params
	}
	return params.Default()
}

func paramsOrDefault(s *params.Set) *params.Set {
	if s != nil {
		return s
	}
	return params.Default()
}

// loopInit returns the tabulated initiation for n, or extrapolates
// logarithmically from the reference length.
func loopInit(lookup func(int) (float64, bool), n, ref int, coeff float64) (float64, bool) {
	if v, ok := lookup(n); ok {
		return v, true
	}
	base, ok := lookup(ref)
	if !ok {
		return 0, false
	}
	return base + coeff*math.Log(float64(n)/float64(ref)), true
}

// reverse assumes ASCII sequences.
func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
