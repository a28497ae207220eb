// pkg/api/structure_v1.go
package api

// Wire types for JSON, JSONL and msgpack output.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".

// SpanV1 is a 1-based inclusive nucleotide range.
type SpanV1 struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// ClosingV1 is a closing base pair and its two positions.
type ClosingV1 struct {
	Pair  string `json:"pair"`
	Five  int    `json:"five"`
	Three int    `json:"three"`
}

type NeighborsV1 struct {
	FivePrime  string `json:"five_prime"`
	ThreePrime string `json:"three_prime"`
}

// ComponentV1 is one structural record. Stems and internal loops carry two
// spans, sequences and neighbor pairs (outer first).
type ComponentV1 struct {
	Label     string        `json:"label"`
	Kind      string        `json:"kind"`
	Spans     []SpanV1      `json:"spans,omitempty"`
	Sequences []string      `json:"sequences,omitempty"`
	Closing   []ClosingV1   `json:"closing,omitempty"`
	Neighbors []NeighborsV1 `json:"neighbors,omitempty"`
	PK        string        `json:"pk,omitempty"`
	Subunits  []string      `json:"subunits,omitempty"` // multiloop
	Pair      string        `json:"pair,omitempty"`     // ncbp
	Parent    string        `json:"parent,omitempty"`   // ncbp
}

// EnergyV1 is the free-energy result of one evaluable record, in kcal/mol.
// Energy is absent when the record could not be evaluated; Error says why.
type EnergyV1 struct {
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Energy    *float64 `json:"energy,omitempty"`
	Canonical bool     `json:"canonical"`
	Error     string   `json:"error,omitempty"`
}

// SummaryV1 describes a loaded structure file.
type SummaryV1 struct {
	Source      string         `json:"source,omitempty"`
	Name        string         `json:"name"`
	Length      int            `json:"length"`
	PageNumber  int            `json:"page_number"`
	Counts      map[string]int `json:"counts"`
	Evaluated   int            `json:"evaluated"`
	Failed      int            `json:"failed,omitempty"`
	TotalEnergy float64        `json:"total_energy"`
	Params      string         `json:"params"`
}

// StructureV1 is the full export of a structure file.
type StructureV1 struct {
	Name           string        `json:"name"`
	Length         int           `json:"length"`
	PageNumber     int           `json:"page_number"`
	Sequence       string        `json:"sequence"`
	DotBracket     string        `json:"dot_bracket"`
	StructureArray string        `json:"structure_array"`
	Varna          string        `json:"varna"`
	ComponentArray []string      `json:"component_array"`
	Components     []ComponentV1 `json:"components"`
}
