package output

// Output formats understood by the writers registry.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatMsgpack = "msgpack"
)

// Formats lists every supported -o value.
var Formats = []string{FormatText, FormatJSON, FormatJSONL, FormatMsgpack}

// TSV header rows. Keep these as the single source of truth; all text
// writers use them.
const (
	ComponentTSVHeader = "label\tkind\tspans\tsequences\tneighbors\textra"
	EnergyTSVHeader    = "label\tkind\tenergy\tcanonical\terror"
	NeighborTSVHeader  = "label\tside\tfive_prime\tthree_prime"
)
