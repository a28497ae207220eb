// core/params/constants.go
package params

// Thermodynamic constants shared by every energy term.
const (
	R = 0.001987204258 // gas constant, kcal/(K·mol)
	T = 310.15         // 37 °C in kelvin

	IntermolecularInit = 4.09

	StemSymmetryPenalty   = 0.43
	StemTerminalAUPenalty = 0.45

	InternalAsymmetryPenalty  = 0.6
	InternalTerminalAUPenalty = 0.7

	BulgeSpecialC = -0.9

	HairpinUUGAFirstMismatch = -0.9
	HairpinGGFirstMismatch   = -0.8
	HairpinSpecialGUClosure  = -2.2
	HairpinC3Loop            = 1.5
	HairpinCLoopA            = 0.3
	HairpinCLoopB            = 1.6

	// Jacobson-Stockmayer style extrapolation for loops beyond the tables.
	LoopExtrapolation     = 1.75 // × R·T, hairpins and bulges
	InternalExtrapolation = 1.08
)

// Reference lengths the extrapolation formulas scale from.
const (
	HairpinReferenceLen  = 9
	BulgeReferenceLen    = 6
	InternalReferenceLen = 6
)
