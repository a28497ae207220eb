// core/structure/errors.go
package structure

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLabel: the label's sigil names no component kind.
	ErrUnknownLabel = errors.New("unknown component label")
	// ErrNotFound: the sigil is valid but no such record exists.
	ErrNotFound = errors.New("component not found")
	// ErrUndefinedEnergy: the energy model has no value for this record.
	ErrUndefinedEnergy = errors.New("undefined energy")
	// ErrNoNeighbors: multiloops and NCBPs carry no neighbor data.
	ErrNoNeighbors = errors.New("no neighbor data for component kind")
	// ErrNoArray: records were added before the molecule length was known.
	ErrNoArray = errors.New("component array not allocated")
	// ErrOverlap: a span covers a position another component already owns.
	ErrOverlap = errors.New("position already assigned")
)

// EnergyError explains why a record's energy is undefined.
type EnergyError struct {
	Label  string
	Reason string
}

func (e *EnergyError) Error() string { return "energy " + e.Label + ": " + e.Reason }

func (e *EnergyError) Unwrap() error { return ErrUndefinedEnergy }

func undefined(label, format string, args ...any) error {
	return &EnergyError{Label: label, Reason: fmt.Sprintf(format, args...)}
}
