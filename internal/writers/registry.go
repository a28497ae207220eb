// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
)

// Writer registries (format → handler), filled in init() blocks by the
// energy, component and document writer files.
var (
	EnergyWriters    = map[string]func(w io.Writer, data interface{}) error{}
	ComponentWriters = map[string]func(w io.Writer, data interface{}) error{}
	DocumentWriters  = map[string]func(w io.Writer, data interface{}) error{}
)

// Register helpers (idempotent last-wins)
func RegisterEnergy(format string, fn func(io.Writer, interface{}) error)    { EnergyWriters[format] = fn }
func RegisterComponent(format string, fn func(io.Writer, interface{}) error) { ComponentWriters[format] = fn }
func RegisterDocument(format string, fn func(io.Writer, interface{}) error)  { DocumentWriters[format] = fn }

func dispatch(reg map[string]func(io.Writer, interface{}) error, family, format string, w io.Writer, payload interface{}) error {
	fn, ok := reg[format]
	if !ok {
		return fmt.Errorf("unknown %s format %q (no writer registered)", family, format)
	}
	return fn(w, payload)
}

func WriteEnergy(format string, w io.Writer, payload interface{}) error {
	return dispatch(EnergyWriters, "energy", format, w, payload)
}

func WriteComponent(format string, w io.Writer, payload interface{}) error {
	return dispatch(ComponentWriters, "component", format, w, payload)
}

func WriteDocument(format string, w io.Writer, payload interface{}) error {
	return dispatch(DocumentWriters, "document", format, w, payload)
}
