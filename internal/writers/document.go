// internal/writers/document.go
package writers

import (
	"encoding/json"
	"io"

	"bprna/internal/output"
)

// Document is a single v1 value (summary, export, neighbor list) with its
// text rendering.
type Document struct {
	Value any
	Text  func(io.Writer) error
}

func init() {
	RegisterDocument(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		return output.WriteJSON(w, payload.(Document).Value)
	})
	RegisterDocument(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		return json.NewEncoder(w).Encode(payload.(Document).Value)
	})
	RegisterDocument(output.FormatMsgpack, func(w io.Writer, payload interface{}) error {
		return NewMsgpackEncoder(w).Encode(payload.(Document).Value)
	})
	RegisterDocument(output.FormatText, func(w io.Writer, payload interface{}) error {
		return payload.(Document).Text(w)
	})
}

// WriteDoc renders d in format.
func WriteDoc(out io.Writer, format string, d Document) error {
	return WriteDocument(format, out, d)
}
