// internal/output/json.go
package output

import (
	"io"

	"bprna/internal/jsonutil"
)

// WriteJSON writes any v1 value (or slice of them) as pretty-indented JSON.
func WriteJSON(w io.Writer, v any) error {
	return jsonutil.EncodePretty(w, v)
}
