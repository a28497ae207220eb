// internal/writers/component.go
package writers

import (
	"encoding/json"
	"io"

	"bprna/internal/output"
	"bprna/pkg/api"
)

type componentArgs struct {
	Header bool
	List   []api.ComponentV1
}

func init() {
	RegisterComponent(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		return output.WriteJSON(w, payload.(componentArgs).List)
	})

	RegisterComponent(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		enc := json.NewEncoder(w)
		for _, v := range payload.(componentArgs).List {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	})

	RegisterComponent(output.FormatMsgpack, func(w io.Writer, payload interface{}) error {
		enc := NewMsgpackEncoder(w)
		for _, v := range payload.(componentArgs).List {
			if err := enc.Encode(v); err != nil {
				return err
			}
		}
		return nil
	})

	RegisterComponent(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(componentArgs)
		return output.WriteComponentsText(w, args.List, args.Header)
	})
}

// WriteComponents renders already-converted component records.
func WriteComponents(out io.Writer, format string, header bool, list []api.ComponentV1) error {
	return WriteComponent(format, out, componentArgs{Header: header, List: list})
}
