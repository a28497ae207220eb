// internal/writers/energy.go
package writers

import (
	"encoding/json"
	"io"

	"bprna/internal/jsonlutil"
	"bprna/internal/output"
	"bprna/internal/report"
	"bprna/pkg/api"
)

type energyArgs struct {
	Sort   bool
	Header bool
	In     <-chan report.Result
}

func drainResults(ch <-chan report.Result) []report.Result {
	list := make([]report.Result, 0, 128)
	for r := range ch {
		list = append(list, r)
	}
	return list
}

// ordered yields results in record order when sort is set, otherwise as
// they arrive.
func ordered(in <-chan report.Result, sort bool) <-chan report.Result {
	if !sort {
		return in
	}
	list := drainResults(in)
	report.SortResults(list)
	out := make(chan report.Result, len(list))
	for _, r := range list {
		out <- r
	}
	close(out)
	return out
}

func init() {
	// JSON array
	RegisterEnergy(output.FormatJSON, func(w io.Writer, payload interface{}) error {
		args := payload.(energyArgs)
		list := drainResults(args.In)
		if args.Sort {
			report.SortResults(list)
		}
		return output.WriteJSON(w, output.ToAPIEnergies(list))
	})

	// JSONL streaming
	RegisterEnergy(output.FormatJSONL, func(w io.Writer, payload interface{}) error {
		args := payload.(energyArgs)
		pipe, done := StartEnergyJSONLWriter(w, 64)
		for r := range ordered(args.In, args.Sort) {
			pipe <- r
		}
		close(pipe)
		return <-done
	})

	// msgpack stream of EnergyV1 objects
	RegisterEnergy(output.FormatMsgpack, func(w io.Writer, payload interface{}) error {
		args := payload.(energyArgs)
		return streamMsgpack(w, ordered(args.In, args.Sort), output.ToAPIEnergy)
	})

	// TEXT/TSV
	RegisterEnergy(output.FormatText, func(w io.Writer, payload interface{}) error {
		args := payload.(energyArgs)
		rows := make(chan api.EnergyV1)
		go func() {
			defer close(rows)
			for r := range ordered(args.In, args.Sort) {
				rows <- output.ToAPIEnergy(r)
			}
		}()
		err := output.StreamEnergyText(w, rows, args.Header)
		drain(rows)
		return err
	})
}

// StartEnergyJSONLWriter streams each result as one JSON line (v1).
func StartEnergyJSONLWriter(out io.Writer, bufSize int) (chan<- report.Result, <-chan error) {
	return jsonlutil.Start[report.Result](out, bufSize,
		func(enc *json.Encoder, r report.Result) error {
			return enc.Encode(output.ToAPIEnergy(r))
		},
		IsBrokenPipe,
	)
}

// StartEnergyWriter spins up a writer goroutine for evaluation results.
// The input is always drained, even after a write error, so the producer
// never blocks; the error arrives on the returned channel once in is closed.
func StartEnergyWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- report.Result, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan report.Result, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteEnergy(format, out, energyArgs{
			Sort:   sort,
			Header: header,
			In:     in,
		})
		drain(in)
		errCh <- err
	}()
	return in, errCh
}
