// internal/writers/msgpack.go
package writers

import (
	"bufio"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// NewMsgpackEncoder returns an encoder that reuses the v1 json tags as
// msgpack keys, so both encodings share one schema.
func NewMsgpackEncoder(w io.Writer) *msgpack.Encoder {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc
}

// NewMsgpackDecoder is the decoding counterpart of NewMsgpackEncoder.
func NewMsgpackDecoder(r io.Reader) *msgpack.Decoder {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	return dec
}

// streamMsgpack encodes each value from in as one msgpack object; the output
// is a concatenated msgpack stream.
func streamMsgpack[T any, V any](out io.Writer, in <-chan T, conv func(T) V) error {
	bw := bufio.NewWriter(out)
	enc := NewMsgpackEncoder(bw)
	for v := range in {
		if err := enc.Encode(conv(v)); err != nil {
			drain(in)
			return err
		}
	}
	return bw.Flush()
}

func drain[T any](in <-chan T) {
	for range in {
	}
}
