// Package objfallback implements codec.ObjectCodec on top of msgpack,
// giving the wire's Object tag (29) a concrete, general-purpose encoding
// for fields whose declared type matches none of the closed set's other
// variants. msgpack was chosen because it already appears in the
// retrieval pack's ray-go-worker module for exactly this role (an opaque,
// self-describing payload codec) rather than reaching for
// encoding/gob or encoding/json, neither of which the pack uses anywhere.
package objfallback

import "github.com/vmihailenco/msgpack/v5"

// Codec adapts vmihailenco/msgpack to codec.ObjectCodec. The zero value
// is ready to use.
type Codec struct{}

// Encode marshals v with msgpack.
func (Codec) Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode unmarshals data into out with msgpack.
func (Codec) Decode(data []byte, out any) error {
	return msgpack.Unmarshal(data, out)
}
