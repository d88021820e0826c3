package extern

import (
	"bytes"

	"github.com/dba-c24/extern/codec"
)

// defaultCodec is the package-level Codec used by Marshal and Unmarshal:
// no ObjectCodec, and a private Registry that nothing registers into, so
// Externalizable types are written and matched under their default wire
// names (package path + type name). Explicit wire names need a
// caller-built codec.Codec.
var defaultCodec = codec.New()

// Marshal encodes rec to its wire representation.
func Marshal(rec any) ([]byte, error) {
	var buf bytes.Buffer
	if err := defaultCodec.Encode(&buf, rec); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data into out, a pointer to a wire-tagged struct.
func Unmarshal(data []byte, out any) error {
	return defaultCodec.Decode(bytes.NewReader(data), out)
}
