package codec

import (
	"fmt"
	"io"

	"github.com/dba-c24/extern/wire"
)

// Introspect reads one record from r and writes a human-readable field
// listing to w — index, wire tag name, and payload byte length — without
// needing the record's concrete Go type. It exists for the extern-dump
// CLI, where the operator is often looking at a stream produced by a
// version of the program whose types aren't available locally.
func (c *Codec) Introspect(r io.Reader, w io.Writer) error {
	buf := make([]byte, 8)

	count, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "record: %d field(s)\n", count)

	for i := 0; i < int(count); i++ {
		idx, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		tagByte, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		tag := wire.Tag(tagByte)
		if !wire.Known(tag) {
			return fmt.Errorf("field %d: %w: %d", idx, errNotSkippable, tagByte)
		}

		counted := &countingReader{r: r}
		if err := c.discardByTag(counted, buf, tag); err != nil {
			return err
		}

		fmt.Fprintf(w, "  [%3d] %-24s %d byte(s)\n", idx, tag, counted.n)
	}

	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
