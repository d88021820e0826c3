// Package codec implements spec.md §4.E/§4.F: encoding and decoding a
// tagged record's fields to and from the wire format described by
// SPEC_FULL.md §5, driven by a descriptor.Descriptor.
//
// The wire is always big-endian (spec.md §9 forecloses the endianness
// negotiation the teacher codec offers for TSDB blobs); every primitive
// read/write below hardcodes encoding/binary.BigEndian rather than
// threading an endian.EndianEngine through the call chain.
package codec

import (
	"encoding/binary"
	"io"
)

func writeUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func readUint8(r io.Reader, buf []byte) (uint8, error) {
	if _, err := io.ReadFull(r, buf[:1]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint16(r io.Reader, buf []byte) (uint16, error) {
	if _, err := io.ReadFull(r, buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:2]), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader, buf []byte) (uint32, error) {
	if _, err := io.ReadFull(r, buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:4]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint64(r io.Reader, buf []byte) (uint64, error) {
	if _, err := io.ReadFull(r, buf[:8]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:8]), nil
}

// writeString writes s as a 2-byte big-endian length followed by its UTF-8
// bytes — the same on-wire shape as java.io.DataOutput.writeUTF, minus its
// modified-UTF-8 surrogate-pair encoding of the high code points. Both ends
// of every stream this package produces are this codec, so plain UTF-8 is
// self-consistent; see DESIGN.md for the departure from strict Java
// interop this implies for embedded NUL / astral characters.
func writeString(w io.Writer, s string) error {
	if len(s) > 0xFFFF {
		return errStringTooLong
	}
	if err := writeUint16(w, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader, scratch []byte) (string, error) {
	n, err := readUint16(r, scratch)
	if err != nil {
		return "", err
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}

	return string(buf), nil
}
