package codec

import (
	"io"
	"reflect"
)

// writeSequence writes v (a slice of scalars, or a slice of slices for the
// *ArrayArray tags) as a 4-byte element count followed by each element.
// Every element that is itself an array payload (a nested slice, for the
// *ArrayArray tags) or a String/Date payload gets its own leading not-null
// flag per spec.md §6 — only a raw numeric leaf (int32, byte, double,
// float, long) is written bare. Externalizable-shaped sequences are
// handled separately by encode.go and decode.go, since their elements need a shared or
// per-element class name rather than a bare scalar write.
func writeSequence(w io.Writer, v reflect.Value) error {
	if err := writeUint32(w, uint32(v.Len())); err != nil {
		return err
	}

	for i := 0; i < v.Len(); i++ {
		ev := v.Index(i)

		if ev.Kind() == reflect.Slice {
			isNil := ev.IsNil()
			if err := writeUint8(w, boolFlag(!isNil)); err != nil {
				return err
			}
			if isNil {
				continue
			}
			if err := writeSequence(w, ev); err != nil {
				return err
			}
			continue
		}

		if isStringOrDatePayload(ev.Type()) {
			// Go's string and time.Time can't represent an on-wire null,
			// so the payload's own flag is always written true.
			if err := writeUint8(w, 1); err != nil {
				return err
			}
		}

		if err := writeScalar(w, ev); err != nil {
			return err
		}
	}

	return nil
}

func isStringOrDatePayload(t reflect.Type) bool {
	return t.Kind() == reflect.String || t == timeType
}

func boolFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// readSequenceInto is writeSequence's counterpart: target must already be
// a settable slice value (possibly of slices, for 2D array fields).
func readSequenceInto(r io.Reader, buf []byte, target reflect.Value) error {
	n, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	elemType := target.Type().Elem()
	out := reflect.MakeSlice(target.Type(), int(n), int(n))

	for i := 0; i < int(n); i++ {
		ev := out.Index(i)

		if elemType.Kind() == reflect.Slice {
			flag, err := readUint8(r, buf)
			if err != nil {
				return err
			}
			if flag == 0 {
				continue
			}
			if err := readSequenceInto(r, buf, ev); err != nil {
				return err
			}
			continue
		}

		if isStringOrDatePayload(elemType) {
			if _, err := readUint8(r, buf); err != nil {
				return err
			}
			// A false flag here would mean a null array element — Go's
			// string/time.Time can't hold that, so the zero value stands.
		}

		if err := readScalarInto(r, buf, ev); err != nil {
			return err
		}
	}

	target.Set(out)

	return nil
}

// discardSequence consumes a sequence written by writeSequence without
// building a Go value, given the declared element type at the top level.
func discardSequence(r io.Reader, buf []byte, elemType reflect.Type) error {
	n, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	for i := 0; i < int(n); i++ {
		if elemType.Kind() == reflect.Slice {
			flag, err := readUint8(r, buf)
			if err != nil {
				return err
			}
			if flag == 0 {
				continue
			}
			if err := discardSequence(r, buf, elemType.Elem()); err != nil {
				return err
			}
			continue
		}

		if isStringOrDatePayload(elemType) {
			if _, err := readUint8(r, buf); err != nil {
				return err
			}
		}

		if err := discardScalar(r, buf, elemType); err != nil {
			return err
		}
	}

	return nil
}

// writeListOfStrings writes tag 40's isArrayList/size/per-element-flag+UTF
// shape (spec.md §6). This codec always produces a native []string, so
// isArrayList is always true and the list-classname branch it would
// otherwise gate never fires — ListOfStrings carries the header for
// interop with a reader expecting it, not because this writer ever picks
// a different concrete list type.
func writeListOfStrings(w io.Writer, v reflect.Value) error {
	if err := writeUint8(w, 1); err != nil { // isArrayList
		return err
	}
	if err := writeUint32(w, uint32(v.Len())); err != nil {
		return err
	}

	for i := 0; i < v.Len(); i++ {
		if err := writeUint8(w, 1); err != nil { // element not-null
			return err
		}
		if err := writeString(w, v.Index(i).String()); err != nil {
			return err
		}
	}

	return nil
}

func readListOfStringsInto(r io.Reader, buf []byte, target reflect.Value) error {
	isArrayList, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	n, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	if isArrayList == 0 {
		if _, err := readString(r, buf); err != nil { // concrete list classname, unused
			return err
		}
	}

	out := reflect.MakeSlice(target.Type(), int(n), int(n))

	for i := 0; i < int(n); i++ {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			continue
		}
		s, err := readString(r, buf)
		if err != nil {
			return err
		}
		out.Index(i).SetString(s)
	}

	target.Set(out)

	return nil
}

func discardListOfStrings(r io.Reader, buf []byte) error {
	isArrayList, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	n, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	if isArrayList == 0 {
		if _, err := readString(r, buf); err != nil {
			return err
		}
	}

	for i := 0; i < int(n); i++ {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			continue
		}
		if _, err := readString(r, buf); err != nil {
			return err
		}
	}

	return nil
}
