package codec

import (
	"io"
	"reflect"

	"github.com/dba-c24/extern/wire"
)

// discardByTag consumes exactly the bytes a field of this tag would
// occupy on the wire, without needing the Go type the original writer
// used — only the tag byte already read from the stream. This is how an
// older reader skips a field index its descriptor.Descriptor doesn't
// know about, and how it skips an Externalizable instance whose concrete
// subclass isn't registered.
func (c *Codec) discardByTag(r io.Reader, buf []byte, tag wire.Tag) error {
	if wire.IsNullable(tag) {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			return nil
		}
	}

	if wire.IsLengthDynamic(tag) {
		length, err := readUint32(r, buf)
		if err != nil {
			return err
		}
		_, err = io.CopyN(io.Discard, r, int64(length))
		return err
	}

	return c.discardBodyByTag(r, buf, tag)
}

func (c *Codec) discardBodyByTag(r io.Reader, buf []byte, tag wire.Tag) error {
	switch tag {
	case wire.Int32, wire.BoxedInt32, wire.Enum, wire.Float32, wire.BoxedFloat32:
		_, err := readUint32(r, buf)
		return err
	case wire.Bool, wire.BoxedBool, wire.Byte, wire.BoxedByte:
		_, err := readUint8(r, buf)
		return err
	case wire.Char16, wire.BoxedChar16, wire.Int16, wire.BoxedInt16:
		_, err := readUint16(r, buf)
		return err
	case wire.Float64, wire.BoxedFloat64, wire.Int64, wire.BoxedInt64, wire.Date, wire.EnumSet:
		_, err := readUint64(r, buf)
		return err
	case wire.String:
		_, err := readString(r, buf)
		return err
	case wire.UUID:
		if _, err := readUint64(r, buf); err != nil {
			return err
		}
		_, err := readUint64(r, buf)
		return err
	case wire.StringArray:
		return discardSequence(r, buf, reflect.TypeOf(""))
	case wire.ListOfStrings:
		return discardListOfStrings(r, buf)
	case wire.DateArray:
		return discardSequence(r, buf, timeType)
	case wire.Int32Array:
		return discardSequence(r, buf, reflect.TypeOf(int32(0)))
	case wire.ByteArray:
		return discardSequence(r, buf, reflect.TypeOf(uint8(0)))
	case wire.Float64Array:
		return discardSequence(r, buf, reflect.TypeOf(float64(0)))
	case wire.Float32Array:
		return discardSequence(r, buf, reflect.TypeOf(float32(0)))
	case wire.Int64Array:
		return discardSequence(r, buf, reflect.TypeOf(int64(0)))
	case wire.StringArrayArray:
		return discardSequence(r, buf, reflect.TypeOf([]string{}))
	case wire.DateArrayArray:
		return discardSequence(r, buf, reflect.SliceOf(timeType))
	case wire.Int32ArrayArray:
		return discardSequence(r, buf, reflect.TypeOf([]int32{}))
	case wire.ByteArrayArray:
		return discardSequence(r, buf, reflect.TypeOf([]uint8{}))
	case wire.Float64ArrayArray:
		return discardSequence(r, buf, reflect.TypeOf([]float64{}))
	case wire.Float32ArrayArray:
		return discardSequence(r, buf, reflect.TypeOf([]float32{}))
	case wire.Int64ArrayArray:
		return discardSequence(r, buf, reflect.TypeOf([]int64{}))
	case wire.ListOfExternalizables:
		return c.discardListOfExternalizables(r, buf)
	case wire.Object:
		length, err := readUint32(r, buf)
		if err != nil {
			return err
		}
		_, err = io.CopyN(io.Discard, r, int64(length))
		return err
	}

	return errNotSkippable
}
