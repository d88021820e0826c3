package codec

import (
	"io"
	"math"
	"reflect"
	"time"

	"github.com/dba-c24/extern/xtype"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(xtype.UUID{})
)

// writeScalar writes a single non-nullable, non-container value: one of
// the raw primitive kinds, a plain string, a time.Time, a UUID, or a
// named int32/uint64 (Enum/EnumSet). No null flag is written here — the
// caller already resolved nullability before reaching this point.
func writeScalar(w io.Writer, v reflect.Value) error {
	switch v.Type() {
	case timeType:
		t := v.Interface().(time.Time)
		return writeUint64(w, uint64(t.UnixMilli()))
	case uuidType:
		u := v.Interface().(xtype.UUID)
		most, least := u.Halves()
		if err := writeUint64(w, most); err != nil {
			return err
		}
		return writeUint64(w, least)
	}

	switch v.Kind() {
	case reflect.Int32, reflect.Int16:
		return writeIntKind(w, v)
	case reflect.Int64:
		return writeUint64(w, uint64(v.Int()))
	case reflect.Uint64:
		return writeUint64(w, v.Uint())
	case reflect.Bool:
		if v.Bool() {
			return writeUint8(w, 1)
		}
		return writeUint8(w, 0)
	case reflect.Uint8:
		return writeUint8(w, uint8(v.Uint()))
	case reflect.Uint16:
		return writeUint16(w, uint16(v.Uint()))
	case reflect.Float64:
		return writeUint64(w, math.Float64bits(v.Float()))
	case reflect.Float32:
		return writeUint32(w, math.Float32bits(float32(v.Float())))
	case reflect.String:
		return writeString(w, v.String())
	}

	return errUnsupportedScalar(v.Type())
}

func writeIntKind(w io.Writer, v reflect.Value) error {
	if v.Kind() == reflect.Int16 {
		return writeUint16(w, uint16(v.Int()))
	}
	return writeUint32(w, uint32(v.Int()))
}

// readScalarInto decodes one value of target.Type() from r and stores it
// into target, the symmetric counterpart of writeScalar.
func readScalarInto(r io.Reader, buf []byte, target reflect.Value) error {
	switch target.Type() {
	case timeType:
		ms, err := readUint64(r, buf)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(time.UnixMilli(int64(ms)).UTC()))
		return nil
	case uuidType:
		most, err := readUint64(r, buf)
		if err != nil {
			return err
		}
		least, err := readUint64(r, buf)
		if err != nil {
			return err
		}
		target.Set(reflect.ValueOf(xtype.NewUUID(most, least)))
		return nil
	}

	switch target.Kind() {
	case reflect.Int32:
		n, err := readUint32(r, buf)
		if err != nil {
			return err
		}
		target.SetInt(int64(int32(n)))
		return nil
	case reflect.Int16:
		n, err := readUint16(r, buf)
		if err != nil {
			return err
		}
		target.SetInt(int64(int16(n)))
		return nil
	case reflect.Int64:
		n, err := readUint64(r, buf)
		if err != nil {
			return err
		}
		target.SetInt(int64(n))
		return nil
	case reflect.Uint64:
		n, err := readUint64(r, buf)
		if err != nil {
			return err
		}
		target.SetUint(n)
		return nil
	case reflect.Bool:
		n, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		target.SetBool(n != 0)
		return nil
	case reflect.Uint8:
		n, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		target.SetUint(uint64(n))
		return nil
	case reflect.Uint16:
		n, err := readUint16(r, buf)
		if err != nil {
			return err
		}
		target.SetUint(uint64(n))
		return nil
	case reflect.Float64:
		n, err := readUint64(r, buf)
		if err != nil {
			return err
		}
		target.SetFloat(math.Float64frombits(n))
		return nil
	case reflect.Float32:
		n, err := readUint32(r, buf)
		if err != nil {
			return err
		}
		target.SetFloat(float64(math.Float32frombits(n)))
		return nil
	case reflect.String:
		s, err := readString(r, buf)
		if err != nil {
			return err
		}
		target.SetString(s)
		return nil
	}

	return errUnsupportedScalar(target.Type())
}

// discardScalar consumes exactly the bytes writeScalar would have written
// for a value of type t, without materializing a Go value.
func discardScalar(r io.Reader, buf []byte, t reflect.Type) error {
	switch t {
	case timeType:
		_, err := readUint64(r, buf)
		return err
	case uuidType:
		if _, err := readUint64(r, buf); err != nil {
			return err
		}
		_, err := readUint64(r, buf)
		return err
	}

	switch t.Kind() {
	case reflect.Int32, reflect.Float32:
		_, err := readUint32(r, buf)
		return err
	case reflect.Int16, reflect.Uint16:
		_, err := readUint16(r, buf)
		return err
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		_, err := readUint64(r, buf)
		return err
	case reflect.Bool, reflect.Uint8:
		_, err := readUint8(r, buf)
		return err
	case reflect.String:
		_, err := readString(r, buf)
		return err
	}

	return errUnsupportedScalar(t)
}
