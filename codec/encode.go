package codec

import (
	"io"
	"reflect"

	"github.com/dba-c24/extern/descriptor"
	"github.com/dba-c24/extern/errs"
	"github.com/dba-c24/extern/internal/pool"
	"github.com/dba-c24/extern/wire"
)

// Encode writes rec — a pointer to, or value of, a wire-tagged struct —
// to w using rec's cached descriptor.Descriptor (spec.md §4.E).
func (c *Codec) Encode(w io.Writer, rec any) error {
	rv := reflect.ValueOf(rec)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	d, derr := descriptor.Of(rv.Type())
	if derr != nil {
		return derr
	}

	counter := countingWriter{w: w}
	if err := c.writeRecordFields(&counter, rv); err != nil {
		if c.metrics != nil {
			c.metrics.ErrorsTotal.WithLabelValues(d.ClassName, "encode").Inc()
		}
		return errs.EncodeFailure(d.ClassName, err)
	}

	if c.metrics != nil {
		c.metrics.EncodeTotal.WithLabelValues(d.ClassName).Inc()
		c.metrics.EncodedBytes.Observe(float64(counter.n))
	}

	return nil
}

// countingWriter tallies bytes written for the encoded-size histogram
// without buffering the record twice.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// encodeField writes one field's null flag (if the tag is nullable) and
// body, wrapping length-dynamic variants in their 4-byte payload length
// via a pooled scratch buffer (spec.md §5's thread-local scratch rule).
func (c *Codec) encodeField(w io.Writer, f descriptor.Field, fv reflect.Value) error {
	nullable := wire.IsNullable(f.Tag)
	isNil := false

	switch fv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Interface:
		isNil = fv.IsNil()
	}

	if nullable {
		flag := uint8(1)
		if isNil {
			flag = 0
		}
		if err := writeUint8(w, flag); err != nil {
			return err
		}
		if isNil {
			return nil
		}
	}

	target := fv
	if fv.Kind() == reflect.Ptr {
		target = fv.Elem()
	}

	if !wire.IsLengthDynamic(f.Tag) {
		return c.encodeBody(w, f, target)
	}

	buf := pool.Get()
	defer pool.Put(buf)

	if err := c.encodeBody(buf, f, target); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(buf.Len())); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)

	return err
}

// encodeBody writes a field's payload, assuming any null flag and
// length-dynamic wrapper have already been handled by encodeField.
func (c *Codec) encodeBody(w io.Writer, f descriptor.Field, target reflect.Value) error {
	switch f.Tag {
	case wire.Object:
		return c.encodeObject(w, target)
	case wire.Externalizable:
		return c.encodeExternalizableScalar(w, target, f.ElemType)
	case wire.ExternalizableArray:
		return c.encodeHomogeneousArray(w, target, 0, f.ElemType)
	case wire.ExternalizableArrayArray:
		return c.encodeHomogeneousArray(w, target, 1, f.ElemType)
	case wire.ListOfExternalizables:
		return c.encodeListOfExternalizables(w, f, target)
	case wire.ListOfStrings:
		return writeListOfStrings(w, target)
	case wire.StringArray, wire.DateArray, wire.Int32Array, wire.ByteArray,
		wire.Float64Array, wire.Float32Array, wire.Int64Array,
		wire.StringArrayArray, wire.DateArrayArray, wire.Int32ArrayArray,
		wire.ByteArrayArray, wire.Float64ArrayArray, wire.Float32ArrayArray,
		wire.Int64ArrayArray:
		return writeSequence(w, target)
	default:
		return writeScalar(w, target)
	}
}

func (c *Codec) encodeObject(w io.Writer, v reflect.Value) error {
	if c.objectCodec == nil {
		return errNoObjectCodec
	}

	data, err := c.objectCodec.Encode(v.Interface())
	if err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(data))); err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

// encodeExternalizableScalar writes tag 18's isDefault flag, the concrete
// class name if v's runtime type isn't the field's declared default, then
// the nested record. A `*T` Go field can only ever hold a `*T` value, so
// isDefault is structurally always true for anything this codec itself
// writes — the classname branch exists so this writer's output stays
// parseable by, and this reader can parse output from, an Externalizer
// that does store a genuine subclass there (see DESIGN.md).
func (c *Codec) encodeExternalizableScalar(w io.Writer, v reflect.Value, defaultType reflect.Type) error {
	isDefault := v.Type() == defaultType
	if err := writeUint8(w, boolFlag(isDefault)); err != nil {
		return err
	}
	if !isDefault {
		if err := writeString(w, c.registry.NameFor(v.Type())); err != nil {
			return err
		}
	}
	return c.writeRecordFields(w, v)
}

// encodeHomogeneousArray writes tag 27/28's per-element isDefault/
// isSameAsLastNonDefault/classname scheme (spec.md §6). depth is 0 for a
// 1D array of *T, 1 for a 2D array of []*T. defaultType is the field's
// declared element type T, used as the "default" class for amortization.
func (c *Codec) encodeHomogeneousArray(w io.Writer, v reflect.Value, depth int, defaultType reflect.Type) error {
	if depth == 0 {
		return c.writeExternalizableArrayBody(w, v, defaultType)
	}

	if err := writeUint32(w, uint32(v.Len())); err != nil {
		return err
	}

	for i := 0; i < v.Len(); i++ {
		inner := v.Index(i)
		isNil := inner.IsNil()
		if err := writeUint8(w, boolFlag(!isNil)); err != nil {
			return err
		}
		if isNil {
			continue
		}
		if err := c.encodeHomogeneousArray(w, inner, depth-1, defaultType); err != nil {
			return err
		}
	}

	return nil
}

// writeExternalizableArrayBody writes the tag-27 payload: a 4-byte count
// followed by, per element, a not-null flag and the isDefault/
// isSameAsLastNonDefault/classname triad before the nested record. It is
// also used, without a leading flag of its own (the caller already wrote
// that), as each slot of a tag-28 ExternalizableArrayArray.
func (c *Codec) writeExternalizableArrayBody(w io.Writer, v reflect.Value, defaultType reflect.Type) error {
	if err := writeUint32(w, uint32(v.Len())); err != nil {
		return err
	}

	lastNonDefault := ""

	for i := 0; i < v.Len(); i++ {
		ev := v.Index(i)
		isNil := ev.IsNil()
		if err := writeUint8(w, boolFlag(!isNil)); err != nil {
			return err
		}
		if isNil {
			continue
		}

		elem := ev.Elem()
		if err := c.writeClassedElement(w, elem, defaultType, &lastNonDefault); err != nil {
			return err
		}
		if err := c.writeRecordFields(w, elem); err != nil {
			return err
		}
	}

	return nil
}

// writeClassedElement writes the isDefault flag and, when the element's
// runtime type differs from defaultType, the isSameAsLastNonDefault flag
// and (if not the same) the class name — the amortization spec.md's
// testable property #6 describes for a run of same-subclass elements.
// lastNonDefault tracks the most recently written non-default class name
// across the whole array/list, mirroring Externalizer's lastNonDefaultClass.
func (c *Codec) writeClassedElement(w io.Writer, elem reflect.Value, defaultType reflect.Type, lastNonDefault *string) error {
	isDefault := elem.Type() == defaultType
	if err := writeUint8(w, boolFlag(isDefault)); err != nil {
		return err
	}
	if isDefault {
		return nil
	}

	name := c.registry.NameFor(elem.Type())
	sameAsLast := name == *lastNonDefault
	if err := writeUint8(w, boolFlag(sameAsLast)); err != nil {
		return err
	}
	if sameAsLast {
		return nil
	}

	if err := writeString(w, name); err != nil {
		return err
	}
	*lastNonDefault = name

	return nil
}

// encodeListOfExternalizables writes tag 26's isArrayList/size/
// default-element-classname header followed by the same per-element
// isDefault/isSameAsLastNonDefault/classname scheme encodeHomogeneousArray
// uses for arrays. isArrayList is always true for this codec's own
// []*T-backed lists; see writeListOfStrings for the same choice on tag 40.
func (c *Codec) encodeListOfExternalizables(w io.Writer, f descriptor.Field, v reflect.Value) error {
	if err := writeUint8(w, 1); err != nil { // isArrayList
		return err
	}
	if err := writeUint32(w, uint32(v.Len())); err != nil {
		return err
	}
	if err := writeString(w, c.registry.NameFor(f.ElemType)); err != nil {
		return err
	}

	lastNonDefault := ""

	for i := 0; i < v.Len(); i++ {
		ev := v.Index(i)
		isNil := ev.IsNil()
		if err := writeUint8(w, boolFlag(!isNil)); err != nil {
			return err
		}
		if isNil {
			continue
		}

		elem := ev.Elem()
		if err := c.writeClassedElement(w, elem, f.ElemType, &lastNonDefault); err != nil {
			return err
		}
		if err := c.writeRecordFields(w, elem); err != nil {
			return err
		}
	}

	return nil
}
