package codec

import (
	"io"
	"reflect"

	"github.com/dba-c24/extern/descriptor"
	"github.com/dba-c24/extern/errs"
	"github.com/dba-c24/extern/wire"
)

// Decode reads one record from r into out (a pointer to a wire-tagged
// struct), using out's cached descriptor.Descriptor and skipping any
// encoded field the descriptor doesn't recognize (spec.md §4.F).
func (c *Codec) Decode(r io.Reader, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errs.DecodeFailure("<decode target>", errs.ErrNoFields)
	}
	rv = rv.Elem()

	d, err := descriptor.Of(rv.Type())
	if err != nil {
		return err
	}

	buf := make([]byte, 8)
	if err := c.decodeFieldsBody(r, buf, d, rv); err != nil {
		if err == errs.EndOfInput {
			return err
		}
		if c.metrics != nil {
			c.metrics.ErrorsTotal.WithLabelValues(d.ClassName, "decode").Inc()
		}
		return errs.DecodeFailure(d.ClassName, err)
	}

	if c.metrics != nil {
		c.metrics.DecodeTotal.WithLabelValues(d.ClassName).Inc()
	}

	return nil
}

// decodeFieldsBody reads a field-count byte and that many (index, tag)
// headers, advancing a cursor j over d.Fields (sorted ascending by
// index) in lock step with the ascending indices on the wire — the
// sorted-merge spec.md §4.F describes. A header whose index isn't in
// d.Fields is skipped via discardByTag; one whose tag doesn't match the
// descriptor's expectation is a hard decode failure, since the field
// changed incompatibly rather than merely being added or removed.
func (c *Codec) decodeFieldsBody(r io.Reader, buf []byte, d *descriptor.Descriptor, rv reflect.Value) error {
	count, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	j := 0

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

		for j < len(d.Fields) && d.Fields[j].Index < idx {
			j++
		}

		if j < len(d.Fields) && d.Fields[j].Index == idx {
			f := d.Fields[j]
			if f.Tag != tag {
				return errs.DecodeFailure(d.ClassName, errs.ErrUnknownTag)
			}
			fv, ferr := rv.FieldByIndexErr(f.Path)
			if ferr != nil {
				return ferr
			}
			if err := c.decodeField(r, buf, f, fv); err != nil {
				return err
			}
			j++
			continue
		}

		if !wire.Known(tag) {
			return errs.ErrUnknownTag
		}
		if err := c.discardByTag(r, buf, tag); err != nil {
			return err
		}
		if c.metrics != nil {
			c.metrics.SkippedFields.Inc()
		}
	}

	return nil
}

func (c *Codec) decodeField(r io.Reader, buf []byte, f descriptor.Field, fv reflect.Value) error {
	nullable := wire.IsNullable(f.Tag)

	if nullable {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
	}

	// Externalizable is the one pointer-shaped tag whose value might not
	// be materializable (an unresolved concrete subclass) — defer
	// allocation to decodeExternalizableScalar instead of the generic
	// pointer preallocation below, so an unresolved field is left nil
	// rather than pointing at a zero-valued struct.
	if f.Tag == wire.Externalizable {
		length, err := readUint32(r, buf)
		if err != nil {
			return err
		}
		lr := io.LimitReader(r, int64(length))
		return c.decodeExternalizableScalar(lr, buf, f, fv)
	}

	target := fv
	if fv.Kind() == reflect.Ptr {
		nv := reflect.New(fv.Type().Elem())
		fv.Set(nv)
		target = nv.Elem()
	}

	if !wire.IsLengthDynamic(f.Tag) {
		return c.decodeBody(r, buf, f, target)
	}

	length, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	lr := io.LimitReader(r, int64(length))

	return c.decodeBody(lr, buf, f, target)
}

func (c *Codec) decodeBody(r io.Reader, buf []byte, f descriptor.Field, target reflect.Value) error {
	switch f.Tag {
	case wire.Object:
		return c.decodeObjectInto(r, buf, target)
	case wire.ExternalizableArray:
		return c.decodeHomogeneousArray(r, buf, target, 0, f.ElemType)
	case wire.ExternalizableArrayArray:
		return c.decodeHomogeneousArray(r, buf, target, 1, f.ElemType)
	case wire.ListOfExternalizables:
		return c.decodeListOfExternalizables(r, buf, f, target)
	case wire.ListOfStrings:
		return readListOfStringsInto(r, buf, target)
	case wire.StringArray, wire.DateArray, wire.Int32Array, wire.ByteArray,
		wire.Float64Array, wire.Float32Array, wire.Int64Array,
		wire.StringArrayArray, wire.DateArrayArray, wire.Int32ArrayArray,
		wire.ByteArrayArray, wire.Float64ArrayArray, wire.Float32ArrayArray,
		wire.Int64ArrayArray:
		return readSequenceInto(r, buf, target)
	default:
		return readScalarInto(r, buf, target)
	}
}

func (c *Codec) decodeObjectInto(r io.Reader, buf []byte, target reflect.Value) error {
	length, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return err
	}

	if c.objectCodec == nil {
		return errNoObjectCodec
	}

	ptr := reflect.New(target.Type())
	if err := c.objectCodec.Decode(data, ptr.Interface()); err != nil {
		return err
	}
	target.Set(ptr.Elem())

	return nil
}

// decodeExternalizableScalar reads tag 18's isDefault flag and, if not
// default, the class name, then the nested record. fv is the original *T
// field (still nil). A set isDefault flag always resolves to T itself, so
// that record is decoded whether or not T was registered. An explicit
// class name that differs from T's wire name makes the nested record be
// discarded structurally and fv left nil, since this codec does not
// support storing a polymorphic subclass into a statically-typed Go field
// (see DESIGN.md).
func (c *Codec) decodeExternalizableScalar(r io.Reader, buf []byte, f descriptor.Field, fv reflect.Value) error {
	isDefault, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	name := c.registry.NameFor(f.ElemType)
	if isDefault == 0 {
		name, err = readString(r, buf)
		if err != nil {
			return err
		}
	}

	if name != c.registry.NameFor(f.ElemType) {
		return c.discardRecordBody(r, buf)
	}

	nv := reflect.New(f.ElemType)
	if err := c.readRecordFieldsInto(r, buf, nv.Elem()); err != nil {
		return err
	}
	fv.Set(nv)

	return nil
}

// decodeHomogeneousArray reads tag 27/28's per-element isDefault/
// isSameAsLastNonDefault/classname scheme, resolving each element's class
// name and materializing it only when it names target's declared element
// type — this codec's own writer only ever emits the default class (see
// encodeHomogeneousArray), so this is only exercised by a mixed-subclass
// stream from another writer, where non-default elements are discarded.
func (c *Codec) decodeHomogeneousArray(r io.Reader, buf []byte, target reflect.Value, depth int, defaultType reflect.Type) error {
	if depth == 0 {
		return c.readExternalizableArrayBody(r, buf, target, defaultType)
	}

	n, err := readUint32(r, buf)
	if err != nil {
		return err
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
		if err := c.decodeHomogeneousArray(r, buf, out.Index(i), depth-1, defaultType); err != nil {
			return err
		}
	}

	target.Set(out)

	return nil
}

func (c *Codec) readExternalizableArrayBody(r io.Reader, buf []byte, target reflect.Value, defaultType reflect.Type) error {
	n, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(target.Type(), int(n), int(n))
	lastNonDefault := ""

	for i := 0; i < int(n); i++ {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			continue
		}

		name, err := c.readClassedElementName(r, buf, defaultType, &lastNonDefault)
		if err != nil {
			return err
		}

		if name != c.registry.NameFor(defaultType) {
			if err := c.discardRecordBody(r, buf); err != nil {
				return err
			}
			continue
		}

		nv := reflect.New(defaultType)
		if err := c.readRecordFieldsInto(r, buf, nv.Elem()); err != nil {
			return err
		}
		out.Index(i).Set(nv)
	}

	target.Set(out)

	return nil
}

// readClassedElementName is writeClassedElement's counterpart: it resolves
// one element's isDefault/isSameAsLastNonDefault/classname triad to the
// class name that follows on the wire, updating lastNonDefault exactly as
// the writer does so a run of isSameAsLastNonDefault elements decodes to
// the right name.
func (c *Codec) readClassedElementName(r io.Reader, buf []byte, defaultType reflect.Type, lastNonDefault *string) (string, error) {
	isDefault, err := readUint8(r, buf)
	if err != nil {
		return "", err
	}
	if isDefault != 0 {
		return c.registry.NameFor(defaultType), nil
	}

	sameAsLast, err := readUint8(r, buf)
	if err != nil {
		return "", err
	}
	if sameAsLast != 0 {
		return *lastNonDefault, nil
	}

	name, err := readString(r, buf)
	if err != nil {
		return "", err
	}
	*lastNonDefault = name

	return name, nil
}

// discardClassedElementName consumes one element's isDefault/
// isSameAsLastNonDefault/classname triad without needing a declared
// default type, since a generic skip never materializes anything.
func (c *Codec) discardClassedElementName(r io.Reader, buf []byte, lastNonDefault *string) (string, error) {
	isDefault, err := readUint8(r, buf)
	if err != nil {
		return "", err
	}
	if isDefault != 0 {
		return "", nil
	}

	sameAsLast, err := readUint8(r, buf)
	if err != nil {
		return "", err
	}
	if sameAsLast != 0 {
		return *lastNonDefault, nil
	}

	name, err := readString(r, buf)
	if err != nil {
		return "", err
	}
	*lastNonDefault = name

	return name, nil
}

// decodeListOfExternalizables reads tag 26's isArrayList/size/
// default-element-classname header (the classname and list-classname are
// consumed but unused — this codec always builds a native []*T) followed
// by the same per-element scheme decodeHomogeneousArray uses.
func (c *Codec) decodeListOfExternalizables(r io.Reader, buf []byte, f descriptor.Field, target reflect.Value) error {
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

	if _, err := readString(r, buf); err != nil { // default-element-classname, unused: f.ElemType is authoritative
		return err
	}

	out := reflect.MakeSlice(target.Type(), int(n), int(n))
	lastNonDefault := ""

	for i := 0; i < int(n); i++ {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			continue
		}

		name, err := c.readClassedElementName(r, buf, f.ElemType, &lastNonDefault)
		if err != nil {
			return err
		}

		if name != c.registry.NameFor(f.ElemType) {
			if err := c.discardRecordBody(r, buf); err != nil {
				return err
			}
			continue
		}

		nv := reflect.New(f.ElemType)
		if err := c.readRecordFieldsInto(r, buf, nv.Elem()); err != nil {
			return err
		}
		out.Index(i).Set(nv)
	}

	target.Set(out)

	return nil
}
