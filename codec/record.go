package codec

import (
	"io"
	"reflect"

	"github.com/dba-c24/extern/descriptor"
	"github.com/dba-c24/extern/errs"
	"github.com/dba-c24/extern/wire"
)

// writeRecordFields writes rv's field-count byte followed by each
// descriptor field, with no class name of its own — the caller (a
// top-level Encode, or an Externalizable field's writer) is responsible
// for any class name the wire shape requires.
func (c *Codec) writeRecordFields(w io.Writer, rv reflect.Value) error {
	d, err := descriptor.Of(rv.Type())
	if err != nil {
		return err
	}

	if err := writeUint8(w, uint8(len(d.Fields))); err != nil {
		return err
	}

	for _, f := range d.Fields {
		fv, ferr := rv.FieldByIndexErr(f.Path)
		if ferr != nil {
			return errs.EncodeFailure(d.ClassName, ferr)
		}
		if err := writeUint8(w, f.Index); err != nil {
			return err
		}
		if err := writeUint8(w, uint8(f.Tag)); err != nil {
			return err
		}
		if err := c.encodeField(w, f, fv); err != nil {
			return errs.EncodeFailure(d.ClassName, err)
		}
	}

	return nil
}

// readRecordFieldsInto is writeRecordFields' counterpart: it reads a
// field-count byte and that many (index, tag, value) triples, routing
// each into target's descriptor by the same sorted-merge cursor Decode
// uses at the top level.
func (c *Codec) readRecordFieldsInto(r io.Reader, buf []byte, target reflect.Value) error {
	d, err := descriptor.Of(target.Type())
	if err != nil {
		return err
	}

	return c.decodeFieldsBody(r, buf, d, target)
}

// discardRecordBody consumes a nested record's field-count byte and all
// of its fields structurally, needing nothing but the tag bytes already
// on the wire. It is how an unresolved Externalizable subclass (or an
// array or list element that is unresolved or belongs to a skipped
// field) is skipped.
func (c *Codec) discardRecordBody(r io.Reader, buf []byte) error {
	count, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	for i := 0; i < int(count); i++ {
		if _, err := readUint8(r, buf); err != nil { // field index, unused
			return err
		}
		tagByte, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		tag := wire.Tag(tagByte)
		if !wire.Known(tag) {
			return errs.ErrUnknownTag
		}
		if err := c.discardByTag(r, buf, tag); err != nil {
			return err
		}
	}

	return nil
}

// discardListOfExternalizables consumes tag 26's isArrayList/size/
// default-element-classname header followed by that many isDefault/
// isSameAsLastNonDefault/classname/record elements — the same shape
// decodeListOfExternalizables reads, minus the declared element type a
// generic skip (the field's index isn't in this reader's descriptor) never
// has.
func (c *Codec) discardListOfExternalizables(r io.Reader, buf []byte) error {
	isArrayList, err := readUint8(r, buf)
	if err != nil {
		return err
	}

	n, err := readUint32(r, buf)
	if err != nil {
		return err
	}

	if isArrayList == 0 {
		if _, err := readString(r, buf); err != nil { // concrete list classname
			return err
		}
	}

	if _, err := readString(r, buf); err != nil { // default-element-classname
		return err
	}

	lastNonDefault := ""

	for i := 0; i < int(n); i++ {
		flag, err := readUint8(r, buf)
		if err != nil {
			return err
		}
		if flag == 0 {
			continue
		}
		if _, err := c.discardClassedElementName(r, buf, &lastNonDefault); err != nil {
			return err
		}
		if err := c.discardRecordBody(r, buf); err != nil {
			return err
		}
	}

	return nil
}
