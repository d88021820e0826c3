// Package descriptor implements spec.md §4.C's field-descriptor discovery:
// for a record's struct type, enumerate its wire-tagged fields, choose a
// wire.Tag for each, and build the sorted, cached field table that drives
// both the encoder and the decoder.
//
// Go has no runtime annotations, so a field opts in with a struct tag:
//
//	type Widget struct {
//	    Name  string  `wire:"1"`
//	    Count int32   `wire:"2"`
//	    Tags  []string `wire:"3,list"`
//	}
//
// The `,list` option chooses the ListOfStrings/ListOfExternalizables wire
// shape over the default StringArray/ExternalizableArray shape for slice
// fields — see SPEC_FULL.md §5.
package descriptor

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dba-c24/extern/errs"
	"github.com/dba-c24/extern/internal/fingerprint"
	"github.com/dba-c24/extern/wire"
	"github.com/dba-c24/extern/xtype"
)

// Field is one entry of a class descriptor: a stable wire index, the wire
// variant chosen for it, the reflect path to reach it (supporting embedded
// / promoted fields), and — for array, list, and externalizable variants —
// the declared element type used as the "default" class for class-id
// elision.
type Field struct {
	Index    byte
	Tag      wire.Tag
	Path     []int
	GoType   reflect.Type
	ElemType reflect.Type
	ListKind bool // struct-tag ",list" option selected the List* variant
}

// Descriptor is the frozen, per-struct-type field table (spec.md §3).
// Descriptors are only ever read after construction, so a cached instance
// may be shared across goroutines without locking.
type Descriptor struct {
	Type        reflect.Type // the struct type, never a pointer
	ClassName   string
	Fields      []Field // sorted ascending by Index
	Fingerprint uint64  // stable hash of ClassName + sorted (index, tag) pairs
}

// fieldAt finds the field with wire index idx via binary search over the
// sorted Fields slice.
func (d *Descriptor) fieldAt(idx byte) (Field, bool) {
	i := sort.Search(len(d.Fields), func(i int) bool { return d.Fields[i].Index >= idx })
	if i < len(d.Fields) && d.Fields[i].Index == idx {
		return d.Fields[i], true
	}

	return Field{}, false
}

// FieldAt exposes fieldAt outside the package. The decoder does not use
// it (it walks Fields with a merge cursor); tests do.
func (d *Descriptor) FieldAt(idx byte) (Field, bool) { return d.fieldAt(idx) }

var cache sync.Map // reflect.Type -> *Descriptor

// Of returns the cached descriptor for t (a struct type or a pointer to
// one), building it on first use. Concurrent first use may build the
// descriptor twice; both results are structurally equal and the loser is
// discarded — the benign race spec.md §5 documents.
func Of(t reflect.Type) (*Descriptor, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s: %w", t, errs.ErrNoFields)
	}

	if cached, ok := cache.Load(t); ok {
		return cached.(*Descriptor), nil
	}

	built, err := build(t)
	if err != nil {
		return nil, errs.Configuration(t.String(), err)
	}

	actual, _ := cache.LoadOrStore(t, built)

	return actual.(*Descriptor), nil
}

func build(t reflect.Type) (*Descriptor, error) {
	var raw []Field
	if err := gatherFields(t, nil, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, errs.ErrNoFields
	}

	seen := make(map[byte]bool, len(raw))
	for _, f := range raw {
		if seen[f.Index] {
			return nil, fmt.Errorf("%w: %d (field %s)", errs.ErrDuplicateFieldIndex, f.Index, t.FieldByIndex(f.Path).Name)
		}
		seen[f.Index] = true
	}

	sort.Slice(raw, func(i, j int) bool { return raw[i].Index < raw[j].Index })

	className := t.PkgPath() + "." + t.Name()
	pairs := make([]byte, 0, len(raw)*2)
	for _, f := range raw {
		pairs = append(pairs, f.Index, byte(f.Tag))
	}

	return &Descriptor{
		Type:        t,
		ClassName:   className,
		Fields:      raw,
		Fingerprint: fingerprint.Of(className, pairs),
	}, nil
}

// gatherFields walks t's fields, recursing into anonymous (embedded)
// struct fields that carry no wire tag of their own, at any depth — Go's
// structural stand-in for "walk the class and all superclasses"
// (spec.md §4.C step 2).
func gatherFields(t reflect.Type, path []int, out *[]Field) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		childPath := append(append([]int{}, path...), i)

		tagValue, hasTag := sf.Tag.Lookup("wire")
		if !hasTag {
			if sf.Anonymous {
				et := sf.Type
				for et.Kind() == reflect.Ptr {
					et = et.Elem()
				}
				if et.Kind() == reflect.Struct {
					if err := gatherFields(et, childPath, out); err != nil {
						return err
					}
				}
			}
			continue
		}

		if sf.PkgPath != "" {
			return fmt.Errorf("%w: %s", errs.ErrUnexportedField, sf.Name)
		}

		index, listKind, err := parseTag(tagValue)
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}

		tag, elemType, err := tagForType(sf.Type, listKind)
		if err != nil {
			return fmt.Errorf("field %s: %w", sf.Name, err)
		}

		*out = append(*out, Field{
			Index:    index,
			Tag:      tag,
			Path:     childPath,
			GoType:   sf.Type,
			ElemType: elemType,
			ListKind: listKind,
		})
	}

	return nil
}

func parseTag(raw string) (index byte, listKind bool, err error) {
	parts := strings.Split(raw, ",")
	n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", errs.ErrFieldIndexRange, raw)
	}
	if n < 0 || n > 127 {
		return 0, false, fmt.Errorf("%w: %d", errs.ErrFieldIndexRange, n)
	}

	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "list" {
			listKind = true
		}
	}

	return byte(n), listKind, nil
}

var (
	timeType = reflect.TypeOf(time.Time{})
	uuidType = reflect.TypeOf(xtype.UUID{})
)

// tagForType implements spec.md §4.B's variant_for_type as a Go type
// mapping (SPEC_FULL.md §5). elemType is populated for array/list/
// externalizable variants; otherwise it is the field's own type, or the
// pointed-to type for a pointer field.
func tagForType(t reflect.Type, listKind bool) (wire.Tag, reflect.Type, error) {
	switch t.Kind() {
	case reflect.Int32:
		if t == reflect.TypeOf(int32(0)) {
			return wire.Int32, t, nil
		}
		return wire.Enum, t, nil
	case reflect.Bool:
		return wire.Bool, t, nil
	case reflect.Uint8:
		return wire.Byte, t, nil
	case reflect.Uint16:
		return wire.Char16, t, nil
	case reflect.Float64:
		return wire.Float64, t, nil
	case reflect.Float32:
		return wire.Float32, t, nil
	case reflect.Int64:
		return wire.Int64, t, nil
	case reflect.Int16:
		return wire.Int16, t, nil
	case reflect.Uint64:
		return wire.EnumSet, t, nil
	case reflect.String:
		return wire.String, t, nil
	case reflect.Array:
		if t == uuidType {
			return wire.UUID, t, nil
		}
	case reflect.Struct:
		if t == timeType {
			return wire.Date, t, nil
		}
	case reflect.Ptr:
		return tagForPtr(t)
	case reflect.Slice:
		return tagForSlice(t, listKind)
	}

	return wire.Object, t, nil
}

func tagForPtr(t reflect.Type) (wire.Tag, reflect.Type, error) {
	elem := t.Elem()
	switch {
	case elem == timeType:
		return wire.Date, elem, nil
	case elem == uuidType:
		return wire.UUID, elem, nil
	case elem.Kind() == reflect.Struct:
		return wire.Externalizable, elem, nil
	}

	switch elem.Kind() {
	case reflect.Int32:
		return wire.BoxedInt32, elem, nil
	case reflect.Bool:
		return wire.BoxedBool, elem, nil
	case reflect.Uint8:
		return wire.BoxedByte, elem, nil
	case reflect.Uint16:
		return wire.BoxedChar16, elem, nil
	case reflect.Float64:
		return wire.BoxedFloat64, elem, nil
	case reflect.Float32:
		return wire.BoxedFloat32, elem, nil
	case reflect.Int64:
		return wire.BoxedInt64, elem, nil
	case reflect.Int16:
		return wire.BoxedInt16, elem, nil
	case reflect.String:
		return wire.String, elem, nil
	}

	return wire.Object, elem, nil
}

func tagForSlice(t reflect.Type, listKind bool) (wire.Tag, reflect.Type, error) {
	elem := t.Elem()

	switch elem.Kind() {
	case reflect.String:
		if listKind {
			return wire.ListOfStrings, elem, nil
		}
		return wire.StringArray, elem, nil
	case reflect.Uint8:
		return wire.ByteArray, elem, nil
	case reflect.Int32:
		return wire.Int32Array, elem, nil
	case reflect.Int64:
		return wire.Int64Array, elem, nil
	case reflect.Float64:
		return wire.Float64Array, elem, nil
	case reflect.Float32:
		return wire.Float32Array, elem, nil
	case reflect.Struct:
		if elem == timeType {
			return wire.DateArray, elem, nil
		}
	case reflect.Ptr:
		if elem.Elem().Kind() == reflect.Struct {
			if listKind {
				return wire.ListOfExternalizables, elem.Elem(), nil
			}
			return wire.ExternalizableArray, elem.Elem(), nil
		}
	case reflect.Slice:
		return tagForSliceOfSlice(elem)
	}

	return wire.Object, elem, nil
}

func tagForSliceOfSlice(inner reflect.Type) (wire.Tag, reflect.Type, error) {
	elem := inner.Elem()
	switch elem.Kind() {
	case reflect.String:
		return wire.StringArrayArray, elem, nil
	case reflect.Uint8:
		return wire.ByteArrayArray, elem, nil
	case reflect.Int32:
		return wire.Int32ArrayArray, elem, nil
	case reflect.Int64:
		return wire.Int64ArrayArray, elem, nil
	case reflect.Float64:
		return wire.Float64ArrayArray, elem, nil
	case reflect.Float32:
		return wire.Float32ArrayArray, elem, nil
	case reflect.Struct:
		if elem == timeType {
			return wire.DateArrayArray, elem, nil
		}
	case reflect.Ptr:
		if elem.Elem().Kind() == reflect.Struct {
			return wire.ExternalizableArrayArray, elem.Elem(), nil
		}
	}

	return wire.Object, elem, nil
}
