// Package wire defines the closed set of binary encodings a record field can
// use. The tag ids below are a frozen contract (spec.md §6, testable
// property #4): never renumber an existing tag, only append new ones.
package wire

import "fmt"

// Tag identifies the wire shape of one field's payload.
type Tag uint8

const (
	Int32   Tag = 0
	Bool    Tag = 1
	Byte    Tag = 2
	Char16  Tag = 3
	Float64 Tag = 4
	Float32 Tag = 5
	Int64   Tag = 6
	Int16   Tag = 7
	String  Tag = 8
	Date    Tag = 9

	BoxedInt32   Tag = 10
	BoxedBool    Tag = 11
	BoxedByte    Tag = 12
	BoxedChar16  Tag = 13
	BoxedFloat64 Tag = 14
	BoxedFloat32 Tag = 15
	BoxedInt64   Tag = 16
	BoxedInt16   Tag = 17

	Externalizable Tag = 18 // length-dynamic

	StringArray   Tag = 19
	DateArray     Tag = 20
	Int32Array    Tag = 21
	ByteArray     Tag = 22
	Float64Array  Tag = 23
	Float32Array  Tag = 24
	Int64Array    Tag = 25

	ListOfExternalizables Tag = 26

	ExternalizableArray      Tag = 27 // length-dynamic
	ExternalizableArrayArray Tag = 28 // length-dynamic

	Object Tag = 29
	UUID   Tag = 30

	StringArrayArray  Tag = 31
	DateArrayArray    Tag = 32
	Int32ArrayArray   Tag = 33
	ByteArrayArray    Tag = 34
	Float64ArrayArray Tag = 35
	Float32ArrayArray Tag = 36
	Int64ArrayArray   Tag = 37

	Enum    Tag = 38
	EnumSet Tag = 39

	ListOfStrings Tag = 40
)

var names = map[Tag]string{
	Int32: "Int32", Bool: "Bool", Byte: "Byte", Char16: "Char16",
	Float64: "Float64", Float32: "Float32", Int64: "Int64", Int16: "Int16",
	String: "String", Date: "Date",
	BoxedInt32: "BoxedInt32", BoxedBool: "BoxedBool", BoxedByte: "BoxedByte",
	BoxedChar16: "BoxedChar16", BoxedFloat64: "BoxedFloat64", BoxedFloat32: "BoxedFloat32",
	BoxedInt64: "BoxedInt64", BoxedInt16: "BoxedInt16",
	Externalizable: "Externalizable",
	StringArray:    "StringArray", DateArray: "DateArray",
	Int32Array: "Int32Array", ByteArray: "ByteArray", Float64Array: "Float64Array",
	Float32Array: "Float32Array", Int64Array: "Int64Array",
	ListOfExternalizables:    "ListOfExternalizables",
	ExternalizableArray:      "ExternalizableArray",
	ExternalizableArrayArray: "ExternalizableArrayArray",
	Object:                   "Object",
	UUID:                     "UUID",
	StringArrayArray:         "StringArrayArray", DateArrayArray: "DateArrayArray",
	Int32ArrayArray: "Int32ArrayArray", ByteArrayArray: "ByteArrayArray",
	Float64ArrayArray: "Float64ArrayArray", Float32ArrayArray: "Float32ArrayArray",
	Int64ArrayArray: "Int64ArrayArray",
	Enum:            "Enum", EnumSet: "EnumSet",
	ListOfStrings: "ListOfStrings",
}

// String implements fmt.Stringer for debugging and the dump CLI.
func (t Tag) String() string {
	if n, ok := names[t]; ok {
		return n
	}

	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// lengthDynamic is exactly the set spec.md §4.B defines: variants whose
// payload is length-prefixed and therefore blindly skippable.
var lengthDynamic = map[Tag]bool{
	Externalizable:           true,
	ExternalizableArray:      true,
	ExternalizableArrayArray: true,
}

// IsLengthDynamic reports whether a field of this tag is preceded on the
// wire by a 4-byte payload length, allowing an unknown field to be skipped
// without understanding its contents.
func IsLengthDynamic(t Tag) bool {
	return lengthDynamic[t]
}

// Known reports whether t is one of the tags defined by this package. The
// decoder must reject unknown tags that are not length-dynamic rather than
// guess at their shape (spec.md §9, open hazard).
func Known(t Tag) bool {
	_, ok := names[t]
	return ok
}

// rawPrimitive is the set of tags whose payload is a fixed-width value
// with no separate null representation — spec.md's bean fields can still
// declare these as Go pointers (e.g. *int32 for BoxedInt32), but the bare
// value form never carries a null-flag byte on the wire.
var rawPrimitive = map[Tag]bool{
	Int32: true, Bool: true, Byte: true, Char16: true,
	Float64: true, Float32: true, Int64: true, Int16: true,
}

// IsNullable reports whether a field of this tag is preceded on the wire
// by a 1-byte null flag. Every variant except the eight raw primitive
// tags is a reference type on the Java side and therefore nullable, even
// when this codec's Go mapping represents it with a non-pointer value
// (time.Time, a named enum int32, [16]byte UUID) — such fields are always
// written with the flag set, since a Go value type can never itself be
// nil (SPEC_FULL.md §5).
func IsNullable(t Tag) bool {
	return !rawPrimitive[t]
}
