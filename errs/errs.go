// Package errs collects the sentinel errors the codec can return, plus the
// small wrapping helpers that attach a record's class name to a failure.
//
// EndOfInput is a signal, not a failure: callers decoding a concatenated
// stream of records use errors.Is(err, EndOfInput) to know when to stop.
package errs

import (
	"errors"
	"fmt"
	"io"
)

var (
	// EndOfInput is returned when a read hits end-of-stream exactly at a
	// record boundary (while reading the field count or a field header).
	// It is never wrapped, so callers can compare it with errors.Is.
	EndOfInput = io.EOF

	// ErrNoConstructor is a configuration error: the target type has no
	// usable zero-value construction path (unreachable in practice for Go
	// structs, kept for parity with spec.md's "no nullary constructor").
	ErrNoConstructor = errors.New("extern: type has no usable nullary constructor")

	// ErrDuplicateFieldIndex is a configuration error: two tagged fields
	// share the same wire index within one class descriptor.
	ErrDuplicateFieldIndex = errors.New("extern: duplicate field index")

	// ErrNoFields is a configuration error: a type carries no wire-tagged
	// fields at all.
	ErrNoFields = errors.New("extern: type has no externalized fields")

	// ErrFieldIndexRange is a configuration error: a wire index fell
	// outside 0..127.
	ErrFieldIndexRange = errors.New("extern: field index out of range 0..127")

	// ErrUnexportedField is a configuration error: a wire tag was placed
	// on a field reflection cannot address without unsafe.
	ErrUnexportedField = errors.New("extern: wire tag on unexported field")

	// ErrTooManyEnumBits is a configuration error: an EnumSet bit index
	// was at or beyond 64, the bitset's capacity.
	ErrTooManyEnumBits = errors.New("extern: enum set bit index >= 64")

	// ErrUnknownTag is returned when the decoder encounters a tag id it
	// does not recognize and that is not in the length-dynamic range, so
	// it has no safe way to skip the field.
	ErrUnknownTag = errors.New("extern: unknown wire tag")

	// ErrUnknownClassName is returned by the registry's NewByName for a
	// name that was never registered, and by Register when a name is
	// re-registered with a different type. The decoder does not return
	// it: a nested record whose explicit class name is not the field's
	// declared type is skipped and the field is left nil.
	ErrUnknownClassName = errors.New("extern: unknown class name")
)

// DecodeFailure wraps a lower-level read error with the record class name
// and the spec's standing hint, matching spec.md §7's exact wording.
func DecodeFailure(className string, cause error) error {
	return fmt.Errorf("failed to read externalized instance — maybe field order changed: class %s: %w", className, cause)
}

// EncodeFailure wraps a lower-level write error with the record class name.
func EncodeFailure(className string, cause error) error {
	return fmt.Errorf("failed to externalize class %s: %w", className, cause)
}

// Configuration wraps a descriptor-construction error with the offending
// class name.
func Configuration(className string, cause error) error {
	return fmt.Errorf("%s: %w", className, cause)
}
