// Package xtype defines the small value types the wire's closed encoding
// set needs but Go's builtin types don't provide: a 16-bit character, a
// 128-bit UUID, and a bounds-checked 64-bit enum bitset. Its only import
// from this module is errs, which imports nothing from the module, so both
// the descriptor/codec layer and the root convenience package can depend
// on it without a cycle.
package xtype

import (
	"fmt"

	"github.com/dba-c24/extern/errs"
)

// Char is a single UTF-16 code unit, the Go analogue of the wire's Char16
// variant. Go strings are UTF-8 and have no native 16-bit character type.
type Char uint16

// UUID is a 128-bit identifier encoded on the wire as two big-endian int64
// halves (most-significant, then least-significant), matching spec.md §6's
// UUID variant. No UUID library appears anywhere in the retrieval pack, so
// this narrow value type is hand-rolled rather than importing one just for
// a single [16]byte — see DESIGN.md.
type UUID [16]byte

// NewUUID builds a UUID from its most- and least-significant 64-bit halves,
// mirroring how the wire variant stores it.
func NewUUID(mostSignificant, leastSignificant uint64) UUID {
	var u UUID
	putUint64(u[0:8], mostSignificant)
	putUint64(u[8:16], leastSignificant)

	return u
}

// Halves returns the most- and least-significant 64-bit halves, in the
// order the wire variant writes them.
func (u UUID) Halves() (mostSignificant, leastSignificant uint64) {
	return getUint64(u[0:8]), getUint64(u[8:16])
}

func (u UUID) String() string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}

func putUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func getUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}

	return v
}

// BitSet is a 64-bit bitmask used for fields whose Go type has an
// underlying kind of uint64 (the EnumSet wire variant). Java's EnumSet
// rejects construction against an enum with more than 64 values by
// reflecting over Enum.values().length; Go has no such reflection over
// named-type constants, so the same invariant is instead enforced here, at
// the point a bit index is set — see DESIGN.md for this Open Question
// resolution.
type BitSet uint64

// Set returns a copy of b with bit idx set. It returns ErrTooManyEnumBits
// if idx is outside 0..63.
func (b BitSet) Set(idx uint) (BitSet, error) {
	if idx >= 64 {
		return b, fmt.Errorf("%w: %d", errs.ErrTooManyEnumBits, idx)
	}

	return b | (1 << idx), nil
}

// Has reports whether bit idx is set. Indices outside 0..63 are never set.
func (b BitSet) Has(idx uint) bool {
	if idx >= 64 {
		return false
	}

	return b&(1<<idx) != 0
}
