package extern

import "github.com/dba-c24/extern/xtype"

// Char, UUID, and BitSet are re-exported from xtype so callers only ever
// need to import this package, not its leaf dependency.
type (
	Char   = xtype.Char
	UUID   = xtype.UUID
	BitSet = xtype.BitSet
)

// NewUUID builds a UUID from its most- and least-significant 64-bit
// halves; see xtype.NewUUID.
func NewUUID(mostSignificant, leastSignificant uint64) UUID {
	return xtype.NewUUID(mostSignificant, leastSignificant)
}
