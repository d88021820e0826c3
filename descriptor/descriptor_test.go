package descriptor

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dba-c24/extern/wire"
	"github.com/dba-c24/extern/xtype"
)

type inner struct {
	Weight float32 `wire:"3"`
}

type status int32

type flags uint64

type child struct {
	Name string `wire:"0"`
}

type sample struct {
	inner
	Name       string     `wire:"0"`
	Count      int32      `wire:"1"`
	Ready      bool       `wire:"2"`
	Nickname   *string    `wire:"4"`
	When       time.Time  `wire:"5"`
	ID         xtype.UUID `wire:"6"`
	Tags       []string   `wire:"7"`
	TagList    []string   `wire:"8,list"`
	Children   []*child   `wire:"9"`
	ChildList  []*child   `wire:"10,list"`
	State      status     `wire:"11"`
	Bits       flags      `wire:"12"`
	unexported string
}

func TestOf_BuildsSortedDescriptor(t *testing.T) {
	d, err := Of(reflect.TypeOf(sample{}))
	require.NoError(t, err)

	for i := 1; i < len(d.Fields); i++ {
		assert.Less(t, d.Fields[i-1].Index, d.Fields[i].Index)
	}

	f, ok := d.FieldAt(3)
	require.True(t, ok)
	assert.Equal(t, wire.Float32, f.Tag)
}

func TestOf_CachesByType(t *testing.T) {
	t1, err1 := Of(reflect.TypeOf(sample{}))
	t2, err2 := Of(reflect.TypeOf(&sample{}))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Same(t, t1, t2)
}

func TestOf_FingerprintIsStableAndDistinguishesTypes(t *testing.T) {
	d1, err := Of(reflect.TypeOf(sample{}))
	require.NoError(t, err)
	assert.NotZero(t, d1.Fingerprint)

	d2, err := Of(reflect.TypeOf(sample{}))
	require.NoError(t, err)
	assert.Equal(t, d1.Fingerprint, d2.Fingerprint)

	other, err := Of(reflect.TypeOf(child{}))
	require.NoError(t, err)
	assert.NotEqual(t, d1.Fingerprint, other.Fingerprint)
}

func TestTagForType_Table(t *testing.T) {
	d, err := Of(reflect.TypeOf(sample{}))
	require.NoError(t, err)

	want := map[byte]wire.Tag{
		0:  wire.String,
		1:  wire.Int32,
		2:  wire.Bool,
		3:  wire.Float32,
		4:  wire.String,
		5:  wire.Date,
		6:  wire.UUID,
		7:  wire.StringArray,
		8:  wire.ListOfStrings,
		9:  wire.ExternalizableArray,
		10: wire.ListOfExternalizables,
		11: wire.Enum,
		12: wire.EnumSet,
	}

	for idx, tag := range want {
		f, ok := d.FieldAt(idx)
		require.Truef(t, ok, "field %d missing", idx)
		assert.Equalf(t, tag, f.Tag, "field %d", idx)
	}
}

type duplicateIndexes struct {
	A string `wire:"1"`
	B string `wire:"1"`
}

func TestOf_RejectsDuplicateIndex(t *testing.T) {
	_, err := Of(reflect.TypeOf(duplicateIndexes{}))
	assert.Error(t, err)
}

type noFields struct {
	Name string
}

func TestOf_RejectsEmptyDescriptor(t *testing.T) {
	_, err := Of(reflect.TypeOf(noFields{}))
	assert.Error(t, err)
}

type unexportedTagged struct {
	name string `wire:"0"` //nolint:unused
}

func TestOf_RejectsUnexportedTaggedField(t *testing.T) {
	_, err := Of(reflect.TypeOf(unexportedTagged{}))
	assert.Error(t, err)
}
