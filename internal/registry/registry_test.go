package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name string
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("demo.Widget", &widget{}))

	typ, ok := r.Lookup("demo.Widget")
	require.True(t, ok)
	assert.Equal(t, "widget", typ.Name())

	v, err := r.NewByName("demo.Widget")
	require.NoError(t, err)
	assert.IsType(t, &widget{}, v.Interface())
}

func TestLookupUnknownFails(t *testing.T) {
	r := New()
	_, ok := r.Lookup("nope")
	assert.False(t, ok)

	_, err := r.NewByName("nope")
	assert.Error(t, err)
}

func TestNameForFallsBackToDefault(t *testing.T) {
	r := New()
	name := r.NameFor(reflect.TypeOf(widget{}))
	assert.Contains(t, name, "widget")
}

func TestRegisterConflictingTypeErrors(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("demo.Widget", &widget{}))

	type other struct{}
	err := r.Register("demo.Widget", &other{})
	assert.Error(t, err)
}
