package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf_StableAndOrderSensitive(t *testing.T) {
	a := Of("demo.Widget", []byte{1, 8, 2, 0})
	b := Of("demo.Widget", []byte{1, 8, 2, 0})
	assert.Equal(t, a, b)

	c := Of("demo.Widget", []byte{2, 0, 1, 8})
	assert.NotEqual(t, a, c)

	d := Of("demo.Gadget", []byte{1, 8, 2, 0})
	assert.NotEqual(t, a, d)
}
