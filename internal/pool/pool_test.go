package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferGrowAndReset(t *testing.T) {
	b := NewBuffer()
	_, _ = b.Write(make([]byte, 10))
	assert.Equal(t, 10, b.Len())

	b.Reset()
	assert.Equal(t, 0, b.Len())
}

func TestBufferShrinksAboveThreshold(t *testing.T) {
	b := NewBuffer()
	_, _ = b.Write(make([]byte, shrinkAbove+1))
	assert.Greater(t, cap(b.buf), shrinkAbove)

	b.Reset()
	assert.Equal(t, initialSize, cap(b.buf))
}

func TestBufferKeepsCapacityBelowThreshold(t *testing.T) {
	b := NewBuffer()
	_, _ = b.Write(make([]byte, 4096))
	capBefore := cap(b.buf)

	b.Reset()
	assert.Equal(t, capBefore, cap(b.buf))
	assert.Equal(t, 0, b.Len())
}

func TestPoolGetReturnsResetBuffer(t *testing.T) {
	b := Get()
	_, _ = b.Write([]byte("hello"))
	Put(b)

	b2 := Get()
	assert.Equal(t, 0, b2.Len())
}
