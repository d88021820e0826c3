package pool

import "sync"

// scratchPool hands out Buffers for the encoding of a single length-dynamic
// field. A goroutine must not hold two borrowed Buffers for two concurrently
// in-flight length-dynamic fields at the same nesting depth — the encoder
// enforces this by always Put-ing the field's buffer back before starting the
// next field, exactly mirroring spec.md §5's reentrancy restriction.
var scratchPool = sync.Pool{
	New: func() any { return NewBuffer() },
}

// Get borrows a reset Buffer from the pool.
func Get() *Buffer {
	buf, _ := scratchPool.Get().(*Buffer)
	buf.Reset()

	return buf
}

// Put returns buf to the pool for reuse.
func Put(buf *Buffer) {
	if buf == nil {
		return
	}
	scratchPool.Put(buf)
}
