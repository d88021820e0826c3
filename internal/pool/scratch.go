// Package pool provides the scratch buffer the encoder uses to materialize
// a length-dynamic field before writing its 4-byte length prefix (spec.md
// §4.D). It is adapted from a general-purpose pooled byte buffer: the
// growth strategy and Write/WriteTo shape are unchanged, but Reset gained
// the spec's specific 1 MiB high-water shrink-to-1 KiB rule, and the pool
// itself is exposed as "borrow for one length-dynamic field" rather than
// goroutine-local storage, since Go goroutines are not a stable place to
// pin per-thread state the way Java threads are.
package pool

import "io"

const (
	initialSize = 1024          // 1 KiB, the shrink target
	shrinkAbove = 1024 * 1024   // 1 MiB, the growth ceiling that triggers a shrink on reset
)

// Buffer is a growable byte buffer with a Java ByteArrayOutputStream-like
// write API plus a WriteTo for flushing into the real output.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a Buffer ready for use, pre-sized to initialSize.
func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 0, initialSize)}
}

// Reset empties the buffer for reuse. If the buffer grew beyond 1 MiB while
// encoding the previous field, the backing array is discarded and replaced
// with a fresh 1 KiB one so a single oversized field does not permanently
// inflate the pool's per-goroutine memory footprint (spec.md §3).
func (b *Buffer) Reset() {
	if cap(b.buf) > shrinkAbove {
		b.buf = make([]byte, 0, initialSize)
		return
	}
	b.buf = b.buf[:0]
}

// Len returns the number of bytes currently buffered.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Bytes returns the buffered bytes. The slice is only valid until the next
// Reset or Write call.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Write implements io.Writer, growing the backing array as needed.
func (b *Buffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// WriteTo flushes the buffered bytes to w, implementing io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf)
	return int64(n), err
}

var _ io.Writer = (*Buffer)(nil)
var _ io.WriterTo = (*Buffer)(nil)
