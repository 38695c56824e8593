package memory

import "bytes"

// maxPooledBuffer bounds what goes back into the buffer pool so one huge
// snapshot does not pin its backing array forever.
const maxPooledBuffer = 1 << 20

// Buffers is the shared pool of encode buffers.
var Buffers = NewPool(
	func() *bytes.Buffer { return new(bytes.Buffer) },
	func(b *bytes.Buffer) { b.Reset() },
)

// ReleaseBuffer returns b to Buffers unless it grew too large.
func ReleaseBuffer(b *bytes.Buffer) {
	if b.Cap() > maxPooledBuffer {
		return
	}
	Buffers.Put(b)
}
