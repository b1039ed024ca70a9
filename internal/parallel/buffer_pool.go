package parallel

import (
	"math/bits"
	"sync"
)

// minClass is the smallest size class, 4 KiB.
const minClass = 12

// maxClass is the largest pooled size class, 256 MiB. Larger buffers are
// allocated directly and left to the GC.
const maxClass = 28

// BufferPool reuses byte buffers used as chunk-local render targets.
//
// Buffers are grouped in power-of-two size classes so that a chunk of a
// slightly different height still hits the pool after a resize.
//
// Thread safety: BufferPool is safe for concurrent use.
type BufferPool struct {
	classes [maxClass + 1]sync.Pool
}

// NewBufferPool creates an empty buffer pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{}
}

// Get returns a buffer of length n. The contents are unspecified; callers
// overwrite every byte they use.
func (p *BufferPool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	c := class(n)
	if c > maxClass {
		return make([]byte, n)
	}
	if v := p.classes[c].Get(); v != nil {
		buf := v.(*[]byte)
		return (*buf)[:n]
	}
	return make([]byte, n, 1<<c)
}

// Put returns buf to the pool. Buffers not obtained from Get are accepted
// when their capacity is an exact size class. Nil is a no-op.
func (p *BufferPool) Put(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	c := class(cap(buf))
	if c > maxClass || 1<<c != cap(buf) {
		return
	}
	buf = buf[:0]
	p.classes[c].Put(&buf)
}

// class returns the size class holding n bytes.
func class(n int) int {
	c := bits.Len(uint(n - 1))
	if c < minClass {
		c = minClass
	}
	return c
}
