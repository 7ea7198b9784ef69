// Package ringbuffer implements the mixer's single-producer/single-
// consumer, wait-free sample handoff between an audio callback and the
// worker thread (spec.md §4.2). Capacity is rounded up to a power of
// two so position arithmetic is a bitwise mask; one slot is always
// left unoccupied so read==write is unambiguously "empty".
package ringbuffer

import "sync/atomic"

// cacheLinePad is sized to push each cursor onto its own cache line,
// preventing false sharing between the producer and consumer.
type cacheLinePad [64 - 8]byte

// RingBuffer is a fixed-capacity circular buffer of float32 samples.
type RingBuffer struct {
	buf  []float32
	mask uint64

	write atomic.Uint64
	_     cacheLinePad
	read  atomic.Uint64
	_     cacheLinePad
}

// New returns a ring buffer whose capacity is the next power of two at
// or above requested (minimum 2, so there is always one free slot).
func New(requested int) *RingBuffer {
	if requested < 2 {
		requested = 2
	}
	cap := nextPowerOfTwo(requested)
	return &RingBuffer{
		buf:  make([]float32, cap),
		mask: uint64(cap - 1),
	}
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Capacity returns the buffer's slot count (a power of two).
func (r *RingBuffer) Capacity() int { return len(r.buf) }

// AvailableRead returns the number of samples available to Read.
func (r *RingBuffer) AvailableRead() int {
	w := r.write.Load()
	rd := r.read.Load()
	return int(w - rd)
}

// AvailableWrite returns the number of samples Write can currently
// accept without overrunning the reader.
func (r *RingBuffer) AvailableWrite() int {
	return len(r.buf) - 1 - r.AvailableRead()
}

// IsEmpty reports whether there is nothing to read.
func (r *RingBuffer) IsEmpty() bool {
	return r.AvailableRead() == 0
}

// Write stores min(len(samples), AvailableWrite()) samples and returns
// the count actually written. Never blocks, never allocates.
func (r *RingBuffer) Write(samples []float32) int {
	free := r.AvailableWrite()
	n := len(samples)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}
	w := r.write.Load()
	for i := 0; i < n; i++ {
		r.buf[(w+uint64(i))&r.mask] = samples[i]
	}
	r.write.Store(w + uint64(n))
	return n
}

// Read fills buf with min(len(buf), AvailableRead()) samples and
// returns the count actually read. Never blocks, never allocates.
func (r *RingBuffer) Read(buf []float32) int {
	avail := r.AvailableRead()
	n := len(buf)
	if n > avail {
		n = avail
	}
	if n == 0 {
		return 0
	}
	rd := r.read.Load()
	for i := 0; i < n; i++ {
		buf[i] = r.buf[(rd+uint64(i))&r.mask]
	}
	r.read.Store(rd + uint64(n))
	return n
}

// Clear resets both cursors. Only safe when no producer or consumer is
// active, per spec.md §4.2.
func (r *RingBuffer) Clear() {
	r.write.Store(0)
	r.read.Store(0)
}
