// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import "code.hybscloud.com/atomix"

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// engine is the core of the ring: every index computation, every capacity
// check, and every atomic operation lives here. The backing buffer is
// borrowed from the owning Ring; the engine never allocates.
//
// head is the next slot to be written and advances only on the producer
// side; tail is the next slot to be read and advances only on the consumer
// side. head == tail means empty, (head+1)&mask == tail means full: one
// slot is permanently sacrificed so the two states never collide, and the
// usable capacity is len(buf)-1.
//
// Ordering discipline: each side publishes its own index with StoreRelease
// after touching slot memory, and observes the other side's index with
// LoadAcquire before touching memory that index protects. A side loads its
// own index with LoadRelaxed, since it never races with itself.
type engine[T any] struct {
	_    pad
	head atomix.Uint64 // next slot to write (producer-owned)
	_    pad
	tail atomix.Uint64 // next slot to read (consumer-owned)
	_    pad
	buf  []T
	mask uint64 // len(buf) - 1
}

// bind attaches the engine to its backing storage. The buffer contract
// (non-nil, power-of-two length greater than 1) is a programmer error,
// checked once here and fatal.
func (e *engine[T]) bind(buf []T) {
	if buf == nil {
		panic("ring: nil buffer")
	}
	n := uint64(len(buf))
	if n < 2 || n&(n-1) != 0 {
		panic("ring: capacity must be a power of 2 greater than 1")
	}
	e.buf = buf
	e.mask = n - 1
}

// clear resets both indices. Single-threaded use only.
func (e *engine[T]) clear() {
	e.head.StoreRelease(0)
	e.tail.StoreRelease(0)
}

func (e *engine[T]) empty() bool {
	h := e.head.LoadAcquire()
	t := e.tail.LoadRelaxed()
	return h == t
}

func (e *engine[T]) full() bool {
	h := e.head.LoadRelaxed()
	next := (h + 1) & e.mask
	t := e.tail.LoadAcquire()
	return next == t
}

func (e *engine[T]) sizeApprox() int {
	h := e.head.LoadAcquire()
	t := e.tail.LoadRelaxed()
	n := e.mask + 1
	return int((h + n - t) & e.mask)
}

func (e *engine[T]) push(elem *T) error {
	h := e.head.LoadRelaxed()
	t := e.tail.LoadAcquire()
	next := (h + 1) & e.mask
	if next == t {
		return ErrWouldBlock
	}
	e.buf[h] = *elem
	e.head.StoreRelease(next)
	return nil
}

func (e *engine[T]) pushSlice(src []T) int {
	h := e.head.LoadRelaxed()
	t := e.tail.LoadAcquire()
	n := e.mask + 1
	space := (t + n - 1 - h) & e.mask // keep one empty slot
	if space == 0 {
		return 0
	}
	size := uint64(len(src))
	if size > space {
		size = space
	}

	// First contiguous chunk, up to the physical end of the buffer.
	c1 := n - h
	if c1 > size {
		c1 = size
	}
	copy(e.buf[h:h+c1], src[:c1])

	// Second chunk restarts at slot zero.
	if size > c1 {
		copy(e.buf[:size-c1], src[c1:size])
	}

	e.head.StoreRelease((h + size) & e.mask)
	return int(size)
}

func (e *engine[T]) pushOverwrite(elem *T) {
	h := e.head.LoadRelaxed()
	t := e.tail.LoadAcquire()
	next := (h + 1) & e.mask
	if next == t {
		// Full: drop the oldest element by advancing tail ourselves.
		// Racy against a concurrent Pop; see the PushOverwrite doc.
		e.tail.StoreRelease((t + 1) & e.mask)
	}
	e.buf[h] = *elem
	e.head.StoreRelease(next)
}

func (e *engine[T]) pop() (T, error) {
	t := e.tail.LoadRelaxed()
	h := e.head.LoadAcquire()
	if h == t {
		var zero T
		return zero, ErrWouldBlock
	}
	elem := e.buf[t]
	var zero T
	e.buf[t] = zero
	e.tail.StoreRelease((t + 1) & e.mask)
	return elem, nil
}

func (e *engine[T]) popSlice(dst []T) int {
	t := e.tail.LoadRelaxed()
	h := e.head.LoadAcquire()
	n := e.mask + 1
	avail := (h + n - t) & e.mask
	if avail == 0 {
		return 0
	}
	size := uint64(len(dst))
	if size > avail {
		size = avail
	}

	// First contiguous chunk, up to the physical end of the buffer.
	c1 := n - t
	if c1 > size {
		c1 = size
	}
	copy(dst[:c1], e.buf[t:t+c1])
	clear(e.buf[t : t+c1])

	// Second chunk restarts at slot zero.
	if size > c1 {
		copy(dst[c1:size], e.buf[:size-c1])
		clear(e.buf[:size-c1])
	}

	e.tail.StoreRelease((t + size) & e.mask)
	return int(size)
}

func (e *engine[T]) writeAcquire() []T {
	h := e.head.LoadRelaxed()
	t := e.tail.LoadAcquire()
	n := e.mask + 1
	space := (t + n - 1 - h) & e.mask // keep one empty slot
	if space == 0 {
		return nil
	}
	untilWrap := n - h
	if space > untilWrap {
		space = untilWrap
	}
	return e.buf[h : h+space]
}

func (e *engine[T]) writeCommit(n int) {
	h := e.head.LoadRelaxed()
	e.head.StoreRelease((h + uint64(n)) & e.mask)
}

func (e *engine[T]) readAcquire() []T {
	t := e.tail.LoadRelaxed()
	h := e.head.LoadAcquire()
	n := e.mask + 1
	avail := (h + n - t) & e.mask
	if avail == 0 {
		return nil
	}
	untilWrap := n - t
	if avail > untilWrap {
		avail = untilWrap
	}
	return e.buf[t : t+avail]
}

func (e *engine[T]) readCommit(n int) {
	t := e.tail.LoadRelaxed()
	e.tail.StoreRelease((t + uint64(n)) & e.mask)
}
