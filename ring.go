// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

// Ring is a lock-free single-producer single-consumer circular buffer with
// a fixed power-of-two slot count.
//
// Exactly one goroutine may act as producer (Push, PushSlice, PushOverwrite,
// WriteAcquire, WriteCommit) and exactly one goroutine may act as consumer
// (Pop, PopSlice, ReadAcquire, ReadCommit) for the lifetime of a Ring.
// Violating this constraint causes undefined behavior including data
// corruption; the ring performs no cross-producer or cross-consumer
// synchronization.
//
// Ring owns its backing storage and forwards every operation to a single
// bound engine; it adds no buffering and no validation beyond construction.
type Ring[T any] struct {
	e engine[T]
}

// New creates a ring with the given slot count.
//
// capacity must be a power of 2 greater than 1; anything else is a
// programmer error and panics. One slot is sacrificed to distinguish full
// from empty, so the usable capacity is capacity-1.
func New[T any](capacity int) *Ring[T] {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of 2 greater than 1")
	}
	r := &Ring[T]{}
	r.e.bind(make([]T, capacity))
	return r
}

// Cap returns the number of elements the ring can hold at once: one less
// than the slot count passed to New.
func (r *Ring[T]) Cap() int {
	return int(r.e.mask)
}

// Empty reports whether the ring holds no elements.
func (r *Ring[T]) Empty() bool {
	return r.e.empty()
}

// Full reports whether the ring is at capacity.
func (r *Ring[T]) Full() bool {
	return r.e.full()
}

// SizeApprox returns the number of elements in the ring.
//
// Under concurrent access the opposite side's index may advance while the
// snapshot is taken, so the result can be stale by one operation. It is
// exact when the caller is the only side currently operating (for example
// a consumer calling right after its own Pop).
func (r *Ring[T]) SizeApprox() int {
	return r.e.sizeApprox()
}

// Clear resets the ring to empty.
//
// Clear is not safe while either side is concurrently operating; it is
// intended for single-threaded reinitialization only.
func (r *Ring[T]) Clear() {
	r.e.clear()
}

// Push adds one element to the ring (producer only).
// The element is copied into the ring's buffer.
// Returns ErrWouldBlock if the ring is full; in that case no memory is
// written and no index changes.
func (r *Ring[T]) Push(elem *T) error {
	return r.e.push(elem)
}

// PushSlice adds up to len(src) elements to the ring (producer only) and
// returns the number actually transferred.
//
// The count is clamped to the free space, so it may be less than requested;
// zero is a valid result and leaves the ring unchanged. The copy is split
// into at most two contiguous chunks around the wrap boundary, and the
// write index is published once, after both chunks.
func (r *Ring[T]) PushSlice(src []T) int {
	return r.e.pushSlice(src)
}

// PushOverwrite adds one element to the ring (producer only), dropping the
// oldest element if the ring is full.
//
// When the producer detects a full ring it advances the consumer's index
// itself. If the consumer is mid-Pop at that moment, the element the
// consumer delivers and the element considered dropped can both differ
// from a sequential interpretation. This race is an accepted property of
// overwrite mode, not a defect.
//
// Do not combine PushOverwrite with an outstanding ReadAcquire span: the
// producer-side tail advance invalidates the span without the consumer's
// knowledge.
func (r *Ring[T]) PushOverwrite(elem *T) {
	r.e.pushOverwrite(elem)
}

// Pop removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty; in that case
// no index changes. The vacated slot is zeroed so referenced objects can
// be garbage collected.
func (r *Ring[T]) Pop() (T, error) {
	return r.e.pop()
}

// PopSlice removes up to len(dst) elements into dst (consumer only) and
// returns the number actually transferred.
//
// The count is clamped to the elements available, so it may be less than
// requested; zero is a valid result and leaves the ring unchanged. Vacated
// slots are zeroed.
func (r *Ring[T]) PopSlice(dst []T) int {
	return r.e.popSlice(dst)
}

// WriteAcquire returns a span of free slots at the current write position
// for direct in-place writing (producer only), or nil if the ring is full.
//
// The span never crosses the physical end of the buffer; a producer that
// needs more room than one contiguous run must acquire and commit twice.
// Written elements become visible to the consumer only after WriteCommit.
// At most one write span may be outstanding at a time; acquiring again
// before committing is undefined usage and is not guarded.
func (r *Ring[T]) WriteAcquire() []T {
	return r.e.writeAcquire()
}

// WriteCommit publishes the first n elements of the last acquired write
// span (producer only). n must not exceed the length of that span; n == 0
// is a valid no-op.
func (r *Ring[T]) WriteCommit(n int) {
	r.e.writeCommit(n)
}

// ReadAcquire returns a span of readable slots at the current read
// position for direct in-place access (consumer only), or nil if the ring
// is empty.
//
// The span never crosses the physical end of the buffer. The slots are
// released back to the producer only after ReadCommit; after committing,
// the span must no longer be used. At most one read span may be
// outstanding at a time; acquiring again before committing is undefined
// usage and is not guarded.
func (r *Ring[T]) ReadAcquire() []T {
	return r.e.readAcquire()
}

// ReadCommit releases the first n elements of the last acquired read span
// (consumer only). n must not exceed the length of that span; n == 0 is a
// valid no-op. Committed slots are not zeroed: the zero-copy path leaves
// element copies in place until the producer overwrites them.
func (r *Ring[T]) ReadCommit(n int) {
	r.e.readCommit(n)
}
