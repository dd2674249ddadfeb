// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring provides a lock-free single-producer single-consumer
// circular buffer with single-item, bulk, overwrite, and zero-copy
// transfer operations.
//
// A Ring has a fixed power-of-two slot count; one slot is sacrificed to
// distinguish full from empty, so a ring created with New[T](n) holds up
// to n-1 elements. All operations are non-blocking and complete in time
// proportional to the number of elements moved.
//
// # Quick Start
//
//	r := ring.New[Event](1024) // holds up to 1023 elements
//
//	// Producer goroutine
//	ev := Event{...}
//	if err := r.Push(&ev); err != nil {
//	    // Ring is full - handle backpressure
//	}
//
//	// Consumer goroutine
//	ev, err := r.Pop()
//	if err == nil {
//	    process(ev)
//	}
//
// # Bulk Transfer
//
// PushSlice and PopSlice move runs of elements with at most two copies
// around the wrap boundary, publishing the index once:
//
//	sent := r.PushSlice(batch)       // sent <= len(batch), clamped to free space
//	got := r.PopSlice(out[:])        // got <= len(out), clamped to available
//
// Both clamp rather than fail: a zero return is a valid no-op, not an
// error.
//
// # Zero-Copy Access
//
// The acquire/commit protocol exposes the buffer memory directly, avoiding
// an intermediate copy through a temporary:
//
//	// Producer
//	span := r.WriteAcquire() // nil if full
//	n := fill(span)          // write elements in place
//	r.WriteCommit(n)         // publish exactly n elements
//
//	// Consumer
//	span := r.ReadAcquire() // nil if empty
//	n := consume(span)      // read elements in place
//	r.ReadCommit(n)         // release exactly n slots
//
// An acquired span never crosses the physical end of the buffer; callers
// needing more than one contiguous run acquire and commit twice. At most
// one write span and one read span may be outstanding at a time.
//
// # Overwrite Mode
//
// PushOverwrite never fails: when the ring is full it drops the oldest
// element by advancing the consumer's index from the producer side. With a
// concurrently racing consumer this is not linearizable - the element
// delivered and the element dropped can both differ from a sequential
// interpretation. This is a documented, accepted property of overwrite
// mode. Do not combine PushOverwrite with outstanding ReadAcquire spans.
//
// # Thread Safety
//
// Exactly one goroutine may produce (Push, PushSlice, PushOverwrite,
// WriteAcquire, WriteCommit) and exactly one goroutine may consume (Pop,
// PopSlice, ReadAcquire, ReadCommit) for the lifetime of a ring. There are
// no internal locks and no cross-producer or cross-consumer
// synchronization; violating the constraint causes undefined behavior.
// Clear and construction additionally require external single-threaded
// exclusivity.
//
// Visibility between the two sides rests entirely on acquire/release
// pairing: each side publishes its own index with a release store after
// writing slot memory, and observes the other side's index with an acquire
// load before touching the memory that index protects. Index loads by the
// owning side are relaxed, since a side never races with itself.
//
// # Error Handling
//
// Capacity conditions (full on Push, empty on Pop) are reported through
// return values: [ErrWouldBlock] for single-item operations, transferred
// counts for bulk operations, and nil spans for acquire. ErrWouldBlock is
// sourced from [code.hybscloud.com/iox] for ecosystem consistency:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := r.Push(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    backoff.Wait()
//	}
//
// Contract violations (capacity not a power of two, nil buffer) are
// programmer errors and panic at construction.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but cannot
// observe happens-before relationships established through atomic
// acquire-release orderings on separate variables. The ring's slot memory
// is protected exactly that way, so concurrent tests report false
// positives under the race detector even though the algorithm is correct.
// Such tests are excluded via //go:build !race.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering; tests use [code.hybscloud.com/spin] for CPU pause instructions.
package ring
