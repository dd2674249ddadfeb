// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/ring"
)

// =============================================================================
// Basic Operations
// =============================================================================

// TestRingBasic tests single-item FIFO transfer and full/empty signaling.
func TestRingBasic(t *testing.T) {
	r := ring.New[int](8)

	if r.Cap() != 7 {
		t.Fatalf("Cap: got %d, want 7", r.Cap())
	}

	// Push to capacity
	for i := range 7 {
		v := i + 100
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	// Full ring returns ErrWouldBlock
	v := 999
	if err := r.Push(&v); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Push on full: got %v, want ErrWouldBlock", err)
	}

	// Pop in FIFO order
	for i := range 7 {
		val, err := r.Pop()
		if err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Pop(%d): got %d, want %d", i, val, i+100)
		}
	}

	// Empty ring returns ErrWouldBlock
	if _, err := r.Pop(); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
}

// TestCap tests that usable capacity is one less than the slot count.
func TestCap(t *testing.T) {
	tests := []struct {
		slots    int
		expected int
	}{
		{2, 1},
		{4, 3},
		{8, 7},
		{64, 63},
		{1024, 1023},
	}

	for _, tt := range tests {
		r := ring.New[byte](tt.slots)
		if r.Cap() != tt.expected {
			t.Fatalf("New(%d).Cap() = %d, want %d", tt.slots, r.Cap(), tt.expected)
		}
	}
}

// TestPanicOnInvalidCapacity tests that non-power-of-two or too-small slot
// counts are construction contract violations.
func TestPanicOnInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{-4, 0, 1, 3, 5, 6, 7, 9, 100, 1000} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Fatalf("New(%d): expected panic", capacity)
				}
			}()
			ring.New[int](capacity)
		}()
	}
}

// =============================================================================
// State Queries
// =============================================================================

// TestStateQueries tests the Empty/Full/SizeApprox invariants through a
// full fill/drain cycle.
func TestStateQueries(t *testing.T) {
	r := ring.New[int](8)

	if !r.Empty() || r.Full() || r.SizeApprox() != 0 {
		t.Fatalf("fresh ring: Empty=%v Full=%v SizeApprox=%d", r.Empty(), r.Full(), r.SizeApprox())
	}

	for i := range 7 {
		v := i
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
		if r.SizeApprox() != i+1 {
			t.Fatalf("after %d pushes: SizeApprox=%d", i+1, r.SizeApprox())
		}
		if r.Empty() {
			t.Fatalf("after %d pushes: Empty", i+1)
		}
		if r.SizeApprox() > r.Cap() {
			t.Fatalf("SizeApprox %d exceeds Cap %d", r.SizeApprox(), r.Cap())
		}
	}

	if !r.Full() || r.SizeApprox() != r.Cap() {
		t.Fatalf("filled ring: Full=%v SizeApprox=%d Cap=%d", r.Full(), r.SizeApprox(), r.Cap())
	}

	for i := range 7 {
		if _, err := r.Pop(); err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if r.Full() {
			t.Fatalf("after %d pops: Full", i+1)
		}
		if r.SizeApprox() != 7-i-1 {
			t.Fatalf("after %d pops: SizeApprox=%d", i+1, r.SizeApprox())
		}
	}

	if !r.Empty() || r.SizeApprox() != 0 {
		t.Fatalf("drained ring: Empty=%v SizeApprox=%d", r.Empty(), r.SizeApprox())
	}
}

// TestFailedOpsLeaveStateUnchanged tests that a rejected Push or Pop moves
// no indices and writes no memory.
func TestFailedOpsLeaveStateUnchanged(t *testing.T) {
	r := ring.New[int](4)

	// Pop on empty
	if _, err := r.Pop(); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Pop on empty: got %v, want ErrWouldBlock", err)
	}
	if !r.Empty() || r.SizeApprox() != 0 {
		t.Fatalf("state changed by failed Pop: SizeApprox=%d", r.SizeApprox())
	}

	for i := range 3 {
		v := i + 1
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	// Push on full
	v := 999
	if err := r.Push(&v); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Push on full: got %v, want ErrWouldBlock", err)
	}
	if !r.Full() || r.SizeApprox() != 3 {
		t.Fatalf("state changed by failed Push: SizeApprox=%d", r.SizeApprox())
	}

	// Original contents intact
	for i := range 3 {
		val, err := r.Pop()
		if err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if val != i+1 {
			t.Fatalf("Pop(%d): got %d, want %d", i, val, i+1)
		}
	}
}

// TestClear tests single-threaded reinitialization.
func TestClear(t *testing.T) {
	r := ring.New[int](8)

	for i := range 5 {
		v := i
		if err := r.Push(&v); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	r.Clear()

	if !r.Empty() || r.SizeApprox() != 0 {
		t.Fatalf("after Clear: Empty=%v SizeApprox=%d", r.Empty(), r.SizeApprox())
	}
	if _, err := r.Pop(); !errors.Is(err, ring.ErrWouldBlock) {
		t.Fatalf("Pop after Clear: got %v, want ErrWouldBlock", err)
	}

	// Ring remains usable
	v := 42
	if err := r.Push(&v); err != nil {
		t.Fatalf("Push after Clear: %v", err)
	}
	val, err := r.Pop()
	if err != nil || val != 42 {
		t.Fatalf("Pop after Clear: got (%d, %v), want (42, nil)", val, err)
	}
}

// TestZeroValue tests that the zero value is a valid element.
func TestZeroValue(t *testing.T) {
	r := ring.New[int](4)
	v := 0
	if err := r.Push(&v); err != nil {
		t.Fatalf("push 0: %v", err)
	}
	val, err := r.Pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if val != 0 {
		t.Fatalf("got %d, want 0", val)
	}
}

// TestStructElements tests transfer of multi-word elements.
func TestStructElements(t *testing.T) {
	type sample struct {
		Seq   uint64
		Value float64
		Tag   [8]byte
	}

	r := ring.New[sample](4)

	for i := range 3 {
		s := sample{Seq: uint64(i), Value: float64(i) * 1.5, Tag: [8]byte{byte(i)}}
		if err := r.Push(&s); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	for i := range 3 {
		s, err := r.Pop()
		if err != nil {
			t.Fatalf("Pop(%d): %v", i, err)
		}
		if s.Seq != uint64(i) || s.Value != float64(i)*1.5 || s.Tag[0] != byte(i) {
			t.Fatalf("Pop(%d): got %+v", i, s)
		}
	}
}
