// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reg lays out typed, clamped fields over a flat byte array.
//
// A Layout is built once at startup by registering fields; each
// registration reserves the field's offset in declaration order. Field
// handles then read and write any byte slice at least Layout.Size() bytes
// long, so the same layout can be applied to multiple buffers (for
// example the payload area of a stored record).
//
// Integer fields clamp written values to their configured range rather
// than failing; string fields truncate and stay NUL-terminated. Reset
// restores every field of a buffer to its default.
//
// The package performs no allocation after layout construction and no
// interpretation beyond the registered fields; unregistered bytes are
// never touched.
package reg

// Layout tracks the total size and the reset behavior of a set of fields.
// Register all fields before using the layout; registration is not
// goroutine-safe.
type Layout struct {
	size   int
	resets []func(b []byte)
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// Size returns the number of bytes the registered fields occupy.
func (l *Layout) Size() int {
	return l.size
}

// Reset writes every field's default value into b.
func (l *Layout) Reset(b []byte) {
	for _, reset := range l.resets {
		reset(b)
	}
}

// alloc reserves n bytes and returns their offset.
func (l *Layout) alloc(n int) int {
	off := l.size
	l.size += n
	return off
}

func clampU8(v, min, max uint8) uint8 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampI8(v, min, max int8) int8 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// U8Field is an 8-bit unsigned integer field with clamping.
type U8Field struct {
	off           int
	min, max, def uint8
}

// U8 registers an unsigned 8-bit field with the given range and default.
func U8(l *Layout, min, max, def uint8) U8Field {
	f := U8Field{off: l.alloc(1), min: min, max: max, def: def}
	l.resets = append(l.resets, f.Reset)
	return f
}

// Get returns the stored value.
func (f U8Field) Get(b []byte) uint8 {
	return b[f.off]
}

// Set stores v, clamped to the field's range.
func (f U8Field) Set(b []byte, v uint8) {
	b[f.off] = clampU8(v, f.min, f.max)
}

// Reset stores the default value.
func (f U8Field) Reset(b []byte) {
	f.Set(b, f.def)
}

// I8Field is an 8-bit signed integer field with clamping.
type I8Field struct {
	off           int
	min, max, def int8
}

// I8 registers a signed 8-bit field with the given range and default.
func I8(l *Layout, min, max, def int8) I8Field {
	f := I8Field{off: l.alloc(1), min: min, max: max, def: def}
	l.resets = append(l.resets, f.Reset)
	return f
}

// Get returns the stored value.
func (f I8Field) Get(b []byte) int8 {
	return int8(b[f.off])
}

// Set stores v, clamped to the field's range.
func (f I8Field) Set(b []byte, v int8) {
	b[f.off] = uint8(clampI8(v, f.min, f.max))
}

// Reset stores the default value.
func (f I8Field) Reset(b []byte) {
	f.Set(b, f.def)
}

// Enum8Field is an enumeration stored as one byte, clamped to the number
// of enumerators.
type Enum8Field[E ~uint8] struct {
	off   int
	count int
	def   E
}

// Enum8 registers an enum field holding values in [0, count).
func Enum8[E ~uint8](l *Layout, count int, def E) Enum8Field[E] {
	f := Enum8Field[E]{off: l.alloc(1), count: count, def: def}
	l.resets = append(l.resets, f.Reset)
	return f
}

// Get returns the stored value.
func (f Enum8Field[E]) Get(b []byte) E {
	return E(b[f.off])
}

// Set stores v, clamped to the last enumerator if out of range.
func (f Enum8Field[E]) Set(b []byte, v E) {
	if int(v) >= f.count {
		v = E(f.count - 1)
	}
	b[f.off] = uint8(v)
}

// Reset stores the default value.
func (f Enum8Field[E]) Reset(b []byte) {
	f.Set(b, f.def)
}

// StringField is a fixed-capacity, NUL-terminated string field. Writes
// truncate to the capacity; the terminator is always preserved.
type StringField struct {
	off int
	n   int // capacity including the terminator
	def string
}

// String registers a string field of n bytes, one of which is reserved
// for the terminator.
func String(l *Layout, n int, def string) StringField {
	if n < 1 {
		panic("reg: string capacity must be at least 1")
	}
	f := StringField{off: l.alloc(n), n: n, def: def}
	l.resets = append(l.resets, f.Reset)
	return f
}

// Get returns the stored string, truncated at the first NUL or at the
// field capacity, whichever comes first.
func (f StringField) Get(b []byte) string {
	s := b[f.off : f.off+f.n]
	for i := range f.n - 1 {
		if s[i] == 0 {
			return string(s[:i])
		}
	}
	return string(s[:f.n-1])
}

// Set stores v, truncated to the capacity, and terminates it.
func (f StringField) Set(b []byte, v string) {
	s := b[f.off : f.off+f.n]
	i := 0
	for ; i < f.n-1 && i < len(v) && v[i] != 0; i++ {
		s[i] = v[i]
	}
	s[i] = 0
}

// Reset stores the default value.
func (f StringField) Reset(b []byte) {
	f.Set(b, f.def)
}

// U8ArrayField is a fixed-size array of clamped 8-bit unsigned integers.
type U8ArrayField struct {
	off, n        int
	min, max, def uint8
}

// U8Array registers an array of n unsigned 8-bit elements sharing one
// range and default.
func U8Array(l *Layout, n int, min, max, def uint8) U8ArrayField {
	f := U8ArrayField{off: l.alloc(n), n: n, min: min, max: max, def: def}
	l.resets = append(l.resets, f.Reset)
	return f
}

// Len returns the array length.
func (f U8ArrayField) Len() int {
	return f.n
}

// At returns the element at index i.
func (f U8ArrayField) At(b []byte, i int) uint8 {
	return b[f.off+i]
}

// SetAt stores v at index i, clamped to the element range.
func (f U8ArrayField) SetAt(b []byte, i int, v uint8) {
	b[f.off+i] = clampU8(v, f.min, f.max)
}

// Set stores the leading elements of vals; extra values are ignored.
func (f U8ArrayField) Set(b []byte, vals []uint8) {
	for i := 0; i < len(vals) && i < f.n; i++ {
		f.SetAt(b, i, vals[i])
	}
}

// Reset stores the default value in every element.
func (f U8ArrayField) Reset(b []byte) {
	for i := range f.n {
		f.SetAt(b, i, f.def)
	}
}

// U8ListField is a variable-length list of clamped 8-bit unsigned
// integers with a one-byte length prefix.
type U8ListField struct {
	off, capacity int
	min, max      uint8
}

// U8List registers a list holding up to capacity unsigned 8-bit elements.
func U8List(l *Layout, capacity int, min, max uint8) U8ListField {
	if capacity < 1 || capacity > 0xFF {
		panic("reg: list capacity must be in [1, 255]")
	}
	f := U8ListField{off: l.alloc(1 + capacity), capacity: capacity, min: min, max: max}
	l.resets = append(l.resets, f.Reset)
	return f
}

// Cap returns the list capacity.
func (f U8ListField) Cap() int {
	return f.capacity
}

// Len returns the current number of elements.
func (f U8ListField) Len(b []byte) int {
	return int(b[f.off])
}

// At returns the element at index i.
func (f U8ListField) At(b []byte, i int) uint8 {
	return b[f.off+1+i]
}

// Push appends v, clamped to the element range. Returns false if the list
// is at capacity.
func (f U8ListField) Push(b []byte, v uint8) bool {
	n := int(b[f.off])
	if n >= f.capacity {
		return false
	}
	b[f.off+1+n] = clampU8(v, f.min, f.max)
	b[f.off] = uint8(n + 1)
	return true
}

// Reset empties the list. Reserved element bytes keep their previous
// contents; only the length is cleared.
func (f U8ListField) Reset(b []byte) {
	b[f.off] = 0
}
