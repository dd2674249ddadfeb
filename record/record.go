// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package record implements a redundant, CRC-checked, sequence-numbered
// record codec for wear-leveled persistent storage.
//
// A record occupies Redundancy rotating slots of Size bytes each. Every
// write advances to the next slot with an incremented sequence number, so
// writes spread evenly across the storage area and the newest valid copy
// survives a torn or corrupted write. Each slot carries a CRC-16/CCITT
// checksum, a type byte identifying the record, and the sequence number,
// followed by the payload.
//
// The codec is storage-agnostic: reads and writes go through caller
// provided functions, so the backing blob can be flash pages, a file, or
// plain memory. It has no interaction with any other package in this
// module.
package record

// HeaderSize is the per-slot overhead in bytes: CRC (2), type (1),
// sequence number (1).
const HeaderSize = 4

// crc16Poly is the CRC-16/CCITT polynomial.
const crc16Poly = 0x1021

// Crc16 returns the CRC-16/CCITT checksum of data, starting from the
// conventional 0xFFFF seed.
func Crc16(data []byte) uint16 {
	return Crc16Update(0xFFFF, data)
}

// Crc16Update continues a CRC-16/CCITT computation over data.
func Crc16Update(crc uint16, data []byte) uint16 {
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ crc16Poly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Config describes the layout of one record over its storage area.
type Config struct {
	// Size is the size of one slot in bytes, header included.
	Size int
	// Redundancy is the number of rotating slot copies.
	Redundancy int
	// Type is the magic byte identifying the record type.
	Type byte
}

// PayloadSize returns the number of payload bytes carried by each slot.
func (c Config) PayloadSize() int {
	return c.Size - HeaderSize
}

// TotalSize returns the size of the whole storage area in bytes.
func (c Config) TotalSize() int {
	return c.Size * c.Redundancy
}

func (c Config) check() {
	if c.Size <= HeaderSize {
		panic("record: slot size must exceed the header size")
	}
	if c.Redundancy < 1 {
		panic("record: redundancy must be at least 1")
	}
}

// Cursor returns a cursor positioned at the initial slot.
func (c Config) Cursor() Cursor {
	c.check()
	return Cursor{Config: c}
}

// CursorAt returns a cursor positioned at the given slot index and
// sequence number, for resuming after the current position has been
// recovered from storage.
func (c Config) CursorAt(index int, seq uint8) Cursor {
	c.check()
	return Cursor{Config: c, Index: index, Seq: seq}
}

// Cursor is a position within a record storage area: the slot index and
// sequence number of the newest copy seen so far.
type Cursor struct {
	Config Config
	Index  int
	Seq    uint8
}

// ReadSlot validates the slot image in and, if it is acceptable, copies
// its payload to out and adopts its index and sequence number.
//
// A slot is rejected when its CRC does not match, its type byte differs
// from the configured type, or (for any slot after the first) its sequence
// number is not within Redundancy steps ahead of the cursor. The first
// slot seeds the sequence tracking unconditionally.
func (c *Cursor) ReadSlot(index int, in, out []byte) bool {
	crcRead := uint16(in[0]) | uint16(in[1])<<8
	crcCalc := Crc16(in[2:c.Config.Size])
	if crcRead != crcCalc {
		return false
	}
	if in[2] != c.Config.Type {
		return false
	}
	seq := in[3]
	if index > 0 {
		// Sequence distance is computed modulo 255, matching the
		// window arithmetic used by the writer rotation.
		distance := int(seq) - int(c.Seq)
		for distance < 0 {
			distance += 0xFF
		}
		distance %= 0xFF
		if distance >= c.Config.Redundancy {
			return false
		}
	}

	c.Seq = seq
	c.Index = index
	copy(out[:c.Config.PayloadSize()], in[HeaderSize:c.Config.Size])
	return true
}

// Advance moves the cursor to the next slot in the rotation.
func (c *Cursor) Advance() {
	c.Seq++
	c.Index = (c.Index + 1) % c.Config.Redundancy
}

// WriteSlot encodes payload into out as a slot image at the cursor's
// current sequence number. out must be at least Config.Size bytes;
// payload must be Config.PayloadSize() bytes.
//
// Most callers want Advance before WriteSlot so the new copy lands in the
// next slot of the rotation; WriteNext does both.
func (c *Cursor) WriteSlot(payload, out []byte) {
	out[2] = c.Config.Type
	out[3] = c.Seq
	copy(out[HeaderSize:c.Config.Size], payload)

	crc := Crc16(out[2:c.Config.Size])
	out[0] = byte(crc)
	out[1] = byte(crc >> 8)
}

// Read scans every slot through readFn and copies the payload of the
// newest valid one to out. readFn receives a slot index and returns the
// slot image, or nil if the slot could not be read at all, which aborts
// the scan. Read reports whether any valid slot was found.
func (c *Cursor) Read(out []byte, readFn func(index int) []byte) bool {
	found := false
	for i := range c.Config.Redundancy {
		in := readFn(i)
		if in == nil {
			return false
		}
		if c.ReadSlot(i, in, out) {
			found = true
		}
	}
	return found
}

// WriteNext advances the rotation, encodes payload into scratch, and hands
// the finished slot image to writeFn together with its slot index. scratch
// must be at least Config.Size bytes. Returns writeFn's result.
func (c *Cursor) WriteNext(payload, scratch []byte, writeFn func(index int, data []byte) bool) bool {
	c.Advance()
	c.WriteSlot(payload, scratch)
	return writeFn(c.Index, scratch[:c.Config.Size])
}
