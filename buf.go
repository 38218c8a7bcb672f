// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "fmt"

// Buf is an owned, growable byte buffer with a capacity bounded to 65535
// bytes. Every mutating operation fails with ErrCapacity instead of
// growing past cap, matching the arena-backed containers' fixed-size
// discipline.
type Buf struct {
	dat []byte
	cap int
}

// NewBuf allocates a Buf of the given capacity from arena, align 1.
func NewBuf(a Arena, cap int) (*Buf, error) {
	if cap > MaxSlcLen {
		return nil, fmt.Errorf("%w: Buf cap %d exceeds %d", ErrCapacity, cap, MaxSlcLen)
	}
	dat, ok := a.Alloc(cap, 1)
	if !ok {
		return nil, ErrCapacity
	}
	return &Buf{dat: dat[:0], cap: cap}, nil
}

// Len returns the number of bytes currently in use.
func (b *Buf) Len() int { return len(b.dat) }

// Cap returns the buffer's fixed capacity.
func (b *Buf) Cap() int { return b.cap }

// Clear resets the buffer to empty without releasing its storage.
func (b *Buf) Clear() { b.dat = b.dat[:0] }

// AsSlc returns a Slc view of the buffer's used bytes.
func (b *Buf) AsSlc() Slc { return Slc{dat: b.dat} }

// Bytes returns the buffer's used bytes directly.
func (b *Buf) Bytes() []byte { return b.dat }

// Push appends one byte, failing with ErrCapacity on overflow.
func (b *Buf) Push(v byte) error {
	if b.Len() >= b.cap {
		return fmt.Errorf("%w: Buf push OOB", ErrCapacity)
	}
	b.dat = append(b.dat, v)
	return nil
}

// PushBE16 appends a big-endian uint16, failing with ErrCapacity on overflow.
func (b *Buf) PushBE16(v uint16) error {
	if b.Len()+2 > b.cap {
		return fmt.Errorf("%w: Buf pushBE16 OOB", ErrCapacity)
	}
	var tmp [2]byte
	StoreBE(tmp[:], 2, uint32(v))
	b.dat = append(b.dat, tmp[:]...)
	return nil
}

// PushBE32 appends a big-endian uint32, failing with ErrCapacity on overflow.
func (b *Buf) PushBE32(v uint32) error {
	if b.Len()+4 > b.cap {
		return fmt.Errorf("%w: Buf pushBE32 OOB", ErrCapacity)
	}
	var tmp [4]byte
	StoreBE(tmp[:], 4, v)
	b.dat = append(b.dat, tmp[:]...)
	return nil
}

// Extend appends all of s, failing with ErrCapacity if it would not fit.
func (b *Buf) Extend(s Slc) error {
	if b.Len()+s.Len() > b.cap {
		return fmt.Errorf("%w: Buf extend OOB", ErrCapacity)
	}
	b.dat = append(b.dat, s.dat...)
	return nil
}

// Slice returns the sub-Slc [start:end) of the buffer's used bytes.
func (b *Buf) Slice(start, end int) (Slc, error) {
	return b.AsSlc().Slice(start, end)
}

// Write implements io.Writer by extending the buffer with p. Unlike a
// conventional io.Writer it never short-writes: on overflow it appends
// nothing and returns ErrCapacity, matching every other Buf operation's
// fixed-capacity discipline.
func (b *Buf) Write(p []byte) (int, error) {
	if err := b.Extend(NewSlc(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// PlcBuf is a Buf with an additional read cursor (plc), used to ingest a
// stream incrementally: a caller advances Plc as it consumes bytes, then
// calls Shift to compact the buffer and reclaim space.
type PlcBuf struct {
	Buf
	plc int
}

// NewPlcBuf allocates a PlcBuf of the given capacity from arena.
func NewPlcBuf(a Arena, cap int) (*PlcBuf, error) {
	b, err := NewBuf(a, cap)
	if err != nil {
		return nil, err
	}
	return &PlcBuf{Buf: *b}, nil
}

// Plc returns the current cursor position.
func (p *PlcBuf) Plc() int { return p.plc }

// SetPlc sets the cursor position, bounds-checked against Len.
func (p *PlcBuf) SetPlc(plc int) error {
	if plc < 0 || plc > p.Len() {
		return fmt.Errorf("%w: PlcBuf plc out of range", ErrOOB)
	}
	p.plc = plc
	return nil
}

// AdvancePlc moves the cursor forward by n bytes, bounds-checked.
func (p *PlcBuf) AdvancePlc(n int) error {
	return p.SetPlc(p.plc + n)
}

// PlcAsSlc returns the unread tail dat[plc:len].
func (p *PlcBuf) PlcAsSlc() Slc {
	s, _ := p.Slice(p.plc, p.Len())
	return s
}

// Shift copies dat[plc:len] to the start of the buffer and resets plc to 0.
// After Shift, Len() == old Len()-old Plc() and Plc() == 0. Shift is
// idempotent when Plc() == 0.
func (p *PlcBuf) Shift() {
	if p.plc == 0 {
		return
	}
	n := copy(p.dat, p.dat[p.plc:])
	p.dat = p.dat[:n]
	p.plc = 0
}
