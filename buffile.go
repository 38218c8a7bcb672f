// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"fmt"
	"io"
)

// BufFile is an in-memory File: a Ring used purely for staging plus a
// PlcBuf that is the actual backing store, useful for tests and for any
// component that wants the File role without a real host handle. Read
// moves bytes from the backing PlcBuf's unread tail into the Ring,
// advancing its cursor, and then drains the Ring into the caller's buffer;
// Write enqueues into the Ring and immediately flushes it into the
// backing PlcBuf via Buf.Extend, so the backing store always reflects
// everything written so far.
type BufFile struct {
	BaseFile
	backing  PlcBuf
	arena    Arena
	ringPool *RingBackingPool // set instead of arena owning the Ring, when pool-backed
}

// NewBufFile allocates a BufFile whose Ring has capacity ringCap and whose
// backing store has capacity backingCap, seeded with the bytes of
// initial (which must fit within backingCap). A BufFile seeded with
// initial content and never Written to behaves as a readable fixture; an
// empty one accumulates whatever is Written to it.
func NewBufFile(a Arena, ringCap, backingCap int, initial []byte) (*BufFile, error) {
	r, err := NewRing(a, ringCap)
	if err != nil {
		return nil, err
	}
	return newBufFile(a, nil, r, backingCap, initial)
}

// NewBufFileFromPool is NewBufFile's pool-backed counterpart: the staging
// Ring's segment comes from ringPool (see RingBackingPool) instead of an
// Arena, while the backing store is still allocated from backingArena.
func NewBufFileFromPool(ringPool *RingBackingPool, backingArena Arena, backingCap int, initial []byte) (*BufFile, error) {
	r, err := NewRingFromPool(ringPool)
	if err != nil {
		return nil, err
	}
	return newBufFile(backingArena, ringPool, r, backingCap, initial)
}

func newBufFile(backingArena Arena, ringPool *RingBackingPool, r *Ring, backingCap int, initial []byte) (*BufFile, error) {
	b, err := NewPlcBuf(backingArena, backingCap)
	if err != nil {
		return nil, err
	}
	if len(initial) > 0 {
		if err := b.Extend(NewSlc(initial)); err != nil {
			return nil, err
		}
	}
	f := &BufFile{backing: *b, arena: backingArena, ringPool: ringPool}
	f.Buf = *r
	f.status = FileClosed
	return f, nil
}

// Open transitions the file from Closed to Done (ready for the next
// call). Calling Open twice returns ErrOrder.
func (f *BufFile) Open() error {
	if f.status != FileClosed {
		return fmt.Errorf("%w: BufFile already open", ErrOrder)
	}
	f.status = FileDone
	return nil
}

// fill tops up the Ring from the backing store's unread tail, advancing
// the backing cursor by however many bytes moved.
func (f *BufFile) fill() {
	for !f.Buf.IsFull() {
		tail := f.backing.PlcAsSlc()
		if tail.Len() == 0 {
			return
		}
		n := copy(f.Buf.availFirst(), tail.Bytes())
		if n == 0 {
			return
		}
		f.Buf.tail = (f.Buf.tail + n) % f.Buf.physCap()
		_ = f.backing.AdvancePlc(n)
	}
}

// Read satisfies io.Reader: it tops up the Ring from the backing store as
// needed, then drains into p. It returns io.EOF once the Ring is empty and
// the backing store's cursor has reached its end.
func (f *BufFile) Read(p []byte) (int, error) {
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: BufFile read while not open", ErrOrder)
	}
	f.status = FileReading
	if f.Buf.IsEmpty() {
		f.fill()
		if f.Buf.IsEmpty() {
			f.status = FileEOF
			return 0, io.EOF
		}
	}
	n := f.Buf.Move(NewSlc(p))
	f.status = FileDone
	return n, nil
}

// Write satisfies io.Writer: it stages p through the Ring and flushes into
// the backing PlcBuf, repeating until all of p is written or the backing
// store's capacity is exhausted (ErrCapacity).
func (f *BufFile) Write(p []byte) (int, error) {
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: BufFile write while not open", ErrOrder)
	}
	f.status = FileWriting
	written := 0
	for written < len(p) {
		chunk := p[written:]
		if room := f.Buf.Cap() - f.Buf.Len(); room < len(chunk) {
			chunk = chunk[:room]
		}
		if len(chunk) == 0 {
			if err := f.flush(); err != nil {
				f.status = FileError
				return written, err
			}
			continue
		}
		if err := f.Buf.Extend(NewSlc(chunk)); err != nil {
			f.status = FileError
			return written, err
		}
		written += len(chunk)
		if err := f.flush(); err != nil {
			f.status = FileError
			return written, err
		}
	}
	f.status = FileDone
	return written, nil
}

// flush drains the Ring into the backing PlcBuf until the Ring is empty.
func (f *BufFile) flush() error {
	for !f.Buf.IsEmpty() {
		seg := f.Buf.first()
		if err := f.backing.Extend(NewSlc(seg)); err != nil {
			return err
		}
		f.Buf.Consume(len(seg))
	}
	return nil
}

// Backing returns a Slc view of everything written (or seeded) into the
// file's backing store so far.
func (f *BufFile) Backing() Slc { return f.backing.AsSlc() }

// Seek repositions the backing store's read cursor. Only SEEK_SET with a
// non-negative offset is supported, matching the reference BufFile; CUR
// and END are declared by the File role but not meaningful for a store
// whose length grows as it is written, so both return ErrOrder.
func (f *BufFile) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart || offset < 0 {
		return 0, fmt.Errorf("%w: BufFile only supports SEEK_SET with offset>=0", ErrOrder)
	}
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: BufFile seek while not open", ErrOrder)
	}
	f.status = FileSeeking
	if err := f.backing.SetPlc(int(offset)); err != nil {
		f.status = FileError
		return 0, err
	}
	f.status = FileDone
	return offset, nil
}

// Stop cancels any in-flight operation by flushing the Ring into the
// backing store, leaving the file Done.
func (f *BufFile) Stop() {
	f.status = FileStopping
	_ = f.flush()
	f.status = FileDone
}

// Close transitions the file to Closed. It is idempotent.
func (f *BufFile) Close() error {
	f.status = FileClosed
	return nil
}

// Drop satisfies Resource: it closes the file and releases both the
// staging Ring and the backing PlcBuf, per the File role's drop(arena)
// contract. The backing store was allocated after the Ring, so it is freed
// first to respect the arena's reverse-order discipline. The Ring's
// backing memory returns to whichever source it came from: the RingBackingPool
// it was acquired from (NewBufFileFromPool), or the arena (NewBufFile).
func (f *BufFile) Drop() {
	_ = f.Close()
	if f.arena != nil && f.backing.cap > 0 {
		full := f.backing.dat[:f.backing.cap:f.backing.cap]
		_ = f.arena.Free(full, f.backing.cap, 1)
	}
	switch {
	case f.ringPool != nil:
		_ = f.ringPool.Release(f.Buf.dat)
	case f.arena != nil:
		if n := len(f.Buf.dat); n > 0 {
			_ = f.arena.Free(f.Buf.dat, n, 1)
		}
	}
	f.arena = nil
	f.ringPool = nil
}
