// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"bytes"
	"fmt"
	"io"
)

// Ring is a single-producer/single-consumer byte queue with wraparound.
// Its physical backing array has capacity _cap, but only _cap-1 bytes are
// ever logically usable — the gap is what lets isEmpty (head==tail) and
// isFull ((tail+1) mod _cap == head) be distinguished without a separate
// counter.
type Ring struct {
	dat  []byte
	head int
	tail int
}

// NewRing allocates a Ring whose logical (usable) capacity is n bytes; its
// physical backing array is n+1 bytes.
func NewRing(a Arena, n int) (*Ring, error) {
	dat, ok := a.Alloc(n+1, 1)
	if !ok {
		return nil, ErrCapacity
	}
	return &Ring{dat: dat}, nil
}

// NewRingFromPool acquires one fixed-size segment from p and builds a Ring
// directly over it, bypassing the Arena/BBA path entirely. This is for the
// case spec.md §5 gestures at but the original never implements: backing
// storage shared, under real concurrent acquisition, across independently
// owned (and independently single-threaded) BBAs/fibers — e.g. a pool of
// worker fibers each opening its own BaseFile. The segment must eventually
// be handed back with p.Release(r.dat); BufFile and UnixFile's
// pool-backed constructors do this from their Drop.
func NewRingFromPool(p *RingBackingPool) (*Ring, error) {
	seg, err := p.Acquire()
	if err != nil {
		return nil, err
	}
	return &Ring{dat: seg}, nil
}

func (r *Ring) physCap() int { return len(r.dat) }

// Cap returns the logical (usable) capacity.
func (r *Ring) Cap() int { return r.physCap() - 1 }

// IsEmpty reports whether the ring holds no bytes.
func (r *Ring) IsEmpty() bool { return r.head == r.tail }

// IsFull reports whether the ring is at logical capacity.
func (r *Ring) IsFull() bool { return (r.tail+1)%r.physCap() == r.head }

// Len returns the number of bytes currently queued.
func (r *Ring) Len() int {
	d := r.tail - r.head
	if d < 0 {
		d += r.physCap()
	}
	return d
}

// Push enqueues one byte, failing with ErrOOB if the ring is full.
func (r *Ring) Push(b byte) error {
	if r.IsFull() {
		return fmt.Errorf("%w: Ring push on full ring", ErrOOB)
	}
	r.dat[r.tail] = b
	r.tail = (r.tail + 1) % r.physCap()
	return nil
}

// Pop dequeues and returns one byte, failing with ErrOOB if the ring is
// empty.
func (r *Ring) Pop() (byte, error) {
	if r.IsEmpty() {
		return 0, fmt.Errorf("%w: Ring pop on empty ring", ErrOOB)
	}
	b := r.dat[r.head]
	r.head = (r.head + 1) % r.physCap()
	return b, nil
}

// first returns the contiguous segment of queued bytes starting at head,
// up to either tail or the end of the backing array, whichever comes
// first.
func (r *Ring) first() []byte {
	if r.IsEmpty() {
		return nil
	}
	if r.tail > r.head {
		return r.dat[r.head:r.tail]
	}
	return r.dat[r.head:]
}

// second returns the wrapped remainder of the queued bytes, following
// first(), or nil if the queued bytes do not wrap.
func (r *Ring) second() []byte {
	if r.IsEmpty() || r.tail > r.head {
		return nil
	}
	return r.dat[:r.tail]
}

// availFirst returns the contiguous free segment starting at tail, up to
// either head-1 or the end of the backing array, whichever comes first —
// the primary destination for a vectored read into the ring.
func (r *Ring) availFirst() []byte {
	if r.IsFull() {
		return nil
	}
	if r.head > r.tail {
		return r.dat[r.tail : r.head-1]
	}
	end := r.physCap()
	if r.head == 0 {
		end--
	}
	return r.dat[r.tail:end]
}

// availSecond returns the wrapped remainder of the free segment following
// availFirst(), or nil if the free space does not wrap.
func (r *Ring) availSecond() []byte {
	if r.IsFull() || r.head > r.tail || r.head == 0 {
		return nil
	}
	return r.dat[:r.head-1]
}

// IoVec returns the ring's free space as up to two slices suitable for a
// vectored read (readv-style) directly into the backing array.
func (r *Ring) IoVec() [][]byte {
	var out [][]byte
	if f := r.availFirst(); len(f) > 0 {
		out = append(out, f)
	}
	if s := r.availSecond(); len(s) > 0 {
		out = append(out, s)
	}
	return out
}

// CommitWrite advances tail by n bytes after a caller has written directly
// into the slices IoVec returned, failing with ErrOOB if n exceeds the
// free space.
func (r *Ring) CommitWrite(n int) error {
	if n > r.Cap()-r.Len() {
		return fmt.Errorf("%w: Ring commit exceeds free space", ErrOOB)
	}
	r.tail = (r.tail + n) % r.physCap()
	return nil
}

// Extend enqueues all of s, failing with ErrOOB (and enqueuing nothing) if
// it would not fit.
func (r *Ring) Extend(s Slc) error {
	if s.Len() > r.Cap()-r.Len() {
		return fmt.Errorf("%w: Ring extend exceeds free space", ErrOOB)
	}
	rem := s.Bytes()
	for len(rem) > 0 {
		f := r.availFirst()
		n := copy(f, rem)
		rem = rem[n:]
		r.tail = (r.tail + n) % r.physCap()
	}
	return nil
}

// Get copies up to dst.Len() queued bytes into dst without removing them,
// returning the number copied.
func (r *Ring) Get(dst Slc) int {
	total := 0
	out := dst.Bytes()
	for _, seg := range [][]byte{r.first(), r.second()} {
		if len(out) == 0 {
			break
		}
		n := copy(out, seg)
		out = out[n:]
		total += n
	}
	return total
}

// Move copies up to dst.Len() queued bytes into dst and removes them from
// the ring, returning the number moved.
func (r *Ring) Move(dst Slc) int {
	n := r.Get(dst)
	r.Consume(n)
	return n
}

// WriteTo satisfies io.WriterTo: it hands the ring's up-to-two contiguous
// segments to w as a single Buffers batch rather than writing them one at
// a time, and consumes exactly the bytes w accepted. Against a writer that
// itself supports vectored I/O (net.Buffers recognizes *net.TCPConn and
// similar) this is one syscall instead of two.
func (r *Ring) WriteTo(w io.Writer) (int64, error) {
	segs := Buffers{r.first(), r.second()}
	n, err := segs.WriteTo(w)
	r.Consume(int(n))
	return n, err
}

// Consume removes up to n queued bytes without copying them anywhere.
func (r *Ring) Consume(n int) {
	if n > r.Len() {
		n = r.Len()
	}
	r.head = (r.head + n) % r.physCap()
}

// At reads the byte at logical offset i (0 is the oldest queued byte)
// without advancing head, failing with ErrOOB if i is past the queued
// length.
func (r *Ring) At(i int) (byte, error) {
	if i < 0 || i >= r.Len() {
		return 0, fmt.Errorf("%w: Ring At index %d out of range", ErrOOB, i)
	}
	return r.dat[(r.head+i)%r.physCap()], nil
}

// CmpSlc compares the ring's queued bytes against s as if the ring's two
// contiguous segments were concatenated, using the same sign convention as
// Slc.Cmp: negative if the ring's content sorts before s, zero if equal,
// positive otherwise.
func (r *Ring) CmpSlc(s Slc) int {
	rest := s.Bytes()
	for _, seg := range [][]byte{r.first(), r.second()} {
		n := len(seg)
		if n > len(rest) {
			n = len(rest)
		}
		if c := bytes.Compare(seg, rest[:n]); c != 0 {
			return c
		}
		rest = rest[n:]
		if len(seg) != n {
			// seg is longer than what remained of s: ring content wins.
			return 1
		}
	}
	switch {
	case len(rest) > 0:
		return -1
	default:
		return 0
	}
}
