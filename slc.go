// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

// Slc is a borrowed, non-owning view over up to 65535 bytes. It never
// allocates and never outlives the memory it points into — callers are
// responsible for keeping the backing storage (typically an Arena
// allocation) alive.
type Slc struct {
	dat []byte
}

// MaxSlcLen is the largest length a Slc may carry.
const MaxSlcLen = 0xFFFF

// NewSlc wraps b as a Slc. It panics if b is longer than MaxSlcLen, since
// that can only happen by programmer error (the types this library hands
// out never exceed it).
func NewSlc(b []byte) Slc {
	if len(b) > MaxSlcLen {
		panic("civo: Slc longer than 65535 bytes")
	}
	return Slc{dat: b}
}

// SlcFromString wraps a Go string's bytes as a Slc without copying.
func SlcFromString(s string) Slc {
	return NewSlc([]byte(s))
}

// Bytes returns the underlying byte view. Mutating it mutates the Slc.
func (s Slc) Bytes() []byte { return s.dat }

// Len returns the number of bytes in the Slc.
func (s Slc) Len() int { return len(s.dat) }

// Slice returns the sub-Slc [start:end), bounds-checked against Len.
func (s Slc) Slice(start, end int) (Slc, error) {
	if end < start {
		return Slc{}, ErrOOB
	}
	if end > s.Len() {
		return Slc{}, ErrOOB
	}
	return Slc{dat: s.dat[start:end]}, nil
}

// Cmp performs a lexicographic comparison by unsigned byte, then by
// length: it returns -1 if s<other, 1 if s>other, 0 if equal. The sign law
// Cmp(a,b) == -Cmp(b,a) always holds.
func (s Slc) Cmp(other Slc) int {
	n := min(s.Len(), other.Len())
	for i := 0; i < n; i++ {
		if s.dat[i] < other.dat[i] {
			return -1
		}
		if s.dat[i] > other.dat[i] {
			return 1
		}
	}
	switch {
	case s.Len() < other.Len():
		return -1
	case s.Len() > other.Len():
		return 1
	default:
		return 0
	}
}

// Find returns the index of the first occurrence of needle in s, or
// s.Len() if needle does not occur. An empty needle matches at index 0.
func (s Slc) Find(needle Slc) int {
	if needle.Len() == 0 {
		return 0
	}
	hay, nd := s.dat, needle.dat
	for i := 0; i+len(nd) <= len(hay); i++ {
		if string(hay[i:i+len(nd)]) == string(nd) {
			return i
		}
	}
	return s.Len()
}

// Move copies as many bytes of from into to as fit (min(to.Len(), from.Len())),
// and returns the number of bytes copied.
func (to Slc) Move(from Slc) int {
	n := copy(to.dat, from.dat)
	return n
}
