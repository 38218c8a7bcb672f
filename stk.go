// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "fmt"

// Stk is a fixed-capacity stack of 32-bit words, arena-backed, that grows
// downward: the first word pushed occupies the last slot of the backing
// bytes and each later Push takes the slot below it; Pop reads the last
// pushed word back in LIFO order. The backing bytes are allocated aligned
// (AlignSlot) from the arena's downward-growing side.
type Stk struct {
	raw []byte
	top int // word count currently in use
	cap int // capacity in words
}

// NewStk allocates a Stk able to hold n words.
func NewStk(a Arena, n int) (*Stk, error) {
	raw, ok := a.Alloc(n*4, AlignSlot)
	if !ok {
		return nil, ErrCapacity
	}
	return &Stk{raw: raw, cap: n}, nil
}

// Len returns the number of words currently on the stack.
func (s *Stk) Len() int { return s.top }

// Cap returns the stack's fixed capacity in words.
func (s *Stk) Cap() int { return s.cap }

// Push places v on top of the stack, failing with ErrOOB if the stack is
// already at capacity.
func (s *Stk) Push(v uint32) error {
	if s.top >= s.cap {
		return fmt.Errorf("%w: Stk push on full stack", ErrOOB)
	}
	i := (s.cap - 1 - s.top) * 4
	StoreBE(s.raw[i:i+4], 4, v)
	s.top++
	return nil
}

// Pop removes and returns the top word, failing with ErrOOB if the stack
// is empty.
func (s *Stk) Pop() (uint32, error) {
	if s.top == 0 {
		return 0, fmt.Errorf("%w: Stk pop on empty stack", ErrOOB)
	}
	s.top--
	i := (s.cap - 1 - s.top) * 4
	return FetchBE(s.raw[i:i+4], 4), nil
}

// Peek returns the top word without removing it, failing with ErrOOB if
// the stack is empty.
func (s *Stk) Peek() (uint32, error) {
	if s.top == 0 {
		return 0, fmt.Errorf("%w: Stk peek on empty stack", ErrOOB)
	}
	i := (s.cap - s.top) * 4
	return FetchBE(s.raw[i:i+4], 4), nil
}

// Clear empties the stack without releasing its storage.
func (s *Stk) Clear() { s.top = 0 }
