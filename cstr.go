// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "fmt"

// MaxCStrLen is the longest byte string a CStr can carry: its length is
// stored in a single leading byte.
const MaxCStrLen = 255

// CStr is a length-prefixed byte string: dat[0] holds the length, dat[1:]
// the payload. It is arena-allocated and, once built, immutable.
type CStr []byte

// NewCStr copies src into a fresh arena allocation as a CStr, failing with
// ErrCStrTooLong if src is longer than MaxCStrLen.
func NewCStr(a Arena, src []byte) (CStr, error) {
	if len(src) > MaxCStrLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrCStrTooLong, len(src))
	}
	dat, ok := a.Alloc(len(src)+1, 1)
	if !ok {
		return nil, ErrCapacity
	}
	dat[0] = byte(len(src))
	copy(dat[1:], src)
	return CStr(dat), nil
}

// MustCStrLit builds a CStr from a Go string literal known at call-site to
// be short, panicking instead of returning an error — intended for literal
// constants ("tags", log keys) rather than runtime-derived data.
func MustCStrLit(a Arena, s string) CStr {
	cs, err := NewCStr(a, []byte(s))
	if err != nil {
		panic(err)
	}
	return cs
}

// Len returns the string's length, excluding the prefix byte.
func (c CStr) Len() int {
	if len(c) == 0 {
		return 0
	}
	return int(c[0])
}

// Bytes returns the payload bytes, excluding the length prefix.
func (c CStr) Bytes() []byte {
	if len(c) == 0 {
		return nil
	}
	return c[1 : 1+c.Len()]
}

// String returns the payload as a Go string.
func (c CStr) String() string { return string(c.Bytes()) }

// AsSlc returns a Slc view over the payload bytes.
func (c CStr) AsSlc() Slc { return NewSlc(c.Bytes()) }

// Cmp compares two CStrs by payload bytes, the same rule as Slc.Cmp.
func (c CStr) Cmp(other CStr) int { return c.AsSlc().Cmp(other.AsSlc()) }
