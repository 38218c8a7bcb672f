// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"errors"
	"testing"
)

func TestSlc_Cmp(t *testing.T) {
	a := SlcFromString("abc")
	b := SlcFromString("abd")
	c := SlcFromString("ab")

	if a.Cmp(b) >= 0 {
		t.Fatal("abc should be < abd")
	}
	if b.Cmp(a) <= 0 {
		t.Fatal("abd should be > abc")
	}
	if a.Cmp(a) != 0 {
		t.Fatal("abc should equal itself")
	}
	if c.Cmp(a) >= 0 {
		t.Fatal("ab should be < abc (shorter prefix)")
	}
	if a.Cmp(b) != -b.Cmp(a) {
		t.Fatal("Cmp sign law violated")
	}
}

func TestSlc_Find(t *testing.T) {
	s := SlcFromString("hello world")
	if i := s.Find(SlcFromString("world")); i != 6 {
		t.Fatalf("Find(world) = %d, want 6", i)
	}
	if i := s.Find(SlcFromString("xyz")); i != s.Len() {
		t.Fatalf("Find(xyz) = %d, want %d", i, s.Len())
	}
	if i := s.Find(SlcFromString("")); i != 0 {
		t.Fatalf("Find(\"\") = %d, want 0", i)
	}
}

func TestSlc_Slice(t *testing.T) {
	s := SlcFromString("abcdef")
	sub, err := s.Slice(1, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if string(sub.Bytes()) != "bcd" {
		t.Fatalf("Slice = %q, want bcd", sub.Bytes())
	}
	if _, err := s.Slice(4, 1); !errors.Is(err, ErrOOB) {
		t.Fatalf("Slice(4,1) = %v, want ErrOOB", err)
	}
	if _, err := s.Slice(0, 100); !errors.Is(err, ErrOOB) {
		t.Fatalf("Slice(0,100) = %v, want ErrOOB", err)
	}
}

func TestSlc_Move(t *testing.T) {
	dst := make([]byte, 3)
	n := NewSlc(dst).Move(SlcFromString("abcdef"))
	if n != 3 || string(dst) != "abc" {
		t.Fatalf("Move copied %d bytes, dst=%q", n, dst)
	}
}
