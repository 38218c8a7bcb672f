// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"errors"
	"testing"
)

func TestCBst_AddFind(t *testing.T) {
	a, _ := newTestArena(t)
	tree := NewCBst(a)

	keys := []string{"mango", "apple", "zebra", "banana"}
	for i, k := range keys {
		if err := tree.Add(SlcFromString(k), i); err != nil {
			t.Fatal(err)
		}
	}
	if tree.Len() != len(keys) {
		t.Fatalf("Len = %d, want %d", tree.Len(), len(keys))
	}
	for i, k := range keys {
		v, ok := tree.Find(SlcFromString(k))
		if !ok || v != i {
			t.Fatalf("Find(%q) = %v, %v, want %d, true", k, v, ok, i)
		}
	}
	if _, ok := tree.Find(SlcFromString("missing")); ok {
		t.Fatal("Find(missing) should fail")
	}
}

func TestCBst_AddNeverReplacesOnDuplicateKey(t *testing.T) {
	a, _ := newTestArena(t)
	tree := NewCBst(a)

	if err := tree.Add(SlcFromString("k"), 1); err != nil {
		t.Fatal(err)
	}
	if err := tree.Add(SlcFromString("k"), 2); !errors.Is(err, ErrCollision) {
		t.Fatalf("Add duplicate = %v, want ErrCollision", err)
	}
	if tree.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (insert-if-absent, not overwrite)", tree.Len())
	}
	v, _ := tree.Find(SlcFromString("k"))
	if v != 1 {
		t.Fatalf("Find(k) = %v, want 1 (original value preserved)", v)
	}
}

func TestCBst_WalkVisitsEveryKey(t *testing.T) {
	a, _ := newTestArena(t)
	tree := NewCBst(a)
	keys := []string{"d", "b", "f", "a", "c", "e"}
	for _, k := range keys {
		_ = tree.Add(SlcFromString(k), nil)
	}
	seen := map[string]bool{}
	tree.Walk(func(key Slc, _ any) bool {
		seen[string(key.Bytes())] = true
		return true
	})
	for _, k := range keys {
		if !seen[k] {
			t.Fatalf("Walk did not visit key %q", k)
		}
	}
	if len(seen) != len(keys) {
		t.Fatalf("Walk visited %d distinct keys, want %d", len(seen), len(keys))
	}
}
