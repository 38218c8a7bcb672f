// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"io"
	"testing"
)

// TestScenarioBlockPoolRoundtrip mirrors a pool of 5 blocks: popping two and
// pushing them back restores the original population, LIFO.
func TestScenarioBlockPoolRoundtrip(t *testing.T) {
	pool := NewBlockPool(5)
	if pool.Available() != 5 {
		t.Fatalf("available = %d, want 5", pool.Available())
	}
	a, ok := pool.acquire()
	if !ok {
		t.Fatal("acquire A failed")
	}
	b, ok := pool.acquire()
	if !ok {
		t.Fatal("acquire B failed")
	}
	if pool.Available() != 3 {
		t.Fatalf("available after two acquires = %d, want 3", pool.Available())
	}
	pool.release(a)
	pool.release(b)
	if pool.Available() != 5 {
		t.Fatalf("available after two releases = %d, want 5", pool.Available())
	}
	// the free list head is whichever block was released last (B) — acquiring
	// once more must hand B back out first.
	again, _ := pool.acquire()
	if again != b {
		t.Fatal("expected LIFO free list to hand back the most recently released block")
	}
}

// TestScenarioBBABidirectionalBump mirrors alloc/free on both sides of a
// fresh block and confirms the block returns to the pool once fully freed.
func TestScenarioBBABidirectionalBump(t *testing.T) {
	pool := NewBlockPool(5)
	arena := NewBBA(pool)
	defer arena.Drop()

	p1, ok := arena.Alloc(5, 1)
	if !ok || arena.cur().bot != 5 {
		t.Fatalf("alloc(5,1): ok=%v bot=%d, want bot=5", ok, arena.cur().bot)
	}
	p2, ok := arena.Alloc(12, 1)
	if !ok || arena.cur().bot != 17 {
		t.Fatalf("alloc(12,1): ok=%v bot=%d, want bot=17", ok, arena.cur().bot)
	}
	if err := arena.Free(p2, 12, 1); err != nil || arena.cur().bot != 5 {
		t.Fatalf("free(p2): err=%v bot=%d, want bot=5", err, arena.cur().bot)
	}

	p3, ok := arena.Alloc(4, AlignSlot)
	if !ok || arena.cur().top != BlockAvail-4 {
		t.Fatalf("alloc(4,slot): ok=%v top=%d, want top=%d", ok, arena.cur().top, BlockAvail-4)
	}
	if err := arena.Free(p3, 4, AlignSlot); err != nil || arena.cur().top != BlockAvail {
		t.Fatalf("free(p3): err=%v top=%d, want top=%d", err, arena.cur().top, BlockAvail)
	}

	// Freeing p1 drains the block back to its empty signature, which
	// detaches it from the arena and returns it to the pool immediately.
	if err := arena.Free(p1, 5, 1); err != nil {
		t.Fatalf("free(p1): err=%v", err)
	}
	if pool.Available() != 5 {
		t.Fatalf("available after draining last block = %d, want 5", pool.Available())
	}
	arena.Drop()
	if pool.Available() != 5 {
		t.Fatalf("available after Drop = %d, want 5", pool.Available())
	}
}

// TestScenarioRingWrap mirrors pushing/extending a 10-byte ring across its
// physical wraparound boundary and checking the resulting segments.
func TestScenarioRingWrap(t *testing.T) {
	a, _ := newTestArena(t)
	r, err := NewRing(a, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsEmpty() {
		t.Fatal("fresh ring should be empty")
	}

	if err := r.Push('a'); err != nil {
		t.Fatal(err)
	}
	if err := r.Extend(SlcFromString("bcde")); err != nil {
		t.Fatal(err)
	}
	if r.head != 0 || r.tail != 5 {
		t.Fatalf("head=%d tail=%d, want head=0 tail=5", r.head, r.tail)
	}
	got := make([]byte, r.Len())
	r.Get(NewSlc(got))
	if string(got) != "abcde" {
		t.Fatalf("contents = %q, want abcde", got)
	}

	if _, err := r.Pop(); err != nil {
		t.Fatal(err)
	}
	if r.head != 1 {
		t.Fatalf("head after Pop = %d, want 1", r.head)
	}

	if err := r.Extend(SlcFromString("ABCD")); err != nil {
		t.Fatal(err)
	}
	if string(r.first()) != "bcdeABCD" || len(r.second()) != 0 {
		t.Fatalf("first=%q second=%q, want first=bcdeABCD second=empty", r.first(), r.second())
	}

	// Move head to 4 and extend past the physical end of the 11-byte
	// backing array: "ef" fills dat[9:11], "gh" wraps to dat[0:2].
	r.head = 4
	if err := r.Extend(SlcFromString("efgh")); err != nil {
		t.Fatal(err)
	}
	if string(r.first()) != "eABCDef" || string(r.second()) != "gh" {
		t.Fatalf("first=%q second=%q, want first=eABCDef second=gh", r.first(), r.second())
	}
}

// TestScenarioCBstLatestRevisionDescent mirrors inserting "abbd", "aaa",
// "abc" and confirms the comparator resolves every key, using the
// latest-revision (cmp<0 descends right) convention.
func TestScenarioCBstLatestRevisionDescent(t *testing.T) {
	a, _ := newTestArena(t)
	tree := NewCBst(a)

	order := []string{"abbd", "aaa", "abc"}
	for _, k := range order {
		if err := tree.Add(SlcFromString(k), k); err != nil {
			t.Fatal(err)
		}
	}
	for _, k := range order {
		v, ok := tree.Find(SlcFromString(k))
		if !ok || v != k {
			t.Fatalf("Find(%q) = %v, %v, want %q, true", k, v, ok, k)
		}
	}
	// root is "abbd"; "aaa" < "abbd" descends right, while "abc" > "abbd"
	// ('c' > 'b' at index 2) descends left — one child per direction.
	if tree.root.key.Cmp(SlcFromString("abbd")) != 0 {
		t.Fatalf("root key = %q, want abbd", tree.root.key.Bytes())
	}
	if tree.root.right == nil {
		t.Fatal("expected root.right populated under the latest-revision convention")
	}
}

// TestScenarioBufFileReadSequence mirrors a File preloaded with
// "easy to test text\nwriting a simple haiku\nand the job is done\n\n" being
// drained through a 19-byte-logical-capacity Ring (a 20-byte physical
// buffer), matching the literal first two reads and the final EOF read.
func TestScenarioBufFileReadSequence(t *testing.T) {
	a, _ := newTestArena(t)
	text := "easy to test text\nwriting a simple haiku\nand the job is done\n\n"
	f, err := NewBufFile(a, 19, len(text), []byte(text))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Open(); err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 19)
	n, err := f.Read(buf)
	if err != nil || n != 19 || string(buf[:n]) != "easy to test text\nw" {
		t.Fatalf("first Read = %d %q %v, want 19 %q", n, buf[:n], err, "easy to test text\nw")
	}

	n, err = f.Read(buf)
	if err != nil || n != 19 || string(buf[:n]) != "riting a simple hai" {
		t.Fatalf("second Read = %d %q %v, want 19 %q", n, buf[:n], err, "riting a simple hai")
	}

	// Drain the remainder (24 bytes) across as many reads as it takes,
	// ending in io.EOF once the backing store is exhausted.
	var rest []byte
	for {
		n, err = f.Read(buf)
		rest = append(rest, buf[:n]...)
		if err != nil {
			break
		}
	}
	if err != io.EOF {
		t.Fatalf("final Read err = %v, want io.EOF", err)
	}
	wantRest := text[38:]
	if string(rest) != wantRest {
		t.Fatalf("remaining bytes = %q, want %q", rest, wantRest)
	}
}

// TestScenarioBufFileWriteFlush mirrors extending a BufFile's ring and
// confirming successive writes accumulate in its backing PlcBuf.
func TestScenarioBufFileWriteFlush(t *testing.T) {
	a, _ := newTestArena(t)
	f, err := NewBufFile(a, 15, 256, nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Open()

	if _, err := f.Write([]byte("Hello ")); err != nil {
		t.Fatal(err)
	}
	if !f.Buf.IsEmpty() {
		t.Fatal("ring should be empty: Write flushes into the backing store immediately")
	}
	if f.Backing().Cmp(SlcFromString("Hello ")) != 0 {
		t.Fatalf("backing = %q, want %q", f.Backing().Bytes(), "Hello ")
	}

	if _, err := f.Write([]byte("World!")); err != nil {
		t.Fatal(err)
	}
	if f.Backing().Cmp(SlcFromString("Hello World!")) != 0 {
		t.Fatalf("backing = %q, want %q", f.Backing().Bytes(), "Hello World!")
	}
}
