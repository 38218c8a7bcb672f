// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"errors"
	"testing"
)

func TestBBA_AllocUnalignedGrowsUp(t *testing.T) {
	pool := NewBlockPool(2)
	a := NewBBA(pool)
	defer a.Drop()

	p1, ok := a.Alloc(8, 1)
	if !ok || len(p1) != 8 {
		t.Fatalf("Alloc(8,1) = %v, %v", p1, ok)
	}
	p2, ok := a.Alloc(4, 1)
	if !ok || len(p2) != 4 {
		t.Fatalf("Alloc(4,1) = %v, %v", p2, ok)
	}
	if &p1[0] == &p2[0] {
		t.Fatal("allocations overlap")
	}
}

func TestBBA_AllocAlignedGrowsDown(t *testing.T) {
	pool := NewBlockPool(2)
	a := NewBBA(pool)
	defer a.Drop()

	p, ok := a.Alloc(6, AlignSlot)
	if !ok {
		t.Fatal("Alloc failed")
	}
	if len(p) != 8 { // alignUp(6,4) == 8
		t.Fatalf("len = %d, want 8", len(p))
	}
}

func TestBBA_FreeReverseOrder(t *testing.T) {
	pool := NewBlockPool(2)
	a := NewBBA(pool)
	defer a.Drop()

	p1, _ := a.Alloc(4, 1)
	p2, _ := a.Alloc(4, 1)

	if err := a.Free(p2, 4, 1); err != nil {
		t.Fatalf("Free p2: %v", err)
	}
	if err := a.Free(p1, 4, 1); err != nil {
		t.Fatalf("Free p1: %v", err)
	}
}

func TestBBA_FreeOutOfOrder(t *testing.T) {
	pool := NewBlockPool(2)
	a := NewBBA(pool)
	defer a.Drop()

	p1, _ := a.Alloc(4, 1)
	_, _ = a.Alloc(4, 1)

	if err := a.Free(p1, 4, 1); !errors.Is(err, ErrOrder) {
		t.Fatalf("Free out of order = %v, want ErrOrder", err)
	}
}

func TestBBA_FreeEmptyArena(t *testing.T) {
	pool := NewBlockPool(1)
	a := NewBBA(pool)
	a.Drop()

	if err := a.Free([]byte{1}, 1, 1); !errors.Is(err, ErrOrder) {
		t.Fatalf("Free on empty arena = %v, want ErrOrder", err)
	}
}

func TestBBA_FreeForeignPointer(t *testing.T) {
	pool := NewBlockPool(1)
	a := NewBBA(pool)
	defer a.Drop()

	foreign := make([]byte, 4)
	if err := a.Free(foreign, 4, 1); !errors.Is(err, ErrType) {
		t.Fatalf("Free foreign pointer = %v, want ErrType", err)
	}
}

func TestBBA_AdvancesAcrossBlocks(t *testing.T) {
	pool := NewBlockPool(2)
	a := NewBBA(pool)
	defer a.Drop()

	_, ok := a.Alloc(BlockAvail, 1)
	if !ok {
		t.Fatal("first full-block alloc failed")
	}
	if pool.Available() != 1 {
		t.Fatalf("pool available = %d, want 1", pool.Available())
	}
	_, ok = a.Alloc(1, 1)
	if !ok {
		t.Fatal("expected arena to advance into a second block")
	}
	if pool.Available() != 0 {
		t.Fatalf("pool available after advancing = %d, want 0", pool.Available())
	}
}

func TestBBA_PoolExhausted(t *testing.T) {
	pool := NewBlockPool(1)
	a := NewBBA(pool)
	defer a.Drop()

	_, _ = a.Alloc(BlockAvail, 1)
	if _, ok := a.Alloc(1, 1); ok {
		t.Fatal("expected allocation failure when pool is exhausted")
	}
}

func TestBBA_FreeReturnsEmptyBlockToPool(t *testing.T) {
	pool := NewBlockPool(2)
	a := NewBBA(pool)
	defer a.Drop()

	p1, _ := a.Alloc(BlockAvail, 1)
	if pool.Available() != 1 {
		t.Fatalf("pool available after full-block alloc = %d, want 1", pool.Available())
	}
	// Advance into a second block, then fully drain and free it; that
	// block's empty signature (top-bot == BlockAvail) must detach it from
	// the arena and hand it back to the pool immediately, before Drop.
	p2, ok := a.Alloc(4, 1)
	if !ok {
		t.Fatal("expected arena to advance into a second block")
	}
	if pool.Available() != 0 {
		t.Fatalf("pool available after advancing = %d, want 0", pool.Available())
	}
	if err := a.Free(p2, 4, 1); err != nil {
		t.Fatalf("Free p2: %v", err)
	}
	if pool.Available() != 1 {
		t.Fatalf("pool available after draining second block = %d, want 1", pool.Available())
	}
	if err := a.Free(p1, BlockAvail, 1); err != nil {
		t.Fatalf("Free p1: %v", err)
	}
	if pool.Available() != 2 {
		t.Fatalf("pool available after draining first block = %d, want 2", pool.Available())
	}
}

func TestBBA_Drop(t *testing.T) {
	pool := NewBlockPool(1)
	a := NewBBA(pool)
	if pool.Available() != 0 {
		t.Fatalf("available = %d, want 0", pool.Available())
	}
	a.Drop()
	if pool.Available() != 1 {
		t.Fatalf("available after Drop = %d, want 1", pool.Available())
	}
	a.Drop() // idempotent
}
