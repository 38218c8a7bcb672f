// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"fmt"
	"unsafe"
)

// blockRec tracks one Block currently owned by a BBA together with its
// own bot/top cursors, so reverse-LIFO free discipline can span more than
// one Block.
type blockRec struct {
	blk      *block
	bot, top int
}

// BBA (Block Bump Arena) draws whole Blocks from a BlockPool and bump-
// allocates bytes from each in two directions: an alignment-1 request
// grows bot upward from the start of the block, any other alignment fixes
// to 4 and grows top downward from the end. Free must be called in exact
// reverse order of Alloc, repeating the same (size, alignment). Blocks are
// held in a LIFO stack: the top of the stack is the current block that
// all Alloc/Free calls target. When a Free drains the current block back
// to its empty signature (top-bot == BlockAvail), that Block is detached
// from the arena and returned to the pool, exposing the block beneath it.
type BBA struct {
	pool  *BlockPool
	stack []*blockRec
}

// NewBBA acquires one Block from pool and returns an arena over it. It
// panics via Fail if the pool has no Block available — an arena cannot
// usefully exist without at least one Block.
func NewBBA(pool *BlockPool) *BBA {
	b, ok := pool.acquire()
	if !ok {
		Fail(fmt.Errorf("%w: BlockPool exhausted", ErrCapacity))
	}
	a := &BBA{pool: pool}
	a.stack = append(a.stack, &blockRec{blk: b, bot: 0, top: BlockAvail})
	return a
}

// cur returns the arena's current (top-of-stack) block record, or nil if
// the arena owns none.
func (a *BBA) cur() *blockRec {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

// Drop releases every Block this arena holds back to its BlockPool, in
// list order (current block first). It is idempotent.
func (a *BBA) Drop() {
	for i := len(a.stack) - 1; i >= 0; i-- {
		a.pool.release(a.stack[i].blk)
	}
	a.stack = nil
}

// Alloc satisfies the Arena role. It returns ok=false rather than growing
// unboundedly when size cannot fit in a single Block and when the pool has
// run out of fresh Blocks to advance into.
func (a *BBA) Alloc(size, alignment int) ([]byte, bool) {
	if size <= 0 {
		return nil, false
	}
	align := fixAlign(alignment)
	if align == 1 {
		if size > BlockAvail {
			return nil, false
		}
		r := a.cur()
		if r == nil || r.bot+size > r.top {
			if !a.advance() {
				return nil, false
			}
			r = a.cur()
		}
		p := r.blk.dat[r.bot : r.bot+size : r.bot+size]
		r.bot += size
		return p, true
	}
	sz := alignUp(size, 4)
	if sz > BlockAvail {
		return nil, false
	}
	r := a.cur()
	if r == nil || r.top-sz < r.bot {
		if !a.advance() {
			return nil, false
		}
		r = a.cur()
	}
	r.top -= sz
	p := r.blk.dat[r.top : r.top+sz : r.top+sz]
	return p, true
}

// MaxAlloc returns the largest size a single Alloc call can satisfy: a
// request can never span more than one Block.
func (a *BBA) MaxAlloc() int { return BlockAvail }

// advance acquires a fresh Block from the pool and pushes it as the new
// current block.
func (a *BBA) advance() bool {
	next, ok := a.pool.acquire()
	if !ok {
		return false
	}
	a.stack = append(a.stack, &blockRec{blk: next, bot: 0, top: BlockAvail})
	return true
}

// blockOffset returns p's byte offset into blk.dat, and whether p actually
// points inside it.
func blockOffset(blk *block, p []byte) (int, bool) {
	if len(p) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(&blk.dat[0]))
	ptr := uintptr(unsafe.Pointer(&p[0]))
	if ptr < base {
		return 0, false
	}
	off := int(ptr - base)
	if off > BlockAvail {
		return 0, false
	}
	return off, true
}

// Free satisfies the Arena role. p, size and alignment must exactly match
// the most recent still-outstanding Alloc call on this arena's current
// block; any deviation returns an error rather than corrupting the block.
// When the free drains the current block back to its empty signature, the
// block is detached from the arena and returned to the pool, and the
// block beneath it (if any) becomes current.
func (a *BBA) Free(p []byte, size, alignment int) error {
	r := a.cur()
	if r == nil {
		return fmt.Errorf("%w: Free empty BBA", ErrOrder)
	}
	align := fixAlign(alignment)
	off, inside := blockOffset(r.blk, p)
	if !inside {
		base := uintptr(unsafe.Pointer(&r.blk.dat[0]))
		ptr := uintptr(unsafe.Pointer(&p[0]))
		if ptr < base {
			return fmt.Errorf("%w: Data below block", ErrType)
		}
		return fmt.Errorf("%w: Data above block", ErrType)
	}
	if align == 1 {
		expected := r.bot - size
		if off != expected {
			return fmt.Errorf("%w: unordered free: %d", ErrOrder, size)
		}
		r.bot = expected
	} else {
		sz := alignUp(size, 4)
		expected := r.top
		if off != expected {
			return fmt.Errorf("%w: unordered free: %d", ErrOrder, size)
		}
		r.top = expected + sz
	}
	if r.top-r.bot == BlockAvail {
		a.stack = a.stack[:len(a.stack)-1]
		a.pool.release(r.blk)
	}
	return nil
}
