// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"math"
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// BoundedPoolItem is the constraint satisfied by any value storable in a
// BoundedPool.
type BoundedPoolItem interface{}

// BoundedPool is a bounded, lock-free MPMC pool of items of type T. Unlike
// every other allocator in this package, BoundedPool is meant for cases
// where acquisition genuinely races across goroutines — a BBA itself is
// always single-threaded, but the backing storage RingBackingPool hands out
// (see below) is claimed by whichever fiber's arena next needs a fresh Ring
// segment, and those fibers run concurrently.
//
// The algorithm is Nikolaev's "Scalable, Portable, Memory-Efficient
// Lock-Free FIFO Queue" (https://nikitakoval.org/publications/ppopp20-queues.pdf).
type BoundedPool[T BoundedPoolItem] struct {
	_ noCopy

	items      []T
	capacity   uint32
	mask       uint32
	entries    []atomic.Uint64
	remapM     uint32
	remapN     uint32
	remapMask  uint32
	head, tail atomic.Uint32

	nonblocking bool
}

// NewBoundedPool creates a BoundedPool with the given capacity, rounded up
// to the next power of two. capacity must be between 1 and math.MaxUint32.
func NewBoundedPool[T BoundedPoolItem](capacity int) *BoundedPool[T] {
	if capacity < 1 || capacity > math.MaxUint32 {
		panic("civo: bounded pool capacity must be between 1 and MaxUint32")
	}
	capacity--
	capacity |= capacity >> 1
	capacity |= capacity >> 2
	capacity |= capacity >> 4
	capacity |= capacity >> 8
	capacity |= capacity >> 16
	capacity++

	remapM := min(CacheLineSize/int(unsafe.Sizeof(atomic.Uint64{})), capacity)
	remapN := max(1, capacity/remapM)
	remapMask := remapN - 1

	return &BoundedPool[T]{
		items:     make([]T, 0, capacity),
		capacity:  uint32(capacity),
		mask:      uint32(capacity - 1),
		remapM:    uint32(remapM),
		remapN:    uint32(remapN),
		remapMask: uint32(remapMask),
	}
}

// Fill initializes the pool with capacity items produced by newFunc.
func (pool *BoundedPool[T]) Fill(newFunc func() T) {
	for range pool.capacity {
		pool.items = append(pool.items, newFunc())
	}
	pool.entries = make([]atomic.Uint64, pool.capacity)
	for i := range pool.capacity {
		pool.entries[i].Store(uint64(i))
	}
	pool.tail.Store(pool.capacity)
}

// SetNonblock enables or disables non-blocking mode: when true, Get/Put
// return iox.ErrWouldBlock instead of spinning/backing off.
func (pool *BoundedPool[T]) SetNonblock(nonblocking bool) { pool.nonblocking = nonblocking }

// Cap returns the pool's (power-of-two-rounded) capacity.
func (pool *BoundedPool[T]) Cap() int { return int(pool.capacity) }

// Value returns the item at the given indirect index.
func (pool *BoundedPool[T]) Value(indirect int) T {
	pool.checkFilled()
	pool.checkIndirect(indirect)
	return pool.items[indirect]
}

// SetValue sets the item at the given indirect index.
func (pool *BoundedPool[T]) SetValue(indirect int, value T) {
	pool.checkFilled()
	pool.checkIndirect(indirect)
	pool.items[indirect] = value
}

func (pool *BoundedPool[T]) checkFilled() {
	if len(pool.items) != int(pool.capacity) {
		panic("civo: must Fill the bounded pool before using it")
	}
}

func (pool *BoundedPool[T]) checkIndirect(indirect int) {
	if indirect&boundedPoolEntryEmpty == boundedPoolEntryEmpty || indirect < 0 || indirect >= int(pool.capacity) {
		panic("civo: invalid bounded pool indirect")
	}
}

// Get retrieves an item and returns its indirect index. In blocking mode it
// backs off adaptively (iox.Backoff) while the pool is empty; in
// non-blocking mode it returns iox.ErrWouldBlock immediately.
func (pool *BoundedPool[T]) Get() (indirect int, err error) {
	pool.checkFilled()
	var bo iox.Backoff
	for {
		entry, err := pool.tryGet()
		if err == nil {
			return int(entry & uint64(pool.mask)), nil
		}
		if err == iox.ErrWouldBlock {
			if pool.nonblocking {
				return boundedPoolEntryEmpty, err
			}
			bo.Wait()
			continue
		}
		return boundedPoolEntryEmpty, err
	}
}

// Put returns indirect to the pool.
func (pool *BoundedPool[T]) Put(indirect int) error {
	pool.checkFilled()
	entry := uint64(indirect)
	var bo iox.Backoff
	for {
		err := pool.tryPut(entry)
		if err == nil {
			return nil
		}
		if err == iox.ErrWouldBlock {
			if pool.nonblocking {
				return err
			}
			bo.Wait()
			continue
		}
		return err
	}
}

const (
	boundedPoolEntryEmpty    = 1 << 62
	boundedPoolEntryTurnMask = boundedPoolEntryEmpty>>32 - 1
)

func (pool *BoundedPool[T]) tryGet() (entry uint64, err error) {
	sw := spin.Wait{}
	for {
		h, t := pool.head.Load(), pool.tail.Load()
		hi := pool.remap(h & pool.mask)
		e := pool.entries[hi].Load()

		if h != pool.head.Load() {
			sw.Once()
			continue
		}
		if h == t {
			return boundedPoolEntryEmpty, iox.ErrWouldBlock
		}

		nextTurn := (h/pool.capacity + 1) & boundedPoolEntryTurnMask
		if e == pool.empty(nextTurn) {
			pool.head.CompareAndSwap(h, h+1)
			sw.Once()
			continue
		}
		ok := pool.entries[hi].CompareAndSwap(e, pool.empty(nextTurn))
		pool.head.CompareAndSwap(h, h+1)
		if ok {
			return e, nil
		}
		sw.Once()
	}
}

func (pool *BoundedPool[T]) tryPut(e uint64) error {
	sw := spin.Wait{}
	for {
		h, t := pool.head.Load(), pool.tail.Load()
		if t != pool.tail.Load() {
			sw.Once()
			continue
		}
		if t == h+pool.capacity {
			return iox.ErrWouldBlock
		}
		turn, ti := (t/pool.capacity)&boundedPoolEntryTurnMask, pool.remap(t)
		ok := pool.entries[ti].CompareAndSwap(pool.empty(turn), e)
		pool.tail.CompareAndSwap(t, t+1)
		if ok {
			return nil
		}
		sw.Once()
	}
}

func (pool *BoundedPool[T]) remap(cursor uint32) int {
	p, q := cursor/pool.remapN, cursor&pool.remapMask
	return int(q*pool.remapM + p%pool.remapM)
}

func (pool *BoundedPool[T]) empty(turn uint32) uint64 {
	return boundedPoolEntryEmpty | uint64(turn&boundedPoolEntryTurnMask)
}

// RingBackingSegment is one fixed-size byte array handed out by a
// RingBackingPool. Its length is fixed at pool-creation time.
type RingBackingSegment = []byte

// RingBackingPool is a bounded, concurrency-safe pool of fixed-size byte
// slices that independently-owned, single-threaded BBAs/fibers can draw
// Ring backing storage from without each allocating and discarding their
// own. Acquire/Release race across fibers even though use of any one
// segment, once acquired, stays single-threaded.
type RingBackingPool struct {
	segSize int
	pool    *BoundedPool[RingBackingSegment]
}

// NewRingBackingPool creates a pool of n segments (n rounded up to the next
// power of two, as NewBoundedPool does), each segSize bytes,
// allocated cache-line-aligned to avoid false sharing between segments
// that end up adjacent in different fibers' hands.
func NewRingBackingPool(n, segSize int) *RingBackingPool {
	p := &RingBackingPool{segSize: segSize, pool: NewBoundedPool[RingBackingSegment](n)}
	blocks := CacheLineAlignedMemBlocks(p.pool.Cap(), segSize)
	i := 0
	p.pool.Fill(func() RingBackingSegment {
		b := blocks[i]
		i++
		return b
	})
	return p
}

// SegmentSize returns the fixed size of every segment in the pool.
func (p *RingBackingPool) SegmentSize() int { return p.segSize }

// Acquire claims one segment from the pool, blocking (with adaptive
// backoff) until one is free.
func (p *RingBackingPool) Acquire() (RingBackingSegment, error) {
	idx, err := p.pool.Get()
	if err != nil {
		return nil, err
	}
	return p.pool.Value(idx), nil
}

// Release returns seg to the pool. seg must be a value previously returned
// by Acquire on the same pool.
func (p *RingBackingPool) Release(seg RingBackingSegment) error {
	for i := 0; i < p.pool.Cap(); i++ {
		if &p.pool.items[i][0] == &seg[0] {
			return p.pool.Put(i)
		}
	}
	return ErrType
}
