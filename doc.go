// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package civo is a portable, single-threaded memory substrate for programs
// that prefer explicit memory control over a garbage collector.
//
// # Block Pool and Bump Arena
//
// A BlockPool owns a fixed population of 4096-byte Blocks, created once at
// startup from a single bulk allocation. A BBA (Block Bump Arena) draws
// whole Blocks from a BlockPool and sub-allocates bytes from them in two
// directions within each Block:
//
//	pool := civo.NewBlockPool(64)
//	arena := civo.NewBBA(pool)
//	defer arena.Drop()
//
//	grown, _ := arena.Alloc(12, 1)              // unaligned, grows upward
//	pinned, _ := arena.Alloc(4, civo.AlignSlot)  // aligned, grows downward
//
// Frees must repeat the exact (size, alignment) of the matching alloc and
// must happen in reverse order; violating either returns an error instead
// of corrupting the Block.
//
// # Containers
//
// Slc is a borrowed byte view, Buf an owned growable buffer, PlcBuf adds a
// read cursor, Stk a fixed-capacity downward-growing stack of 32-bit
// words, and Ring a single-producer/single-consumer byte queue with
// wraparound. CStr is a length-prefixed byte string (max 255 bytes).
//
// # Roles
//
// Arena, Resource, File, Reader, Writer, Fmt and Logger are small
// interfaces ("roles") rather than a hand-rolled vtable/data pair — Go's
// interface dispatch already gives the polymorphism the original C source
// built by hand. BaseFile (a Ring plus a status code) backs every File
// implementation; BufFile is an in-memory File over a PlcBuf, and a
// unix-backed File drives real open/read/write/seek/close syscalls.
//
// # Errors
//
// Apart from io.EOF at the end of a stream and iox.ErrWouldBlock from a
// non-blocking BoundedPool, every fallible operation returns one of a small
// set of sentinel errors (ErrOOB, ErrCapacity, ErrOrder, ErrIO, ErrType,
// ErrCStrTooLong, ErrCollision), following
// the same comparable-sentinel convention as [code.hybscloud.com/iox]. Fail
// and Try provide the "unwind to the nearest handler" propagation model of
// the original: Fail panics with a typed error that only an enclosing Try
// can observe, and a test's Fiber can set ExpectErr to suppress the
// configured error printer while still asserting on the returned error.
//
// # Dependencies
//
// civo depends on code.hybscloud.com/iox for the bounded ring-backing
// pool's backoff and its ErrWouldBlock sentinel, code.hybscloud.com/spin for
// adaptive spinning in that pool and in the unix-backed File's I/O retries,
// and golang.org/x/sys/unix for the unix-backed File.
package civo
