// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "errors"

// Sentinel errors. Apart from io.EOF at the end of a stream and
// iox.ErrWouldBlock from a non-blocking BoundedPool, every fallible
// operation in this package returns one of these, optionally wrapped with fmt.Errorf("%w: ...") for context. Compare
// with errors.Is, not string matching, the same convention code.hybscloud.com/iox
// uses for ErrWouldBlock.
var (
	// ErrOOB is returned for container reads/writes past capacity, Stk
	// overflow/underflow, and Ring push-when-full.
	ErrOOB = errors.New("civo: out of bounds")

	// ErrCapacity is returned when an allocation request is larger than
	// the arena's maximum single-allocation size.
	ErrCapacity = errors.New("civo: capacity exceeded")

	// ErrOrder is returned for a BBA free with mismatched size/alignment
	// or out-of-order free, and for a File method invoked in the wrong
	// state (including read-after-EOF and write-on-closed).
	ErrOrder = errors.New("civo: out-of-order operation")

	// ErrIO is returned when a host I/O call fails for a reason other
	// than would-block.
	ErrIO = errors.New("civo: i/o error")

	// ErrType is returned when a BBA free targets memory above or below
	// the arena's current block.
	ErrType = errors.New("civo: pointer does not belong to this block")

	// ErrCStrTooLong is returned when a CStr source exceeds 255 bytes.
	ErrCStrTooLong = errors.New("civo: CStr longer than 255 bytes")

	// ErrCollision is returned by CBst.Add when the key already has a
	// node in the tree; Add never replaces an existing value.
	ErrCollision = errors.New("civo: key already present")
)
