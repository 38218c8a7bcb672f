// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "unsafe"

// IoVec is a scatter/gather I/O descriptor compatible with the standard
// Linux struct iovec, used to pass Ring's non-contiguous free/queued
// segments to the kernel in a single vectored I/O call (readv, writev,
// preadv, pwritev).
//
//	struct iovec {
//	    void  *iov_base;
//	    size_t iov_len;
//	};
type IoVec struct {
	Base *byte
	Len  uint64
}

// IoVecFromBytesSlice converts a slice of byte slices (typically Ring's
// IoVec() segments) into ([]IoVec, addr, n) suitable for a vectored
// syscall. Empty input returns (nil, 0, 0).
func IoVecFromBytesSlice(iov [][]byte) (vec []IoVec, addr uintptr, n int) {
	if len(iov) == 0 {
		return nil, 0, 0
	}
	vec = make([]IoVec, 0, len(iov))
	for _, b := range iov {
		if len(b) == 0 {
			continue
		}
		vec = append(vec, IoVec{Base: unsafe.SliceData(b), Len: uint64(len(b))})
	}
	if len(vec) == 0 {
		return nil, 0, 0
	}
	addr, n = uintptr(unsafe.Pointer(unsafe.SliceData(vec))), len(vec)
	return
}

// IoVecAddrLen extracts the raw pointer and length from an IoVec slice for
// direct syscall consumption. Returns (0, 0) for empty or nil slices.
func IoVecAddrLen(vec []IoVec) (addr uintptr, n int) {
	if len(vec) == 0 {
		return 0, 0
	}
	addr, n = uintptr(unsafe.Pointer(unsafe.SliceData(vec))), len(vec)
	return
}
