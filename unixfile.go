// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package civo

import (
	"fmt"
	"io"
	"runtime"

	"code.hybscloud.com/spin"
	"golang.org/x/sys/unix"
)

// Open flags, mirroring the original's unix-sourced naming (File_RDWR,
// File_RDONLY, ...) one-to-one with their golang.org/x/sys/unix values so
// a caller never has to reach for unix.O_* directly.
const (
	FileRDWR   = unix.O_RDWR
	FileRDONLY = unix.O_RDONLY
	FileWRONLY = unix.O_WRONLY
	FileTRUNC  = unix.O_TRUNC
	FileCREATE = unix.O_CREAT
)

// UnixFile is a File backed by a real host file descriptor, buffered
// through the same Ring every BaseFile embeds. Read/Write stage through
// that Ring rather than the caller's slice directly, the same as BufFile;
// EAGAIN/EINTR are retried with an adaptive spin.Wait backoff instead of
// blocking the whole goroutine in the kernel, matching the original's
// non-blocking host file model.
type UnixFile struct {
	BaseFile
	path     string
	flag     int
	perm     uint32
	fd       int
	arena    Arena
	ringPool *RingBackingPool // set instead of arena owning the Ring, when pool-backed
}

// NewUnixFile prepares a File over path, allocating its Ring from a. The
// file descriptor is not opened until Open is called.
func NewUnixFile(a Arena, cap int, path string, flag int, perm uint32) (*UnixFile, error) {
	r, err := NewRing(a, cap)
	if err != nil {
		return nil, err
	}
	f := &UnixFile{path: path, flag: flag, perm: perm, fd: -1, arena: a}
	f.Buf = *r
	f.status = FileClosed
	return f, nil
}

// NewUnixFileFromPool is NewUnixFile's pool-backed counterpart: the Ring's
// segment is acquired from ringPool (see RingBackingPool) instead of an
// Arena.
func NewUnixFileFromPool(ringPool *RingBackingPool, path string, flag int, perm uint32) (*UnixFile, error) {
	r, err := NewRingFromPool(ringPool)
	if err != nil {
		return nil, err
	}
	f := &UnixFile{path: path, flag: flag, perm: perm, fd: -1, ringPool: ringPool}
	f.Buf = *r
	f.status = FileClosed
	return f, nil
}

// writevRaw issues a single vectored write of segs to fd via the raw
// SYS_WRITEV syscall over civo's own IoVec descriptors, rather than
// delegating to golang.org/x/sys/unix's Writev wrapper.
func writevRaw(fd int, segs [][]byte) (int, error) {
	vec, addr, n := IoVecFromBytesSlice(segs)
	if n == 0 {
		return 0, nil
	}
	r1, _, errno := unix.Syscall(unix.SYS_WRITEV, uintptr(fd), addr, uintptr(n))
	runtime.KeepAlive(vec)
	runtime.KeepAlive(segs)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}

// readvRaw issues a single vectored read from fd into segs via the raw
// SYS_READV syscall over civo's own IoVec descriptors.
func readvRaw(fd int, segs [][]byte) (int, error) {
	vec, addr, n := IoVecFromBytesSlice(segs)
	if n == 0 {
		return 0, nil
	}
	r1, _, errno := unix.Syscall(unix.SYS_READV, uintptr(fd), addr, uintptr(n))
	runtime.KeepAlive(vec)
	runtime.KeepAlive(segs)
	if errno != 0 {
		return 0, errno
	}
	return int(r1), nil
}

// Open opens the host file descriptor, setting O_NONBLOCK so Read/Write
// never block the goroutine.
func (f *UnixFile) Open() error {
	if f.status != FileClosed {
		return fmt.Errorf("%w: UnixFile already open", ErrOrder)
	}
	fd, err := unix.Open(f.path, f.flag|unix.O_NONBLOCK, f.perm)
	if err != nil {
		f.status = FileEIO
		return fmt.Errorf("%w: open %s: %v", ErrIO, f.path, err)
	}
	f.fd = fd
	f.status = FileDone
	return nil
}

// fill issues one vectored read from the host descriptor into the Ring's
// up-to-two free segments, retrying EAGAIN/EINTR with a spin.Wait backoff
// until it succeeds or the Ring has no free space left. It returns io.EOF
// if the descriptor reports 0 bytes read.
func (f *UnixFile) fill() error {
	var wait spin.Wait
	for !f.Buf.IsFull() {
		segs := f.Buf.IoVec()
		if len(segs) == 0 {
			return nil
		}
		n, err := readvRaw(f.fd, segs)
		switch {
		case err == nil && n == 0:
			return io.EOF
		case err == nil:
			return f.Buf.CommitWrite(n)
		case err == unix.EAGAIN || err == unix.EINTR:
			wait.Once()
			continue
		default:
			return fmt.Errorf("%w: readv %s: %v", ErrIO, f.path, err)
		}
	}
	return nil
}

// Read tops up the Ring from the host descriptor as needed, then drains
// into p.
func (f *UnixFile) Read(p []byte) (int, error) {
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: UnixFile read while not open", ErrOrder)
	}
	f.status = FileReading
	if f.Buf.IsEmpty() {
		if err := f.fill(); err != nil {
			if err == io.EOF {
				f.status = FileEOF
			} else {
				f.status = FileEIO
			}
			return 0, err
		}
	}
	n := f.Buf.Move(NewSlc(p))
	f.status = FileDone
	return n, nil
}

// writevOnce issues a single vectored write of r's queued bytes to the host
// descriptor, retrying EAGAIN/EINTR with a spin.Wait backoff, and Consumes
// from r only the bytes the kernel actually accepted.
func (f *UnixFile) writevOnce(r *Ring) (int, error) {
	var wait spin.Wait
	for {
		segs := make([][]byte, 0, 2)
		if s := r.first(); len(s) > 0 {
			segs = append(segs, s)
		}
		if s := r.second(); len(s) > 0 {
			segs = append(segs, s)
		}
		if len(segs) == 0 {
			return 0, nil
		}
		n, err := writevRaw(f.fd, segs)
		switch {
		case err == nil:
			r.Consume(n)
			return n, nil
		case err == unix.EAGAIN || err == unix.EINTR:
			wait.Once()
			continue
		default:
			return 0, fmt.Errorf("%w: writev %s: %v", ErrIO, f.path, err)
		}
	}
}

// Write stages p through the Ring and flushes it to the host descriptor,
// repeating until all of p is written.
func (f *UnixFile) Write(p []byte) (int, error) {
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: UnixFile write while not open", ErrOrder)
	}
	f.status = FileWriting
	written := 0
	for written < len(p) {
		chunk := p[written:]
		if room := f.Buf.Cap() - f.Buf.Len(); room < len(chunk) {
			chunk = chunk[:room]
		}
		if len(chunk) == 0 {
			if _, err := f.writevOnce(&f.Buf); err != nil {
				f.status = FileEIO
				return written, err
			}
			continue
		}
		if err := f.Buf.Extend(NewSlc(chunk)); err != nil {
			f.status = FileEIO
			return written, err
		}
		written += len(chunk)
		for !f.Buf.IsEmpty() {
			if _, err := f.writevOnce(&f.Buf); err != nil {
				f.status = FileEIO
				return written, err
			}
		}
	}
	f.status = FileDone
	return written, nil
}

// WriteRing drains r directly to the host descriptor with a single
// vectored write over r's up-to-two contiguous segments, instead of
// copying through an intermediate []byte first. r need not be f.Buf: this
// is the low-level entry point BufFile-style staging does not need but a
// caller that already holds its own Ring (e.g. for zero-copy forwarding)
// can use directly.
func (f *UnixFile) WriteRing(r *Ring) (int, error) {
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: UnixFile write while not open", ErrOrder)
	}
	f.status = FileWriting
	n, err := f.writevOnce(r)
	if err != nil {
		f.status = FileEIO
		return 0, err
	}
	f.status = FileDone
	return n, nil
}

// Seek repositions the host descriptor.
func (f *UnixFile) Seek(offset int64, whence int) (int64, error) {
	if !fileReady(f.status) {
		return 0, fmt.Errorf("%w: UnixFile seek while not open", ErrOrder)
	}
	f.status = FileSeeking
	off, err := unix.Seek(f.fd, offset, whence)
	if err != nil {
		f.status = FileEIO
		return 0, fmt.Errorf("%w: seek %s: %v", ErrIO, f.path, err)
	}
	f.status = FileDone
	return off, nil
}

// Stop cancels any in-flight operation, fsyncing buffered writes to the
// host descriptor, leaving the file Done.
func (f *UnixFile) Stop() {
	f.status = FileStopping
	if f.fd >= 0 {
		_ = unix.Fsync(f.fd)
	}
	f.status = FileDone
}

// Close closes the host descriptor. It is idempotent.
func (f *UnixFile) Close() error {
	if f.status == FileClosed || f.fd < 0 {
		f.status = FileClosed
		return nil
	}
	err := unix.Close(f.fd)
	f.fd = -1
	f.status = FileClosed
	if err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, f.path, err)
	}
	return nil
}

// Drop satisfies Resource: it closes the descriptor and releases the
// Ring's backing memory to whichever source provided it, the RingBackingPool
// it was acquired from (NewUnixFileFromPool) or the arena (NewUnixFile).
func (f *UnixFile) Drop() {
	_ = f.Close()
	switch {
	case f.ringPool != nil:
		_ = f.ringPool.Release(f.Buf.dat)
	case f.arena != nil:
		if n := len(f.Buf.dat); n > 0 {
			_ = f.arena.Free(f.Buf.dat, n, 1)
		}
	}
	f.arena = nil
	f.ringPool = nil
}
