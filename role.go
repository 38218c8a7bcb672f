// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import "io"

// Arena is the allocator role every container in this package is built on
// top of. It replaces the original's hand-rolled (vtable*, data*) pair with
// a plain interface — Go's method dispatch already does what that pair was
// emulating.
//
// Alloc requests size bytes at the given alignment (1 for byte-packed,
// anything else fixed to 4). It returns ok=false, rather than growing the
// arena unboundedly, when the request cannot be satisfied from the current
// block and no further blocks are available from the backing BlockPool.
//
// Free must be called in exact reverse order of the matching Alloc calls,
// repeating the same size and alignment; violating this returns an error
// instead of silently corrupting the block.
type Arena interface {
	Alloc(size, alignment int) (p []byte, ok bool)
	Free(p []byte, size, alignment int) error
	// MaxAlloc returns the largest size a single Alloc call can satisfy.
	MaxAlloc() int
}

// Resource is anything that owns memory or a handle and must be released
// deterministically. Drop is idempotent: calling it more than once is not
// an error.
type Resource interface {
	Drop()
}

// Reader is the byte-oriented read role streams implement, deliberately
// compatible with io.Reader so a File can be handed to any stdlib code that
// expects one.
type Reader interface {
	io.Reader
}

// Writer is the byte-oriented write role streams implement, deliberately
// compatible with io.Writer.
type Writer interface {
	io.Writer
}

// Fmt is the formatted-output role for human-facing diagnostic sinks. The
// Logger role does not include it, and StdLogger does not implement it.
type Fmt interface {
	Printf(format string, args ...any)
}

// File status codes, mirroring the original's bit-coded state machine. A
// File starts Closed, moves through the 0x1x in-progress codes while an
// Open/Seek/Read/Write/Stop call is actually running, and lands in one of
// the 0xD* terminal "ready for the next call" codes or an 0xE* failure
// code when it returns. Methods called outside the state they require
// return ErrOrder.
const (
	FileClosed   = 0x00
	FileSeeking  = 0x10
	FileReading  = 0x11
	FileWriting  = 0x12
	FileStopping = 0x13

	FileDone    = 0xD0
	FileStopped = 0xD1
	FileEOF     = 0xD2

	FileError = 0xE0
	FileEIO   = 0xE2
)

// fileReady reports whether status is one of the terminal codes (Done,
// Stopped, EOF, Error, EIO) a File lands in between calls — i.e. neither
// Closed nor mid some other operation.
func fileReady(status int) bool { return status >= FileDone }

// File is the role a stream backend (BufFile, a unix-backed file) fulfils:
// open/read/write/seek/stop/close over a byte-oriented resource, plus its
// current Status.
type File interface {
	Resource
	Reader
	Writer
	Open() error
	Seek(offset int64, whence int) (int64, error)
	// Stop cancels any in-flight operation, flushing buffered writes for
	// backends that buffer, and leaves the file Done.
	Stop()
	Close() error
	Status() int
}

// BaseFiler exposes the BaseFile embedded in every concrete File
// implementation, standing in for the original's vtable-prefix upcast: any
// File can hand back its BaseFile for code that wants the shared Ring
// buffering without caring which concrete backend it is.
type BaseFiler interface {
	AsBase() *BaseFile
}

// BaseFile is the shared state every File implementation embeds: a Ring for
// buffering and a status code. It is not itself a complete File — concrete
// backends (BufFile, the unix file) supply Open/Seek/Close semantics around
// it.
type BaseFile struct {
	Buf    Ring
	status int
}

// AsBase implements BaseFiler.
func (b *BaseFile) AsBase() *BaseFile { return b }

// Status returns the file's current state code (FileClosed, one of the
// 0x1x in-progress codes, or one of the 0xD*/0xE* terminal codes).
func (b *BaseFile) Status() int { return b.status }

// Logger is the structured-logging role: Start begins a log line at the
// given level, Add appends a key/value pair to it, and End flushes it. This
// mirrors the original's Logger_start/Logger_add/Logger_end triplet rather
// than a single variadic call, so a caller can build a line incrementally
// without intermediate allocation.
type Logger interface {
	Start(level int, msg string) Logger
	Add(key string, value any) Logger
	End()
}

// Log levels, ordered so a LogConfig's MinLevel gates any Start below it.
const (
	LogTrace = iota
	LogDebug
	LogInfo
	LogWarn
	LogError
)
