// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"fmt"
	"os"
)

// failSignal carries an error across a panic/recover boundary. Fail panics
// with one; Try is the only thing meant to recover it.
type failSignal struct {
	err error
}

// Fail aborts the current operation by panicking with err wrapped in a
// failSignal. It replaces the original's longjmp-to-global-Civ unwind: Go's
// panic/recover already walks the stack to the nearest handler, so there is
// no need for a process-global jump target. Only a Try (or a deferred
// recover matching failSignal) should ever observe it; any other panic
// propagates untouched.
func Fail(err error) {
	if err == nil {
		err = ErrIO
	}
	panic(failSignal{err: err})
}

// Failf is a convenience wrapper: Fail(fmt.Errorf(format, args...)).
func Failf(format string, args ...any) {
	Fail(fmt.Errorf(format, args...))
}

// ErrPrinter receives an error observed by Try before it is returned to the
// caller, unless the Fiber's ExpectErr suppresses it. The default is
// DefaultErrPrinter, which writes to os.Stderr.
type ErrPrinter func(err error)

// DefaultErrPrinter writes err to os.Stderr as "!! Error: <err>\n", the same
// destination the original's default error path used.
func DefaultErrPrinter(err error) {
	fmt.Fprintf(os.Stderr, "!! Error: %v\n", err)
}

// Fiber is an explicit replacement for the original's global Civ singleton:
// instead of one process-wide jump buffer and error-reporting mode, each
// Fiber carries its own. A program that only ever needs one unwind context
// can keep a single Fiber; tests that expect a failure use ExpectErr to
// silence the printer while still asserting on the error Try returns.
type Fiber struct {
	// ExpectErr, when true, suppresses Printer for the next Try on this
	// Fiber that recovers a Fail, and is cleared by that Try; a Try whose
	// fn returns normally leaves it set. It is intended for tests that
	// deliberately trigger a Fail and want to assert on the returned error
	// without noisy output.
	ExpectErr bool

	// Printer is invoked with any error Try recovers, unless ExpectErr is
	// set. Defaults to DefaultErrPrinter when the zero-value Fiber is used
	// directly (see Try).
	Printer ErrPrinter
}

// NewFiber returns a Fiber with the default error printer installed.
func NewFiber() *Fiber {
	return &Fiber{Printer: DefaultErrPrinter}
}

// Try runs fn, recovering any Fail raised inside it and returning the
// carried error. A panic that did not originate from Fail is re-panicked
// unchanged — Try only ever catches the failSignal it knows how to unwind.
// If fn returns normally, Try returns nil.
func (f *Fiber) Try(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sig, ok := r.(failSignal)
		if !ok {
			panic(r)
		}
		err = sig.err
		if f.ExpectErr {
			f.ExpectErr = false
			return
		}
		p := f.Printer
		if p == nil {
			p = DefaultErrPrinter
		}
		p(err)
	}()
	fn()
	return nil
}

// Try is a package-level convenience that runs fn under a fresh, throwaway
// Fiber with the default printer. Prefer a long-lived *Fiber (via NewFiber)
// when a caller wants to control ExpectErr or Printer across multiple
// calls.
func Try(fn func()) error {
	return NewFiber().Try(fn)
}
