//go:build civo_backtrace && unix

// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"fmt"
	"os"
	"runtime/debug"
)

// EnableBacktracePrinter installs an ErrPrinter on f, in place of its
// current one, that prints the error followed by a goroutine stack trace.
// It is only compiled in under the civo_backtrace build tag on Unix hosts —
// spec'd as an optional, off-by-default feature, not part of the default
// error-unwinding path.
func EnableBacktracePrinter(f *Fiber) {
	f.Printer = func(err error) {
		fmt.Fprintf(os.Stderr, "!! Error: %v\n", err)
		os.Stderr.Write(debug.Stack())
	}
}
