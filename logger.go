// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package civo

import (
	"fmt"
	"io"
)

// LogLineCap is the fixed capacity, in bytes, of a StdLogger's per-line
// format-state Buf. Buf.Write appends all or nothing, so a Start or Add
// whose formatted text would overflow it is dropped whole, and the
// trailing newline is dropped if the Buf is already full — the same
// fixed-capacity discipline every other Buf user in this package observes.
const LogLineCap = 256

// LogConfig controls a StdLogger's behavior.
type LogConfig struct {
	// MinLevel gates Start: a Start below MinLevel produces a no-op line.
	MinLevel int
	Out      io.Writer
}

// levelTag holds the exact 4-character level tags the original prints
// inside "[XXXX] ": "?TRC", "?DBG", "INFO", "WARN", "!ERR".
var levelTag = [...]string{
	LogTrace: "?TRC",
	LogDebug: "?DBG",
	LogInfo:  "INFO",
	LogWarn:  "WARN",
	LogError: "!ERR",
}

// StdLogger is the default Logger implementation: Start/Add/End build one
// line incrementally ("level msg key=value key=value...") rather than
// taking a single variadic call, matching the original's
// Logger_start/Logger_add/Logger_end triplet. The in-progress line is
// built into a small arena-allocated Buf (per spec.md §4.8's "small format
// state arena"), not a heap-growing strings.Builder.
type StdLogger struct {
	cfg     LogConfig
	fmt     *Buf
	active  bool
	dropped bool
}

// NewStdLogger returns a StdLogger backed by a LogLineCap-byte Buf
// allocated from a.
func NewStdLogger(a Arena, cfg LogConfig) (*StdLogger, error) {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	buf, err := NewBuf(a, LogLineCap)
	if err != nil {
		return nil, err
	}
	return &StdLogger{cfg: cfg, fmt: buf}, nil
}

// Start begins a new log line at level, or discards it if level is below
// the configured MinLevel. It returns the Logger itself so Add/End can
// chain.
func (l *StdLogger) Start(level int, msg string) Logger {
	l.fmt.Clear()
	if level < l.cfg.MinLevel {
		l.active = false
		l.dropped = true
		return l
	}
	l.active = true
	l.dropped = false
	tag := "????"
	if level >= 0 && level < len(levelTag) {
		tag = levelTag[level]
	}
	fmt.Fprintf(l.fmt, "[%s] %s", tag, msg)
	return l
}

// Add appends a key/value pair to the in-progress line. It is a no-op if
// the line was dropped by Start.
func (l *StdLogger) Add(key string, value any) Logger {
	if !l.active {
		return l
	}
	fmt.Fprintf(l.fmt, " %s=%v", key, value)
	return l
}

// End flushes the in-progress line to the configured writer.
func (l *StdLogger) End() {
	if !l.active {
		return
	}
	_ = l.fmt.Push('\n')
	_, _ = l.cfg.Out.Write(l.fmt.Bytes())
	l.active = false
}
