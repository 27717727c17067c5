/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package nclog

import (
	"io"
	"log"

	"github.com/hashicorp/go-hclog"
)

// AsHCLog adapts a Logger to the hclog.Logger interface expected by
// golang.org/x/sync/errgroup-supervised worker pools (internal/sched), the
// same bridging golib/logger/hclog.go performs for its own consumers.
func AsHCLog(l Logger) hclog.Logger {
	return &hcAdapter{l: l}
}

type hcAdapter struct {
	l    Logger
	name string
}

func (a *hcAdapter) Log(level hclog.Level, msg string, args ...interface{}) {
	f := argsToFields(args)
	switch level {
	case hclog.Trace, hclog.Debug:
		a.l.Debug(msg, f)
	case hclog.Warn:
		a.l.Warn(msg, f)
	case hclog.Error:
		a.l.Error(msg, f)
	default:
		a.l.Info(msg, f)
	}
}

func (a *hcAdapter) Trace(msg string, args ...interface{}) { a.Log(hclog.Trace, msg, args...) }
func (a *hcAdapter) Debug(msg string, args ...interface{}) { a.Log(hclog.Debug, msg, args...) }
func (a *hcAdapter) Info(msg string, args ...interface{})  { a.Log(hclog.Info, msg, args...) }
func (a *hcAdapter) Warn(msg string, args ...interface{})  { a.Log(hclog.Warn, msg, args...) }
func (a *hcAdapter) Error(msg string, args ...interface{}) { a.Log(hclog.Error, msg, args...) }

func (a *hcAdapter) IsTrace() bool { return true }
func (a *hcAdapter) IsDebug() bool { return true }
func (a *hcAdapter) IsInfo() bool  { return true }
func (a *hcAdapter) IsWarn() bool  { return true }
func (a *hcAdapter) IsError() bool { return true }

func (a *hcAdapter) ImpliedArgs() []interface{}  { return nil }
func (a *hcAdapter) With(args ...interface{}) hclog.Logger {
	return &hcAdapter{l: a.l.With(argsToFields(args)), name: a.name}
}
func (a *hcAdapter) Name() string { return a.name }
func (a *hcAdapter) Named(name string) hclog.Logger {
	return &hcAdapter{l: a.l.With(Fields{"component": name}), name: name}
}
func (a *hcAdapter) ResetNamed(name string) hclog.Logger { return a.Named(name) }
func (a *hcAdapter) SetLevel(level hclog.Level)          {}
func (a *hcAdapter) GetLevel() hclog.Level                { return hclog.Info }
func (a *hcAdapter) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.New(a.StandardWriter(opts), "", 0)
}
func (a *hcAdapter) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return io.Discard
}

func argsToFields(args []interface{}) Fields {
	f := Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			f[k] = args[i+1]
		}
	}
	return f
}
