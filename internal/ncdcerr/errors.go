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

// Package ncdcerr provides the typed error kind the core uses instead of bare
// errors: a small numeric Kind (matching the taxonomy of spec §7), a parent
// chain for wrapped causes, and file/line capture for diagnostics surfaced on
// a hub tab, a CC connection row, or a download queue entry.
package ncdcerr

import (
	"errors"
	"fmt"
	"runtime"
)

// Kind classifies an Error the way spec §7 distinguishes error categories.
type Kind uint8

const (
	KindNone Kind = iota
	KindProtocol
	KindAuth
	KindTransport
	KindResource
	KindIntegrity
	KindLocalIO
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindProtocol:
		return "protocol"
	case KindAuth:
		return "auth"
	case KindTransport:
		return "transport"
	case KindResource:
		return "resource"
	case KindIntegrity:
		return "integrity"
	case KindLocalIO:
		return "local_io"
	case KindConfig:
		return "config"
	default:
		return "none"
	}
}

// Error is the interface every fallible core operation returns instead of a
// bare error. It carries a Kind, an optional wrapped parent, and the
// call-site frame where it was created.
type Error interface {
	error
	Kind() Kind
	IsKind(k Kind) bool
	Unwrap() error
	File() string
	Line() int
}

type ncErr struct {
	k Kind
	m string
	p error
	f string
	l int
}

func (e *ncErr) Error() string {
	if e.p != nil {
		return fmt.Sprintf("%s: %s: %s", e.k, e.m, e.p.Error())
	}
	return fmt.Sprintf("%s: %s", e.k, e.m)
}

func (e *ncErr) Kind() Kind        { return e.k }
func (e *ncErr) IsKind(k Kind) bool { return e.k == k }
func (e *ncErr) Unwrap() error     { return e.p }
func (e *ncErr) File() string      { return e.f }
func (e *ncErr) Line() int         { return e.l }

func frame() (file string, line int) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "unknown", 0
	}
	return file, line
}

// New creates an Error of the given Kind with a plain message and an
// optional wrapped cause.
func New(k Kind, msg string, parent error) Error {
	f, l := frame()
	return &ncErr{k: k, m: msg, p: parent, f: f, l: l}
}

// Newf creates an Error of the given Kind with a formatted message.
func Newf(k Kind, parent error, format string, args ...any) Error {
	f, l := frame()
	return &ncErr{k: k, m: fmt.Sprintf(format, args...), p: parent, f: f, l: l}
}

// Is reports whether e (or any error in its chain) is an ncdcerr.Error of
// Kind k. It follows errors.Unwrap so a wrapped transport error beneath a
// generic error still matches.
func Is(e error, k Kind) bool {
	var ne Error
	if errors.As(e, &ne) {
		return ne.IsKind(k)
	}
	return false
}

// Make wraps a plain error into an Error with KindNone if it is not already
// one, preserving the chain via Unwrap.
func Make(e error) Error {
	if e == nil {
		return nil
	}
	var ne Error
	if errors.As(e, &ne) {
		return ne
	}
	f, l := frame()
	return &ncErr{k: KindNone, m: e.Error(), p: e, f: f, l: l}
}
