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

// Package nclog is the structured logging facade used across the core. It
// wraps logrus the way golib/logger wraps its own backends, and keeps a
// per-hub file hook so each hub tab gets its own persistent log file as
// described by spec §7 ("Fatal conditions additionally log to a persistent
// per-tab log file").
package nclog

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is a structured key/value set attached to a log entry.
type Fields map[string]any

// Logger is the narrow facade the core depends on. It is implemented by
// *entry so call sites never import logrus directly.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
	With(f Fields) Logger
}

type entry struct {
	e *logrus.Entry
}

func (l *entry) Debug(msg string, f Fields) { l.e.WithFields(logrus.Fields(f)).Debug(msg) }
func (l *entry) Info(msg string, f Fields)  { l.e.WithFields(logrus.Fields(f)).Info(msg) }
func (l *entry) Warn(msg string, f Fields)  { l.e.WithFields(logrus.Fields(f)).Warn(msg) }
func (l *entry) Error(msg string, f Fields) { l.e.WithFields(logrus.Fields(f)).Error(msg) }

func (l *entry) With(f Fields) Logger {
	return &entry{e: l.e.WithFields(logrus.Fields(f))}
}

var (
	root  = logrus.New()
	mu    sync.Mutex
	files = map[string]*os.File{}
)

func init() {
	root.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	root.SetOutput(os.Stderr)
}

// New returns the process-wide Logger, optionally scoped with base fields
// (e.g. the hub name) the way each hub tab tags its own log lines.
func New(base Fields) Logger {
	return &entry{e: root.WithFields(logrus.Fields(base))}
}

// SetLevel adjusts the minimum level emitted by the process-wide logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root.SetLevel(lvl)
	return nil
}

// OpenHubLog attaches a per-hub log file, modeled on golib/logger/hookfile:
// every Logger created afterwards with the matching hub field also writes
// to this file, independent of the process-wide output.
func OpenHubLog(hubName string, dir string) (io.Closer, error) {
	mu.Lock()
	defer mu.Unlock()

	path := dir + "/" + hubName + ".log"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	files[hubName] = f

	hook := &fileHook{w: f, hub: hubName}
	root.AddHook(hook)
	return f, nil
}

type fileHook struct {
	w   io.Writer
	hub string
}

func (h *fileHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *fileHook) Fire(e *logrus.Entry) error {
	if v, ok := e.Data["hub"]; !ok || v != h.hub {
		return nil
	}
	line, err := e.String()
	if err != nil {
		return err
	}
	_, err = h.w.Write([]byte(line))
	return err
}
