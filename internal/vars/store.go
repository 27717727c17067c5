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

// Package vars is the narrow interface the core depends on for the
// per-hub variable store of spec §6 ("a typed key-value store on top of a
// transactional database"). Persistence itself is out of scope (§1
// Non-goals); Store is the contract an external collaborator implements,
// with an in-memory Stub sufficient to exercise the core and its tests.
package vars

import "sync"

// Store is keyed by (name, hub) per the vars(name, hub, value) table of §6.
type Store interface {
	GetString(name, hub string) (string, bool)
	SetString(name, hub, value string)
	GetInt(name, hub string) (int64, bool)
	SetInt(name, hub string, value int64)
	GetBytes(name, hub string) ([]byte, bool)
	SetBytes(name, hub string, value []byte)
}

type key struct{ name, hub string }

// Stub is an in-memory Store, sufficient for tests and for running without
// the transactional backing store wired in.
type Stub struct {
	mu     sync.RWMutex
	values map[key]any
}

// NewStub creates an empty in-memory Store.
func NewStub() *Stub {
	return &Stub{values: make(map[key]any)}
}

func (s *Stub) GetString(name, hub string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key{name, hub}]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *Stub) SetString(name, hub, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key{name, hub}] = value
}

func (s *Stub) GetInt(name, hub string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key{name, hub}]
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

func (s *Stub) SetInt(name, hub string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key{name, hub}] = value
}

func (s *Stub) GetBytes(name, hub string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key{name, hub}]
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (s *Stub) SetBytes(name, hub string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key{name, hub}] = value
}
