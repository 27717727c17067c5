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

package adc

import (
	"fmt"
	"strconv"
	"strings"
)

// Params is an ordered list of two-letter-prefixed named parameters, e.g.
// "NIalice" -> Name "NI", Value "alice". Multiple parameters with the same
// name are preserved in order (ADC allows repeated params such as "SU").
type Params []Param

// Param is one "XXvalue" named parameter.
type Param struct {
	Name  string
	Value string
}

// Get returns the first parameter value for name, and whether it was found.
func (p Params) Get(name string) (string, bool) {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// GetAll returns every value for name, in order.
func (p Params) GetAll(name string) []string {
	var out []string
	for _, kv := range p {
		if kv.Name == name {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Set appends or replaces (first occurrence) a named parameter.
func (p Params) Set(name, value string) Params {
	for i := range p {
		if p[i].Name == name {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Name: name, Value: value})
}

// Add appends a named parameter without deduplicating (for repeatable
// params like "SU" feature lists split across multiple tokens).
func (p Params) Add(name, value string) Params {
	return append(p, Param{Name: name, Value: value})
}

// ParseParams decodes a slice of raw (escaped) "XXvalue" tokens.
func ParseParams(fields []string) (Params, error) {
	out := make(Params, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			return nil, fmt.Errorf("adc: parameter token %q shorter than 2 characters", f)
		}
		out = append(out, Param{Name: f[:2], Value: Unescape(f[2:])})
	}
	return out, nil
}

// Encode renders the parameters back into escaped "XXvalue" tokens joined
// by single spaces.
func (p Params) Encode() string {
	toks := make([]string, len(p))
	for i, kv := range p {
		toks[i] = kv.Name + Escape(kv.Value)
	}
	return strings.Join(toks, " ")
}

// GetInt64 parses a numeric parameter, defaulting to 0 if absent or invalid.
func (p Params) GetInt64(name string) int64 {
	v, ok := p.Get(name)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
