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

// Package duration is a small time.Duration wrapper used for configurable
// intervals (config.Config's share refresh interval) so config structs
// decode plain strings like "30s" or "5m" through encoding.TextUnmarshaler
// instead of raw nanosecond integers. The core's fixed timeouts (idle,
// keepalive, expectation lifetime, reconnect delay) are plain
// time.Duration constants and do not use it.
package duration

import (
	"strconv"
	"time"
)

// Duration is a time.Duration with text (de)serialization for config files.
type Duration time.Duration

// Seconds returns a Duration of i seconds.
func Seconds(i int64) Duration { return Duration(time.Duration(i) * time.Second) }

// Minutes returns a Duration of i minutes.
func Minutes(i int64) Duration { return Duration(time.Duration(i) * time.Minute) }

// Hours returns a Duration of i hours.
func Hours(i int64) Duration { return Duration(time.Duration(i) * time.Hour) }

// Time returns the underlying time.Duration.
func (d Duration) Time() time.Duration { return time.Duration(d) }

// AsSeconds returns the duration as a floating-point number of seconds,
// mirroring time.Duration.Seconds().
func (d Duration) AsSeconds() float64 { return time.Duration(d).Seconds() }

// String implements fmt.Stringer, delegating to time.Duration's formatting.
func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts either a
// Go duration string ("30s", "5m") or a bare integer, interpreted as
// seconds, matching the `vars` table's plain-integer storage convention.
func (d *Duration) UnmarshalText(p []byte) error {
	s := string(p)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Seconds(n)
		return nil
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Parse parses a Go duration string or a bare integer-seconds string.
func Parse(s string) (Duration, error) {
	var d Duration
	err := d.UnmarshalText([]byte(s))
	return d, err
}
