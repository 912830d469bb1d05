/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
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
 */

// Package meter times kernel execution and derives throughput rates from it.
package meter

import (
	"math"
	"time"

	"github.com/vhive-serverless/kernels/pkg/common"
)

// Clock returns the current wall-clock reading.
type Clock func() time.Time

// Stopwatch measures the wall-clock span of a single region of work.
// The zero value uses time.Now.
type Stopwatch struct {
	Clock Clock
}

func NewStopwatch(clock Clock) Stopwatch {
	return Stopwatch{Clock: clock}
}

func (s Stopwatch) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Measure runs fn and returns its duration in seconds, floored to
// common.MinDurationSeconds.
func (s Stopwatch) Measure(fn func()) float64 {
	start := s.now()
	fn()
	end := s.now()

	return FloorSeconds(end.Sub(start).Seconds())
}

// FloorSeconds replaces clock-resolution artifacts (zero, negative or NaN
// readings) with the minimal positive duration.
func FloorSeconds(seconds float64) float64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return common.MinDurationSeconds
	}
	return seconds
}

// MFLOPS converts an operation count executed in the given number of seconds
// into millions of floating-point operations per second.
func MFLOPS(ops float64, seconds float64) float64 {
	return ops * 1e-6 / FloorSeconds(seconds)
}
