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

package meter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vhive-serverless/kernels/pkg/common"
)

func frozenClock() Clock {
	t := time.Unix(1700000000, 0)
	return func() time.Time { return t }
}

func steppingClock(step time.Duration) Clock {
	t := time.Unix(1700000000, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestMeasureSpansWork(t *testing.T) {
	called := false
	seconds := NewStopwatch(steppingClock(250 * time.Millisecond)).Measure(func() { called = true })

	assert.True(t, called)
	assert.InDelta(t, 0.25, seconds, 1e-12)
}

func TestMeasureZeroDurationIsFloored(t *testing.T) {
	seconds := NewStopwatch(frozenClock()).Measure(func() {})
	assert.Equal(t, common.MinDurationSeconds, seconds)
}

func TestMeasureNegativeDurationIsFloored(t *testing.T) {
	seconds := NewStopwatch(steppingClock(-time.Second)).Measure(func() {})
	assert.Equal(t, common.MinDurationSeconds, seconds)
}

func TestZeroValueStopwatchUsesWallClock(t *testing.T) {
	seconds := Stopwatch{}.Measure(func() { time.Sleep(2 * time.Millisecond) })
	assert.GreaterOrEqual(t, seconds, 0.002)
}

func TestFloorSeconds(t *testing.T) {
	assert.Equal(t, common.MinDurationSeconds, FloorSeconds(0))
	assert.Equal(t, common.MinDurationSeconds, FloorSeconds(-3))
	assert.Equal(t, common.MinDurationSeconds, FloorSeconds(math.NaN()))
	assert.Equal(t, 0.5, FloorSeconds(0.5))
}

func TestMFLOPS(t *testing.T) {
	assert.InDelta(t, 2.0, MFLOPS(2e6, 1), 1e-12)
	assert.InDelta(t, 8.0, MFLOPS(2e6, 0.25), 1e-12)

	rate := MFLOPS(1e6, 0)
	assert.False(t, math.IsInf(rate, 0))
	assert.False(t, math.IsNaN(rate))
	assert.InDelta(t, 1e6, rate, 1e-6)
}
