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

// Package linpack implements the linpack_pure kernel: a random dense linear
// system solved by naive Gaussian elimination, reported in MFLOPS.
package linpack

import (
	"context"

	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/meter"
)

const DefaultMatrixSize = 300

// Report is the typed form of the linpack_pure result.
type Report struct {
	Function       string  `json:"function"`
	MatrixSize     int     `json:"matrix_size"`
	MFLOPS         float64 `json:"mflops"`
	LatencySeconds float64 `json:"latency_seconds"`
	Valid          bool    `json:"valid"`
}

func (r Report) Result() kernel.Result {
	return kernel.Result{
		"function":        r.Function,
		"matrix_size":     r.MatrixSize,
		"mflops":          r.MFLOPS,
		"latency_seconds": r.LatencySeconds,
		"valid":           r.Valid,
	}
}

type Kernel struct {
	size    int
	sources SourceFactory
	watch   meter.Stopwatch
}

type Option func(*Kernel)

// WithSize overrides the matrix dimension.
func WithSize(n int) Option {
	return func(k *Kernel) {
		k.size = n
	}
}

// WithSource sets the factory that yields one random source per invocation.
func WithSource(factory SourceFactory) Option {
	return func(k *Kernel) {
		k.sources = factory
	}
}

func WithClock(clock meter.Clock) Option {
	return func(k *Kernel) {
		k.watch = meter.NewStopwatch(clock)
	}
}

func New(opts ...Option) *Kernel {
	k := &Kernel{
		size:    DefaultMatrixSize,
		sources: defaultSourceFactory,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *Kernel) Name() string {
	return common.LinpackFunctionName
}

func (k *Kernel) Size() int {
	return k.size
}

// Run generates a fresh system and solves it. Only elimination and back
// substitution are timed.
func (k *Kernel) Run() Report {
	a, b := Generate(k.size, k.sources())
	return k.solve(a, b)
}

// RunSystem solves a caller-supplied system A·x = B under the same timing
// and validity policy as Run.
func (k *Kernel) RunSystem(a [][]float64, b []float64) Report {
	return k.solve(a, b)
}

func (k *Kernel) solve(a [][]float64, b []float64) Report {
	n := len(a)
	ops := FlopCount(n)
	m := NewAugmented(a, b)

	var x []float64
	latency := k.watch.Measure(func() {
		x = Solve(m)
	})

	return Report{
		Function:       common.LinpackFunctionName,
		MatrixSize:     n,
		MFLOPS:         meter.MFLOPS(ops, latency),
		LatencySeconds: latency,
		Valid:          IsValid(x),
	}
}

// Invoke ignores params; the matrix size is fixed at construction.
func (k *Kernel) Invoke(_ context.Context, _ kernel.Params) (kernel.Result, error) {
	return k.Run().Result(), nil
}
