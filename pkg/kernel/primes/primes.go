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

// Package primes implements the primes_pure kernel, a trial-division prime
// counter.
package primes

import (
	"context"

	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/meter"
)

const DefaultLimit = 50_000

type Report struct {
	Function       string  `json:"function"`
	MaxPrimeLimit  int     `json:"max_prime_limit"`
	PrimesFound    int     `json:"primes_found"`
	LatencySeconds float64 `json:"latency_seconds"`
	Iterations     int     `json:"iterations"`
}

func (r Report) Result() kernel.Result {
	return kernel.Result{
		"function":        r.Function,
		"max_prime_limit": r.MaxPrimeLimit,
		"primes_found":    r.PrimesFound,
		"latency_seconds": r.LatencySeconds,
		"iterations":      r.Iterations,
	}
}

type Kernel struct {
	limit int
	watch meter.Stopwatch
}

type Option func(*Kernel)

func WithLimit(limit int) Option {
	return func(k *Kernel) {
		k.limit = limit
	}
}

func WithClock(clock meter.Clock) Option {
	return func(k *Kernel) {
		k.watch = meter.NewStopwatch(clock)
	}
}

func New(opts ...Option) *Kernel {
	k := &Kernel{limit: DefaultLimit}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *Kernel) Name() string {
	return common.PrimesFunctionName
}

func (k *Kernel) Limit() int {
	return k.limit
}

func (k *Kernel) Run() Report {
	var found, iterations int
	latency := k.watch.Measure(func() {
		found, iterations = Count(k.limit)
	})

	return Report{
		Function:       common.PrimesFunctionName,
		MaxPrimeLimit:  k.limit,
		PrimesFound:    found,
		LatencySeconds: latency,
		Iterations:     iterations,
	}
}

func (k *Kernel) Invoke(_ context.Context, _ kernel.Params) (kernel.Result, error) {
	return k.Run().Result(), nil
}
