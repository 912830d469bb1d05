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

package metric

import (
	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
)

// KernelRecord is one invocation as exported to CSV. Kernel-specific columns
// are left at their zero value for the other kernel.
type KernelRecord struct {
	InvocationID string `csv:"invocation_id"`
	Timestamp    int64  `csv:"timestamp"`
	Phase        int    `csv:"phase"`
	Function     string `csv:"function"`
	Arch         string `csv:"arch"`

	Size           int     `csv:"size"`
	LatencySeconds float64 `csv:"latency_seconds"`
	ResponseTime   int64   `csv:"response_time"` // µs, including dispatch

	MFLOPS      float64 `csv:"mflops"`
	Valid       bool    `csv:"valid"`
	PrimesFound int     `csv:"primes_found"`
	Iterations  int     `csv:"iterations"`

	Failed bool   `csv:"failed"`
	Error  string `csv:"error"`
}

// FillFromResult copies the measurements of a kernel result into the record.
func (r *KernelRecord) FillFromResult(result kernel.Result) {
	if name := result.Function(); name != "" {
		r.Function = name
	}

	r.LatencySeconds, _ = result.Float("latency_seconds")
	r.MFLOPS, _ = result.Float("mflops")
	r.Valid, _ = result["valid"].(bool)

	if primes, ok := result["primes_found"].(int); ok {
		r.PrimesFound = primes
	}
	if iterations, ok := result["iterations"].(int); ok {
		r.Iterations = iterations
	}

	switch r.Function {
	case common.LinpackFunctionName:
		r.Size, _ = result["matrix_size"].(int)
	case common.PrimesFunctionName:
		r.Size, _ = result["max_prime_limit"].(int)
	}
}
