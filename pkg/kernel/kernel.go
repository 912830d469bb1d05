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

// Package kernel defines the invocation contract shared by all benchmark
// kernels and the registry the runtimes dispatch through.
//
// A kernel is invoked as Invoke(ctx, params) and answers with a Result whose
// key set and value types never change between invocations. Size and limit
// are owned by each kernel, so params are accepted but currently ignored.
package kernel

import (
	"context"
	"errors"
	"sort"
)

var (
	ErrUnknownFunction   = errors.New("unknown function")
	ErrDuplicateFunction = errors.New("function already registered")
	ErrKernelPanic       = errors.New("kernel panicked")
)

// Params carries invocation-time arguments decoded from the request body.
type Params map[string]interface{}

// Result is the fixed-shape record a kernel returns. Downstream analysis keys
// off these field names.
type Result map[string]interface{}

// Keys returns the sorted key set of the result.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Function returns the "function" tag of the result, or "" if absent.
func (r Result) Function() string {
	name, _ := r["function"].(string)
	return name
}

// Float returns a numeric field as float64.
func (r Result) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Kernel is a self-contained CPU-bound workload. Implementations must be safe
// for concurrent use: every invocation owns its own working state.
type Kernel interface {
	Name() string
	Invoke(ctx context.Context, params Params) (Result, error)
}

// Func adapts a plain function to the Kernel interface.
type Func struct {
	FuncName string
	Fn       func(ctx context.Context, params Params) (Result, error)
}

func (f Func) Name() string {
	return f.FuncName
}

func (f Func) Invoke(ctx context.Context, params Params) (Result, error) {
	return f.Fn(ctx, params)
}
