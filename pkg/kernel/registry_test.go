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

package kernel

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantKernel(name string) Func {
	return Func{
		FuncName: name,
		Fn: func(_ context.Context, params Params) (Result, error) {
			return Result{"function": name, "params": len(params)}, nil
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(constantKernel("b")))
	require.NoError(t, r.Register(constantKernel("a")))

	k, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", k.Name())

	_, ok = r.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, r.Names())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(constantKernel("a")))

	err := r.Register(constantKernel("a"))
	assert.ErrorIs(t, err, ErrDuplicateFunction)

	assert.Panics(t, func() { r.MustRegister(constantKernel("a")) })
}

func TestRegistryAlias(t *testing.T) {
	r := NewRegistry().MustRegister(constantKernel("linpack_pure"))

	require.NoError(t, r.Alias("linpack", "linpack_pure"))
	assert.ErrorIs(t, r.Alias("nope", "missing"), ErrUnknownFunction)
	assert.ErrorIs(t, r.Alias("linpack_pure", "linpack_pure"), ErrDuplicateFunction)
	assert.ErrorIs(t, r.Register(constantKernel("linpack")), ErrDuplicateFunction)

	result, err := r.Invoke(context.Background(), "linpack", nil)
	require.NoError(t, err)
	assert.Equal(t, "linpack_pure", result.Function())
	assert.Equal(t, []string{"linpack_pure"}, r.Names())
}

func TestRegistryInvokeUnknown(t *testing.T) {
	result, err := NewRegistry().Invoke(context.Background(), "ghost", Params{})
	assert.ErrorIs(t, err, ErrUnknownFunction)
	assert.Nil(t, result)
}

func TestRegistryInvokeNilParams(t *testing.T) {
	r := NewRegistry().MustRegister(constantKernel("a"))

	result, err := r.Invoke(context.Background(), "a", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result["params"])
}

func TestRegistryInvokeRecoversPanic(t *testing.T) {
	r := NewRegistry().MustRegister(Func{
		FuncName: "boom",
		Fn: func(context.Context, Params) (Result, error) {
			panic("index out of range")
		},
	})

	result, err := r.Invoke(context.Background(), "boom", nil)
	assert.ErrorIs(t, err, ErrKernelPanic)
	assert.Contains(t, err.Error(), "boom")
	assert.Nil(t, result)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry().MustRegister(constantKernel("a"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Invoke(context.Background(), "a", Params{"x": 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestResultAccessors(t *testing.T) {
	result := Result{"function": "f", "n": 3, "rate": 1.5, "big": int64(7), "flag": true}

	assert.Equal(t, []string{"big", "flag", "function", "n", "rate"}, result.Keys())
	assert.Equal(t, "f", result.Function())

	v, ok := result.Float("n")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = result.Float("big")
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = result.Float("flag")
	assert.False(t, ok)

	assert.Equal(t, "", Result{}.Function())
}
