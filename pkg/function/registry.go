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

// Package function assembles the catalogue of benchmark kernels served by the
// runtimes.
package function

import (
	"fmt"

	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/kernel/linpack"
	"github.com/vhive-serverless/kernels/pkg/kernel/primes"
)

var aliases = map[string]string{
	common.LinpackAlias: common.LinpackFunctionName,
	common.PrimesAlias:  common.PrimesFunctionName,
}

// Catalogue returns constructors for every known kernel at production size.
func Catalogue() map[string]func() kernel.Kernel {
	return map[string]func() kernel.Kernel{
		common.LinpackFunctionName: func() kernel.Kernel { return linpack.New() },
		common.PrimesFunctionName:  func() kernel.Kernel { return primes.New() },
	}
}

// CanonicalName resolves load-generator aliases to the kernel name.
func CanonicalName(name string) string {
	if target, ok := aliases[name]; ok {
		return target
	}
	return name
}

// NewRegistry registers the named kernels, or every known kernel when names
// is empty, together with their aliases.
func NewRegistry(names ...string) (*kernel.Registry, error) {
	catalogue := Catalogue()
	if len(names) == 0 {
		for name := range catalogue {
			names = append(names, name)
		}
	}

	registry := kernel.NewRegistry()
	for _, name := range names {
		name = CanonicalName(name)
		constructor, ok := catalogue[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", kernel.ErrUnknownFunction, name)
		}
		if err := registry.Register(constructor()); err != nil {
			return nil, err
		}
	}

	for alias, target := range aliases {
		if _, ok := registry.Get(target); ok {
			if err := registry.Alias(alias, target); err != nil {
				return nil, err
			}
		}
	}

	return registry, nil
}

// DefaultRegistry serves linpack_pure and primes_pure.
func DefaultRegistry() *kernel.Registry {
	registry, err := NewRegistry()
	common.Check(err)
	return registry
}
