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
	"fmt"
	"sort"
	"sync"
)

// Registry maps function names to kernels. Aliases resolve to an already
// registered kernel and are not listed by Names.
type Registry struct {
	mu      sync.RWMutex
	kernels map[string]Kernel
	aliases map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		kernels: make(map[string]Kernel),
		aliases: make(map[string]string),
	}
}

func (r *Registry) Register(k Kernel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := k.Name()
	if _, exists := r.kernels[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, name)
	}
	if _, exists := r.aliases[name]; exists {
		return fmt.Errorf("%w: %s is an alias", ErrDuplicateFunction, name)
	}

	r.kernels[name] = k
	return nil
}

// MustRegister panics if the kernel cannot be registered.
func (r *Registry) MustRegister(kernels ...Kernel) *Registry {
	for _, k := range kernels {
		if err := r.Register(k); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.kernels[name]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	if _, exists := r.kernels[alias]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFunction, alias)
	}

	r.aliases[alias] = name
	return nil
}

func (r *Registry) Get(name string) (Kernel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if target, ok := r.aliases[name]; ok {
		name = target
	}
	k, ok := r.kernels[name]
	return k, ok
}

// Names lists registered kernels in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke dispatches to the named kernel. A panic inside the kernel is turned
// into an error wrapping ErrKernelPanic and no result is returned.
func (r *Registry) Invoke(ctx context.Context, name string, params Params) (Result, error) {
	k, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return Guard(ctx, k, params)
}

// Guard invokes k and converts a panic into an error.
func Guard(ctx context.Context, k Kernel, params Params) (result Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %s: %v", ErrKernelPanic, k.Name(), rec)
		}
	}()

	if params == nil {
		params = Params{}
	}
	return k.Invoke(ctx, params)
}
