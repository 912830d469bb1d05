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

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/vhive-serverless/kernels/pkg/function"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Validate checks ports, function names and sweep parameters.
func (c *RuntimeConfiguration) Validate() error {
	if c.HTTPPort <= 0 && c.GRPCPort <= 0 {
		return invalid("at least one of HTTPPort and GRPCPort must be set")
	}
	for _, port := range []int{c.HTTPPort, c.GRPCPort} {
		if port < 0 || port > 65535 {
			return invalid("port %d out of range", port)
		}
	}
	if c.HTTPPort > 0 && c.HTTPPort == c.GRPCPort {
		return invalid("HTTPPort and GRPCPort must differ")
	}

	catalogue := function.Catalogue()
	for _, name := range c.EnabledFunctions {
		if _, ok := catalogue[function.CanonicalName(name)]; !ok {
			return invalid("unknown function %q", name)
		}
	}
	if c.DefaultFunction != "" {
		if _, ok := catalogue[function.CanonicalName(c.DefaultFunction)]; !ok {
			return invalid("unknown default function %q", c.DefaultFunction)
		}
		if len(c.EnabledFunctions) > 0 && !c.isEnabled(c.DefaultFunction) {
			return invalid("default function %q is not enabled", c.DefaultFunction)
		}
	}

	if c.EnableZipkinTracing && c.ZipkinURL == "" {
		return invalid("ZipkinURL is required when tracing is enabled")
	}
	if c.InvocationTimeoutSeconds < 0 {
		return invalid("InvocationTimeoutSeconds must not be negative")
	}
	if c.SweepIterations < 0 || c.SweepWarmupIterations < 0 {
		return invalid("sweep iterations must not be negative")
	}
	if c.SweepConcurrency < 0 {
		return invalid("SweepConcurrency must not be negative")
	}

	return nil
}

func (c *RuntimeConfiguration) isEnabled(name string) bool {
	target := function.CanonicalName(name)
	for _, enabled := range c.EnabledFunctions {
		if function.CanonicalName(enabled) == target {
			return true
		}
	}
	return false
}

func (c *RuntimeConfiguration) HTTPAddress() string {
	return net.JoinHostPort(c.ListenAddress, strconv.Itoa(c.HTTPPort))
}

func (c *RuntimeConfiguration) GRPCAddress() string {
	return net.JoinHostPort(c.ListenAddress, strconv.Itoa(c.GRPCPort))
}

// InvocationTimeout is zero when invocations are not bounded.
func (c *RuntimeConfiguration) InvocationTimeout() time.Duration {
	return time.Duration(c.InvocationTimeoutSeconds) * time.Second
}

// SweepConcurrencyOrDefault defaults to sequential invocations.
func (c *RuntimeConfiguration) SweepConcurrencyOrDefault() int {
	if c.SweepConcurrency < 1 {
		return 1
	}
	return c.SweepConcurrency
}
