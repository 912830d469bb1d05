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
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigParser(t *testing.T) {
	var pathToConfigFile = ""
	wd, _ := os.Getwd()

	if strings.HasSuffix(wd, "pkg/config") {
		pathToConfigFile = "../../"
	}
	pathToConfigFile += "cmd/config.json"

	config := ReadConfigurationFile(pathToConfigFile)

	if config.ListenAddress != "0.0.0.0" ||
		config.HTTPPort != 8080 ||
		config.GRPCPort != 50051 ||
		config.DefaultFunction != "linpack_pure" ||
		len(config.EnabledFunctions) != 2 ||
		config.EnableZipkinTracing != false ||
		config.ZipkinURL != "http://localhost:9411/api/v2/spans" ||
		config.InvocationTimeoutSeconds != 900 ||
		config.SweepIterations != 50 ||
		config.SweepWarmupIterations != 5 ||
		config.SweepConcurrency != 4 ||
		config.OutputPathPrefix != "data/out/kernels" {

		t.Error("Unexpected configuration read.")
	}

	require.NoError(t, config.Validate())
	assert.Equal(t, "0.0.0.0:8080", config.HTTPAddress())
	assert.Equal(t, "0.0.0.0:50051", config.GRPCAddress())
	assert.Equal(t, 900*time.Second, config.InvocationTimeout())
}

func TestParseConfigurationEnvironmentOverrides(t *testing.T) {
	t.Setenv("KERNEL_HTTP_PORT", "9090")
	t.Setenv("KERNEL_GRPC_PORT", "not-a-port")
	t.Setenv("KERNEL_DEFAULT_FUNCTION", "primenum")

	config, err := ParseConfiguration([]byte(`{"HTTPPort": 80, "GRPCPort": 81}`))
	require.NoError(t, err)

	assert.Equal(t, 9090, config.HTTPPort)
	assert.Equal(t, 81, config.GRPCPort)
	assert.Equal(t, "primenum", config.DefaultFunction)
	assert.NoError(t, config.Validate())
}

func TestParseConfigurationMalformed(t *testing.T) {
	_, err := ParseConfiguration([]byte(`{"HTTPPort": "eighty"}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() RuntimeConfiguration {
		return RuntimeConfiguration{
			HTTPPort:         8080,
			GRPCPort:         50051,
			DefaultFunction:  "linpack_pure",
			EnabledFunctions: []string{"linpack", "primes_pure"},
		}
	}

	valid := base()
	assert.NoError(t, valid.Validate())
	assert.Equal(t, 1, valid.SweepConcurrencyOrDefault())
	assert.Equal(t, time.Duration(0), valid.InvocationTimeout())

	cases := map[string]func(c *RuntimeConfiguration){
		"no ports":          func(c *RuntimeConfiguration) { c.HTTPPort, c.GRPCPort = 0, 0 },
		"port out of range": func(c *RuntimeConfiguration) { c.HTTPPort = 70000 },
		"same ports":        func(c *RuntimeConfiguration) { c.GRPCPort = c.HTTPPort },
		"unknown function":  func(c *RuntimeConfiguration) { c.EnabledFunctions = append(c.EnabledFunctions, "matmul") },
		"unknown default":   func(c *RuntimeConfiguration) { c.DefaultFunction = "matmul" },
		"default disabled":  func(c *RuntimeConfiguration) { c.EnabledFunctions = []string{"primes_pure"} },
		"tracing no url":    func(c *RuntimeConfiguration) { c.EnableZipkinTracing = true },
		"negative timeout":  func(c *RuntimeConfiguration) { c.InvocationTimeoutSeconds = -1 },
		"negative sweep":    func(c *RuntimeConfiguration) { c.SweepIterations = -1 },
		"negative workers":  func(c *RuntimeConfiguration) { c.SweepConcurrency = -2 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfiguration)
		})
	}
}
