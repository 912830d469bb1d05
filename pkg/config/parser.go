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
	"encoding/json"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type RuntimeConfiguration struct {
	ListenAddress string `json:"ListenAddress"`
	HTTPPort      int    `json:"HTTPPort"`
	GRPCPort      int    `json:"GRPCPort"`

	DefaultFunction  string   `json:"DefaultFunction"`
	EnabledFunctions []string `json:"EnabledFunctions"`

	EnableZipkinTracing bool   `json:"EnableZipkinTracing"`
	ZipkinURL           string `json:"ZipkinURL"`

	InvocationTimeoutSeconds int `json:"InvocationTimeoutSeconds"`

	SweepIterations       int    `json:"SweepIterations"`
	SweepWarmupIterations int    `json:"SweepWarmupIterations"`
	SweepConcurrency      int    `json:"SweepConcurrency"`
	OutputPathPrefix      string `json:"OutputPathPrefix"`
}

func ReadConfigurationFile(path string) RuntimeConfiguration {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	config, err := ParseConfiguration(byteValue)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

// ParseConfiguration decodes a JSON configuration and applies environment
// overrides.
func ParseConfiguration(raw []byte) (RuntimeConfiguration, error) {
	var config RuntimeConfiguration
	if err := json.Unmarshal(raw, &config); err != nil {
		return RuntimeConfiguration{}, err
	}

	readEnvironmentalVariables(&config)
	return config, nil
}

func readEnvironmentalVariables(config *RuntimeConfiguration) {
	if port, ok := lookupInt("KERNEL_HTTP_PORT"); ok {
		config.HTTPPort = port
	}
	if port, ok := lookupInt("KERNEL_GRPC_PORT"); ok {
		config.GRPCPort = port
	}
	if _, ok := os.LookupEnv("KERNEL_DEFAULT_FUNCTION"); ok {
		config.DefaultFunction = os.Getenv("KERNEL_DEFAULT_FUNCTION")
	}
}

func lookupInt(key string) (int, bool) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("Ignoring %s=%q: %v", key, raw, err)
		return 0, false
	}
	return value, true
}
