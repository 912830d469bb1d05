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

package common

const (
	LinpackFunctionName = "linpack_pure"
	PrimesFunctionName  = "primes_pure"

	// Names the load generator uses when posting to /invoke/<name>.
	LinpackAlias = "linpack"
	PrimesAlias  = "primenum"
)

const (
	// MinDurationSeconds is substituted for non-positive measured durations
	// so derived rates are always finite.
	MinDurationSeconds = 1e-6

	OneSecondInMicroseconds = 1_000_000.0
)

const (
	// ArchHeader is attached to every runtime response so that the load
	// generator can attribute latencies to a node architecture.
	ArchHeader         = "Serverledge-Node-Arch"
	ResponseTimeHeader = "Serverledge-Response-Time"
)

type ExperimentPhase int

const (
	WarmupPhase    ExperimentPhase = 1
	ExecutionPhase ExperimentPhase = 2
)
