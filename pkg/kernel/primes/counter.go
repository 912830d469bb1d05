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

package primes

import "math"

// FirstCandidate is the first number tested. 2 is never examined, so the
// reported count is one less than the number of primes up to the limit.
const FirstCandidate = 3

// Count tests every candidate in [FirstCandidate, limit] by trial division
// and returns the number of primes found and the number of candidates tested.
func Count(limit int) (primes int, iterations int) {
	for c := FirstCandidate; c <= limit; c++ {
		iterations++
		if isPrime(c) {
			primes++
		}
	}
	return primes, iterations
}

func isPrime(c int) bool {
	t := int(math.Sqrt(float64(c)))
	for l := 2; l <= t; l++ {
		if c%l == 0 {
			return false
		}
	}
	return true
}
