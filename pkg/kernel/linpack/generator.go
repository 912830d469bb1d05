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

package linpack

import "math/rand"

// Source supplies uniformly distributed values in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// globalSource draws from the process-wide math/rand source, which is safe
// for concurrent use and seeded randomly at start-up.
type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// SourceFactory returns the source a single invocation draws from.
type SourceFactory func() Source

func defaultSourceFactory() Source {
	return globalSource{}
}

// Generate builds an n×n matrix with entries uniform in [-0.5, 0.5) and the
// vector of its row sums, so that the solution of A·x = B is all ones.
func Generate(n int, src Source) ([][]float64, []float64) {
	a := make([][]float64, n)
	b := make([]float64, n)

	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := range row {
			row[j] = src.Float64() - 0.5
		}
		a[i] = row

		var sum float64
		for _, v := range row {
			sum += v
		}
		b[i] = sum
	}

	return a, b
}

// NewAugmented copies A and B into a fresh n×(n+1) matrix [A | B].
func NewAugmented(a [][]float64, b []float64) [][]float64 {
	n := len(a)
	m := make([][]float64, n)

	for i := 0; i < n; i++ {
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		m[i] = row
	}

	return m
}
