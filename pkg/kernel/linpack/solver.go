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

// ZeroPivotSubstitute replaces an exactly zero pivot during elimination. It
// keeps the division finite but does not pivot rows, so ill-conditioned
// systems lose accuracy without any error being reported.
const ZeroPivotSubstitute = 1.0e-10

// FlopCount is the conventional operation count of a dense LU factorisation
// followed by a triangular solve.
func FlopCount(n int) float64 {
	fn := float64(n)
	return (2.0*fn*fn*fn)/3.0 + 2.0*fn*fn
}

// Solve runs Gaussian elimination without pivoting followed by back
// substitution on the augmented n×(n+1) matrix m, which is overwritten.
func Solve(m [][]float64) []float64 {
	n := len(m)

	for i := 0; i < n; i++ {
		pivotRow := m[i]
		pivot := pivotRow[i]
		if pivot == 0 {
			pivot = ZeroPivotSubstitute
		}

		for j := i + 1; j < n; j++ {
			row := m[j]
			factor := row[i] / pivot
			for k := i; k <= n; k++ {
				row[k] -= factor * pivotRow[k]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		row := m[i]
		var sum float64
		for j := i + 1; j < n; j++ {
			sum += row[j] * x[j]
		}
		x[i] = (row[n] - sum) / row[i]
	}

	return x
}
