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

package metric

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/vhive-serverless/kernels/pkg/common"
)

type Summary struct {
	Function string
	Count    int
	Failed   int

	MeanLatency   float64
	StdDevLatency float64
	P50Latency    float64
	P95Latency    float64
	P99Latency    float64
	MaxLatency    float64

	MeanMFLOPS float64
	// ValidRatio is only meaningful for linpack_pure.
	ValidRatio float64
}

// Summarize aggregates successful records of the execution phase per
// function. The result is ordered by function name.
func Summarize(records []KernelRecord) []Summary {
	byFunction := make(map[string][]KernelRecord)
	for _, record := range records {
		if record.Phase == int(common.WarmupPhase) {
			continue
		}
		byFunction[record.Function] = append(byFunction[record.Function], record)
	}

	names := make([]string, 0, len(byFunction))
	for name := range byFunction {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		summaries = append(summaries, summarizeFunction(name, byFunction[name]))
	}
	return summaries
}

func summarizeFunction(name string, records []KernelRecord) Summary {
	summary := Summary{Function: name}

	var latencies, rates []float64
	valid := 0
	for _, record := range records {
		if record.Failed {
			summary.Failed++
			continue
		}
		latencies = append(latencies, record.LatencySeconds)
		rates = append(rates, record.MFLOPS)
		if record.Valid {
			valid++
		}
	}

	summary.Count = len(latencies)
	if summary.Count == 0 {
		return summary
	}

	sort.Float64s(latencies)
	summary.MeanLatency = stat.Mean(latencies, nil)
	if summary.Count > 1 {
		summary.StdDevLatency = stat.StdDev(latencies, nil)
	}
	summary.P50Latency = stat.Quantile(0.50, stat.Empirical, latencies, nil)
	summary.P95Latency = stat.Quantile(0.95, stat.Empirical, latencies, nil)
	summary.P99Latency = stat.Quantile(0.99, stat.Empirical, latencies, nil)
	summary.MaxLatency = floats.Max(latencies)

	summary.MeanMFLOPS = stat.Mean(rates, nil)
	summary.ValidRatio = float64(valid) / float64(summary.Count)

	return summary
}
