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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vhive-serverless/kernels/pkg/kernel"
)

// Collectors are the Prometheus series exported by the function runtimes.
type Collectors struct {
	// Latency is the kernel-reported latency_seconds, labelled by function.
	// Buckets span 1ms to ~65s.
	Latency *prometheus.HistogramVec
	// Invocations counts completed invocations by function and outcome
	// ("ok", "failed").
	Invocations *prometheus.CounterVec
	// Invalid counts linpack_pure results whose validity probe failed.
	Invalid *prometheus.CounterVec
	// MFLOPS is the rate of the most recent linpack_pure invocation.
	MFLOPS *prometheus.GaugeVec
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)

	return &Collectors{
		Latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kernel_latency_seconds",
				Help:    "Kernel-measured execution latency per function.",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 17),
			},
			[]string{"function"},
		),
		Invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_invocations_total",
				Help: "Kernel invocations by function and outcome.",
			},
			[]string{"function", "outcome"},
		),
		Invalid: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kernel_invalid_results_total",
				Help: "Solver results that failed the validity probe.",
			},
			[]string{"function"},
		),
		MFLOPS: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kernel_mflops",
				Help: "Throughput of the most recent solver invocation.",
			},
			[]string{"function"},
		),
	}
}

// Observe records one invocation. A nil receiver is a no-op.
func (c *Collectors) Observe(name string, result kernel.Result, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.Invocations.WithLabelValues(name, "failed").Inc()
		return
	}

	if tagged := result.Function(); tagged != "" {
		name = tagged
	}
	c.Invocations.WithLabelValues(name, "ok").Inc()
	if latency, ok := result.Float("latency_seconds"); ok {
		c.Latency.WithLabelValues(name).Observe(latency)
	}
	if rate, ok := result.Float("mflops"); ok {
		c.MFLOPS.WithLabelValues(name).Set(rate)
	}
	if valid, ok := result["valid"].(bool); ok && !valid {
		c.Invalid.WithLabelValues(name).Inc()
	}
}
