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

package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/metric"
)

var ErrInvalidSweep = errors.New("invalid sweep plan")

// SweepPlan describes a local calibration run: every function is invoked
// WarmupIterations times and then Iterations times, with at most Concurrency
// invocations in flight.
type SweepPlan struct {
	Functions        []string
	Iterations       int
	WarmupIterations int
	Concurrency      int
	// Timeout bounds how long the driver waits for one invocation. Zero
	// means no bound.
	Timeout time.Duration
}

func (s SweepPlan) validate(registry *kernel.Registry) error {
	if len(s.Functions) == 0 {
		return fmt.Errorf("%w: no functions", ErrInvalidSweep)
	}
	if s.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidSweep)
	}
	if s.WarmupIterations < 0 {
		return fmt.Errorf("%w: warmup iterations must not be negative", ErrInvalidSweep)
	}
	for _, name := range s.Functions {
		if _, ok := registry.Get(name); !ok {
			return fmt.Errorf("%w: %s", kernel.ErrUnknownFunction, name)
		}
	}
	return nil
}

// RunSweep executes the sweep and reports one record per invocation to the
// exporter. Kernel failures become failed records; only cancellation of ctx
// or an invalid plan aborts the sweep.
func RunSweep(ctx context.Context, registry *kernel.Registry, plan SweepPlan, exporter *metric.Exporter) error {
	if err := plan.validate(registry); err != nil {
		return err
	}

	concurrency := plan.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	for _, name := range plan.Functions {
		phases := []struct {
			phase common.ExperimentPhase
			count int
		}{
			{common.WarmupPhase, plan.WarmupIterations},
			{common.ExecutionPhase, plan.Iterations},
		}

		for _, p := range phases {
			if p.count == 0 {
				continue
			}
			log.Debugf("Sweeping %s: phase %d, %d invocations", name, p.phase, p.count)

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(concurrency)
			for i := 0; i < p.count; i++ {
				name, phase := name, p.phase
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					exporter.ReportExecution(invokeOnce(gctx, registry, name, phase, plan.Timeout))
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
		}
	}

	return nil
}

func invokeOnce(ctx context.Context, registry *kernel.Registry, name string, phase common.ExperimentPhase, timeout time.Duration) metric.KernelRecord {
	record := metric.KernelRecord{
		InvocationID: uuid.New().String(),
		Timestamp:    time.Now().UnixMicro(),
		Phase:        int(phase),
		Function:     name,
		Arch:         common.Arch(),
	}

	start := time.Now()
	result, err := invokeWithTimeout(ctx, registry, name, timeout)
	record.ResponseTime = time.Since(start).Microseconds()

	if err != nil {
		log.WithField("function", name).Warnf("Invocation %s failed: %v", record.InvocationID, err)
		record.Failed = true
		record.Error = err.Error()
		return record
	}

	record.FillFromResult(result)
	log.WithFields(log.Fields{
		"function": record.Function,
		"latency":  record.LatencySeconds,
	}).Trace("Invocation completed")

	return record
}

func invokeWithTimeout(ctx context.Context, registry *kernel.Registry, name string, timeout time.Duration) (kernel.Result, error) {
	if timeout <= 0 {
		return registry.Invoke(ctx, name, nil)
	}

	type outcome struct {
		result kernel.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := registry.Invoke(ctx, name, nil)
		done <- outcome{result, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-time.After(timeout):
		return nil, fmt.Errorf("invocation of %s timed out after %s", name, timeout)
	}
}
