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

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vhive-serverless/kernels/pkg/config"
	"github.com/vhive-serverless/kernels/pkg/driver"
	"github.com/vhive-serverless/kernels/pkg/function"
	"github.com/vhive-serverless/kernels/pkg/metric"
)

var (
	configPath = flag.String("config", "cmd/config.json", "Path to runtime configuration file")
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
	iterations = flag.Int("iterations", -1, "Overwrite the number of measured invocations per function")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cfg := config.ReadConfigurationFile(*configPath)
	if *iterations > 0 {
		cfg.SweepIterations = *iterations
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	registry, err := function.NewRegistry(cfg.EnabledFunctions...)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	plan := driver.SweepPlan{
		Functions:        registry.Names(),
		Iterations:       cfg.SweepIterations,
		WarmupIterations: cfg.SweepWarmupIterations,
		Concurrency:      cfg.SweepConcurrencyOrDefault(),
		Timeout:          cfg.InvocationTimeout(),
	}

	exporter := metric.NewExporter()
	start := time.Now()
	if err := driver.RunSweep(ctx, registry, plan, exporter); err != nil {
		log.Fatal(err)
	}
	log.Infof("Sweep of %d invocations took %s", exporter.GetRecordLen(), time.Since(start))

	for _, s := range metric.Summarize(exporter.Records()) {
		log.WithFields(log.Fields{
			"count":       s.Count,
			"failed":      s.Failed,
			"mean_s":      s.MeanLatency,
			"stddev_s":    s.StdDevLatency,
			"p50_s":       s.P50Latency,
			"p99_s":       s.P99Latency,
			"mean_mflops": s.MeanMFLOPS,
			"valid_ratio": s.ValidRatio,
		}).Infof("Summary for %s", s.Function)
	}

	fileName, err := exporter.FinishAndSave(cfg.OutputPathPrefix)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Records written to %s", fileName)
}
