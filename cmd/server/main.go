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
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vhive-serverless/kernels/pkg/config"
	"github.com/vhive-serverless/kernels/pkg/function"
	"github.com/vhive-serverless/kernels/pkg/metric"
	"github.com/vhive-serverless/kernels/pkg/workload/serverledge"
	"github.com/vhive-serverless/kernels/pkg/workload/standard"
)

var (
	configPath = flag.String("config", "cmd/config.json", "Path to runtime configuration file")
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
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
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if cfg.EnableZipkinTracing {
		// The vHive tracing module reads this switch from the environment.
		if err := os.Setenv("ENABLE_TRACING", "true"); err != nil {
			log.Warn(err)
		}
	}

	registry, err := function.NewRegistry(cfg.EnabledFunctions...)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("Serving the following %d functions:", len(registry.Names()))
	for _, name := range registry.Names() {
		log.Infof("\t%s", name)
	}

	promRegistry := prometheus.NewRegistry()
	collectors := metric.NewCollectors(promRegistry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.HTTPPort > 0 {
		runtime := serverledge.NewRuntime(registry,
			serverledge.WithDefaultFunction(function.CanonicalName(cfg.DefaultFunction)),
			serverledge.WithTimeout(cfg.InvocationTimeout()),
			serverledge.WithMetrics(collectors, promRegistry),
		)
		g.Go(func() error {
			return runtime.ListenAndServe(gctx, cfg.HTTPAddress())
		})
	}

	if cfg.GRPCPort > 0 {
		g.Go(func() error {
			return standard.StartGRPCServer(gctx, cfg.GRPCAddress(), registry, collectors, cfg.ZipkinURL)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Info("Shut down.")
}
