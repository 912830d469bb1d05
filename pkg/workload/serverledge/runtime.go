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

// Package serverledge serves kernels behind the serverledge container
// runtime protocol: POST /invoke with {"Params": ..., "ReturnOutput": ...}.
package serverledge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/metric"
)

// HandlerFunc is the handler signature of the serverledge Go runtime.
type HandlerFunc func(params map[string]interface{}) (interface{}, error)

// Adapt exposes a kernel as a serverledge handler.
func Adapt(k kernel.Kernel) HandlerFunc {
	return func(params map[string]interface{}) (interface{}, error) {
		return kernel.Guard(context.Background(), k, params)
	}
}

type invocationRequest struct {
	Params       map[string]interface{} `json:"Params"`
	ReturnOutput bool                   `json:"ReturnOutput"`
}

type invocationResponse struct {
	Success bool   `json:"Success"`
	Result  string `json:"Result"`
	Output  string `json:"Output"`
}

type Runtime struct {
	registry        *kernel.Registry
	defaultFunction string
	timeout         time.Duration
	collectors      *metric.Collectors
	gatherer        prometheus.Gatherer
}

type Option func(*Runtime)

// WithDefaultFunction selects the kernel served on the bare /invoke path.
func WithDefaultFunction(name string) Option {
	return func(r *Runtime) {
		r.defaultFunction = name
	}
}

// WithTimeout bounds how long a request waits for its kernel. The kernel
// itself is not interrupted and runs to completion in the background.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runtime) {
		r.timeout = timeout
	}
}

func WithMetrics(collectors *metric.Collectors, gatherer prometheus.Gatherer) Option {
	return func(r *Runtime) {
		r.collectors = collectors
		r.gatherer = gatherer
	}
}

func NewRuntime(registry *kernel.Registry, opts ...Option) *Runtime {
	r := &Runtime{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runtime) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/invoke", r.handleInvoke)
	mux.HandleFunc("/invoke/", r.handleInvoke)
	mux.HandleFunc("/functions", r.handleFunctions)
	if r.gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (r *Runtime) functionFor(req *http.Request) string {
	name := strings.TrimPrefix(strings.TrimPrefix(req.URL.Path, "/invoke"), "/")
	if name == "" {
		return r.defaultFunction
	}
	return name
}

func (r *Runtime) handleFunctions(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(r.registry.Names()); err != nil {
		log.Errorf("Error encoding function list: %v", err)
	}
}

func (r *Runtime) handleInvoke(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	w.Header().Set(common.ArchHeader, common.Arch())

	if req.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := r.functionFor(req)
	if _, ok := r.registry.Get(name); !ok {
		http.Error(w, fmt.Sprintf("Unknown function %q", name), http.StatusNotFound)
		return
	}

	var body invocationRequest
	raw, _ := io.ReadAll(req.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		http.Error(w, "Invalid Request", http.StatusInternalServerError)
		return
	}

	result, err := r.invoke(req.Context(), name, body.Params)
	r.collectors.Observe(name, result, err)

	entry := log.WithFields(log.Fields{
		"function": name,
		"duration": time.Since(start),
	})

	var output bytes.Buffer
	if body.ReturnOutput {
		entry = captureEntry(entry, &output)
	}

	resp := invocationResponse{Success: true, Output: ""}
	if err != nil {
		entry.Warnf("Invocation failed: %v", err)
		resp.Success = false
		resp.Output = appendOutput(output.String(), err.Error())
	} else {
		entry.WithFields(log.Fields(result)).Debug("Invocation completed")
		resBytes, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			resp.Success = false
			resp.Output = appendOutput(output.String(), marshalErr.Error())
		} else {
			resp.Result = string(resBytes)
			resp.Output = output.String()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(common.ResponseTimeHeader, strconv.FormatFloat(common.DurationToMilliseconds(time.Since(start)), 'f', 3, 64))
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Errorf("Error encoding response: %v", err)
	}
}

var errInvocationTimeout = errors.New("invocation timed out")

func (r *Runtime) invoke(ctx context.Context, name string, params map[string]interface{}) (kernel.Result, error) {
	if r.timeout <= 0 {
		return r.registry.Invoke(ctx, name, params)
	}

	type outcome struct {
		result kernel.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := r.registry.Invoke(ctx, name, params)
		done <- outcome{result: result, err: err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-time.After(r.timeout):
		return nil, fmt.Errorf("%w after %s", errInvocationTimeout, r.timeout)
	}
}

// captureEntry moves entry onto a private logger writing to buf, so the
// invocation log line is returned to the caller instead of printed.
func captureEntry(entry *log.Entry, buf *bytes.Buffer) *log.Entry {
	logger := log.New()
	logger.SetOutput(buf)
	logger.SetLevel(log.TraceLevel)
	logger.SetFormatter(&log.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})
	return logger.WithFields(entry.Data)
}

func appendOutput(output, errText string) string {
	if output == "" {
		return errText
	}
	return strings.TrimRight(output, "\n") + "\n" + errText
}

// ListenAndServe blocks serving the runtime on addr until ctx is cancelled.
func (r *Runtime) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: r.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("Serverledge runtime listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
