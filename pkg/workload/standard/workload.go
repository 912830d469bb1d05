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

package standard

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tracing "github.com/ease-lab/vhive/utils/tracing/go"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vhive-serverless/kernels/pkg/common"
	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/metric"
)

type funcServer struct {
	registry   *kernel.Registry
	collectors *metric.Collectors
	hostname   string
}

func NewFuncServer(registry *kernel.Registry, collectors *metric.Collectors) ExecutorServer {
	return &funcServer{
		registry:   registry,
		collectors: collectors,
		hostname:   common.Hostname(),
	}
}

func (s *funcServer) Execute(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	start := time.Now()

	fields := req.GetFields()
	name := fields["function"].GetStringValue()
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "missing function name")
	}

	params := kernel.Params{}
	if p := fields["params"].GetStructValue(); p != nil {
		params = p.AsMap()
	}

	result, err := s.registry.Invoke(ctx, name, params)
	s.collectors.Observe(name, result, err)
	if err != nil {
		log.WithField("function", name).Warnf("Execution failed: %v", err)
		if errors.Is(err, kernel.ErrUnknownFunction) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	resultStruct, err := structpb.NewStruct(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding result: %v", err)
	}

	log.WithFields(log.Fields(result)).Trace("Execution completed")

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"message":               structpb.NewStringValue(fmt.Sprintf("OK - %s", s.hostname)),
		"result":                structpb.NewStructValue(resultStruct),
		"duration_in_micro_sec": structpb.NewNumberValue(float64(time.Since(start).Microseconds())),
		"memory_usage_in_kb":    structpb.NewNumberValue(float64(common.MaxResidentKib())),
	}}, nil
}

// NewGRPCServer builds a server with reflection and the Executor service.
// When vHive tracing is enabled the unary tracing interceptor is installed.
func NewGRPCServer(srv ExecutorServer) *grpc.Server {
	var grpcServer *grpc.Server
	if tracing.IsTracingEnabled() {
		grpcServer = tracing.GetGRPCServerWithUnaryInterceptor()
	} else {
		grpcServer = grpc.NewServer()
	}
	reflection.Register(grpcServer) // gRPC Server Reflection is used by gRPC CLI.
	RegisterExecutorServer(grpcServer, srv)
	return grpcServer
}

// StartGRPCServer blocks serving the registry on address until ctx is
// cancelled.
func StartGRPCServer(ctx context.Context, address string, registry *kernel.Registry, collectors *metric.Collectors, zipkinUrl string) error {
	if tracing.IsTracingEnabled() {
		log.Printf("Start tracing on : %s\n", zipkinUrl)
		shutdown, err := tracing.InitBasicTracer(zipkinUrl, "kernels")
		if err != nil {
			log.Warn(err)
		} else {
			defer shutdown()
		}
	}

	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := NewGRPCServer(NewFuncServer(registry, collectors))
	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	log.Infof("Executor listening on %s", lis.Addr())
	return grpcServer.Serve(lis)
}
