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
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vhive-serverless/kernels/pkg/kernel"
	"github.com/vhive-serverless/kernels/pkg/kernel/linpack"
	"github.com/vhive-serverless/kernels/pkg/kernel/primes"
)

func startBufServer(t *testing.T) *ExecutorClient {
	registry := kernel.NewRegistry().MustRegister(
		linpack.New(linpack.WithSize(12)),
		primes.New(primes.WithLimit(1000)),
		kernel.Func{FuncName: "panics", Fn: func(context.Context, kernel.Params) (kernel.Result, error) {
			panic("bad kernel")
		}},
	)

	lis := bufconn.Listen(1 << 20)
	grpcServer := NewGRPCServer(NewFuncServer(registry, nil))
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewExecutorClient(conn)
}

func TestExecutePrimes(t *testing.T) {
	client := startBufServer(t)

	req, err := NewExecuteRequest("primes_pure", nil)
	require.NoError(t, err)

	reply, err := client.Execute(context.Background(), req)
	require.NoError(t, err)

	fields := reply.GetFields()
	assert.Contains(t, fields["message"].GetStringValue(), "OK - ")
	assert.GreaterOrEqual(t, fields["duration_in_micro_sec"].GetNumberValue(), 0.0)
	assert.Greater(t, fields["memory_usage_in_kb"].GetNumberValue(), 0.0)

	result := fields["result"].GetStructValue().AsMap()
	assert.Equal(t, "primes_pure", result["function"])
	assert.Equal(t, 1000.0, result["max_prime_limit"])
	assert.Equal(t, 167.0, result["primes_found"])
	assert.Equal(t, 998.0, result["iterations"])
	assert.Greater(t, result["latency_seconds"].(float64), 0.0)
}

func TestExecuteLinpack(t *testing.T) {
	client := startBufServer(t)

	req, err := NewExecuteRequest("linpack_pure", map[string]interface{}{"size": 3})
	require.NoError(t, err)

	reply, err := client.Execute(context.Background(), req)
	require.NoError(t, err)

	result := reply.GetFields()["result"].GetStructValue().AsMap()
	assert.Equal(t, "linpack_pure", result["function"])
	assert.Equal(t, 12.0, result["matrix_size"])
	assert.IsType(t, true, result["valid"])
	assert.Greater(t, result["mflops"].(float64), 0.0)
}

func TestExecuteErrors(t *testing.T) {
	client := startBufServer(t)

	_, err := client.Execute(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	req, _ := NewExecuteRequest("matmul", nil)
	_, err = client.Execute(context.Background(), req)
	assert.Equal(t, codes.NotFound, status.Code(err))

	req, _ = NewExecuteRequest("panics", nil)
	_, err = client.Execute(context.Background(), req)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, err.Error(), "kernel panicked")
}
