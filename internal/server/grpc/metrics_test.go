package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMetrics_CountsByMethodAndCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	info := &grpc.UnaryServerInfo{FullMethod: docstore.PushFullMethodName}

	_, _ = m.UnaryInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, nil
	})
	_, _ = m.UnaryInterceptor(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.InvalidArgument, "bad")
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("Push", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("Push", "InvalidArgument")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
