package grpc

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/metrics"
)

// UnaryMetricsInterceptor counts unary calls by method and status code
func UnaryMetricsInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		record(m, info.FullMethod, start, err)
		return resp, err
	}
}

// StreamMetricsInterceptor counts streams by method and final status code
func StreamMetricsInterceptor(m *metrics.Metrics) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		record(m, info.FullMethod, start, err)
		return err
	}
}

func record(m *metrics.Metrics, method string, start time.Time, err error) {
	code := status.Code(err)
	m.GRPCRequest(method, code.String())
	log.Debug().
		Str("method", method).
		Str("code", code.String()).
		Dur("elapsed", time.Since(start)).
		Msg("grpc request")
}
