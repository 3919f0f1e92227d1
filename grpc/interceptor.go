package grpc

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs every unary call with a request id, its status
// code and its duration.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		requestID := uuid.NewString()

		resp, err := handler(ctx, req)

		attrs := []any{
			"request_id", requestID,
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Warn("gRPC call failed", append(attrs, "error", err)...)
		} else {
			log.Debug("gRPC call", attrs...)
		}
		return resp, err
	}
}
