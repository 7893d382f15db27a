// Package mwlog tags every RPC with a request id and logs its outcome.
package mwlog

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
)

// RequestIDHeader is echoed back on every response. A client supplied value
// is kept.
const RequestIDHeader = "X-Request-Id"

type ctxKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id attached by the interceptor, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type interceptor struct {
	logger *slog.Logger
}

var _ connect.Interceptor = (*interceptor)(nil)

func NewLogInterceptor(logger *slog.Logger) connect.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &interceptor{logger: logger}
}

func requestID(header string) string {
	if header != "" {
		return header
	}
	return uuid.New().String()
}

func (i *interceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		id := requestID(req.Header().Get(RequestIDHeader))
		start := time.Now()

		resp, err := next(WithRequestID(ctx, id), req)

		i.log(ctx, req.Spec().Procedure, id, start, err)
		if resp != nil {
			resp.Header().Set(RequestIDHeader, id)
		}
		return resp, err
	}
}

func (*interceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *interceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		id := requestID(conn.RequestHeader().Get(RequestIDHeader))
		conn.ResponseHeader().Set(RequestIDHeader, id)
		start := time.Now()

		err := next(WithRequestID(ctx, id), conn)

		i.log(ctx, conn.Spec().Procedure, id, start, err)
		return err
	}
}

func (i *interceptor) log(ctx context.Context, procedure, id string, start time.Time, err error) {
	attrs := []any{
		"procedure", procedure,
		"request_id", id,
		"duration", time.Since(start),
	}
	if err == nil {
		i.logger.DebugContext(ctx, "RPC completed", attrs...)
		return
	}

	code := connect.CodeOf(err)
	attrs = append(attrs, "code", code.String(), "error", err)
	switch code {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss:
		i.logger.ErrorContext(ctx, "RPC failed", attrs...)
	default:
		i.logger.InfoContext(ctx, "RPC rejected", attrs...)
	}
}
