package mwlog

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/logger/mocklogger"
)

func TestLogInterceptorAssignsRequestID(t *testing.T) {
	t.Parallel()

	handler := mocklogger.NewMockHandler()
	var seen string
	next := NewLogInterceptor(slog.New(handler)).WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = RequestID(ctx)
		return connect.NewResponse(&struct{}{}), nil
	})

	resp, err := next(context.Background(), connect.NewRequest(&struct{}{}))
	require.NoError(t, err)

	_, parseErr := uuid.Parse(seen)
	require.NoError(t, parseErr)
	assert.Equal(t, seen, resp.Header().Get(RequestIDHeader))
	assert.Equal(t, []string{"RPC completed"}, handler.Messages())
}

func TestLogInterceptorKeepsClientRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	next := NewLogInterceptor(mocklogger.NewMockLogger()).WrapUnary(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = RequestID(ctx)
		return connect.NewResponse(&struct{}{}), nil
	})

	req := connect.NewRequest(&struct{}{})
	req.Header().Set(RequestIDHeader, "abc-123")
	_, err := next(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", seen)
}

func TestLogInterceptorLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		message string
		level   slog.Level
	}{
		{
			name:    "client error",
			err:     connect.NewError(connect.CodeNotFound, errors.New("missing")),
			message: "RPC rejected",
			level:   slog.LevelInfo,
		},
		{
			name:    "server error",
			err:     connect.NewError(connect.CodeInternal, errors.New("boom")),
			message: "RPC failed",
			level:   slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mocklogger.NewMockHandler()
			next := NewLogInterceptor(slog.New(handler)).WrapUnary(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, tt.err
			})

			_, err := next(context.Background(), connect.NewRequest(&struct{}{}))
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, []string{tt.message}, handler.Messages())
			assert.Equal(t, []slog.Level{tt.level}, handler.Levels())
		})
	}
}
