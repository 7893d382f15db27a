package mwauth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/logger/mocklogger"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/stoken"
)

func captureUserID(got *idwrap.IDWrap) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		id, err := GetContextUserID(ctx)
		if err != nil {
			return nil, err
		}
		*got = id
		return connect.NewResponse(&struct{}{}), nil
	}
}

func mockUnaryPanicNext(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
	panic("test panic")
}

func TestAuthInterceptorLocal(t *testing.T) {
	t.Parallel()

	var got idwrap.IDWrap
	next := NewAuthInterceptor(nil).WrapUnary(captureUserID(&got))

	_, err := next(context.Background(), connect.NewRequest(&struct{}{}))
	require.NoError(t, err)
	assert.Equal(t, LocalDummyID, got)
}

func TestAuthInterceptorJWT(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	userID := idwrap.NewNow()
	valid, err := stoken.NewJWT(userID.String(), stoken.AccessToken, time.Hour, secret)
	require.NoError(t, err)
	foreign, err := stoken.NewJWT(userID.String(), stoken.AccessToken, time.Hour, []byte("other"))
	require.NoError(t, err)
	notULID, err := stoken.NewJWT("someone", stoken.AccessToken, time.Hour, secret)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
	}{
		{name: "valid", header: "Bearer " + valid},
		{name: "missing", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "no bearer prefix", header: valid, wantCode: connect.CodeUnauthenticated},
		{name: "wrong secret", header: "Bearer " + foreign, wantCode: connect.CodeUnauthenticated},
		{name: "subject not an id", header: "Bearer " + notULID, wantCode: connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got idwrap.IDWrap
			next := NewAuthInterceptor(secret).WrapUnary(captureUserID(&got))

			req := connect.NewRequest(&struct{}{})
			if tt.header != "" {
				req.Header().Set(stoken.TokenHeaderKey, tt.header)
			}
			_, err := next(context.Background(), req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, got)
		})
	}
}

func TestActor(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Actor(context.Background()))
	assert.Nil(t, Actor(CreateAuthedContext(context.Background(), LocalDummyID)))

	id := idwrap.NewNow()
	actor := Actor(CreateAuthedContext(context.Background(), id))
	require.NotNil(t, actor)
	assert.Equal(t, id, *actor)
}

func TestCrashInterceptor(t *testing.T) {
	t.Parallel()

	handler := mocklogger.NewMockHandler()
	next := NewCrashInterceptor(slog.New(handler)).WrapUnary(mockUnaryPanicNext)
	resp, err := next(context.Background(), connect.NewRequest(&struct{}{}))
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	assert.Contains(t, err.Error(), "test panic")
	assert.Equal(t, []string{"Recovered from panic in handler"}, handler.Messages())
}
