//nolint:revive // exported
package mwauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/stoken"
)

type ContextKey int

const (
	UserIDKeyCtx ContextKey = iota
)

const LocalDummyIDStr = "00000000000000000000000000"

// LocalDummyID stands in for the caller when authentication is disabled.
var LocalDummyID = idwrap.NewTextMust(LocalDummyIDStr)

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// authInterceptor authenticates unary and server-streaming calls. With an
// empty secret every call runs as LocalDummyID.
type authInterceptor struct {
	secret []byte
}

var _ connect.Interceptor = (*authInterceptor)(nil)

func NewAuthInterceptor(secret []byte) connect.Interceptor {
	return &authInterceptor{secret: secret}
}

func (i *authInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return connect.UnaryFunc(func(
		ctx context.Context,
		req connect.AnyRequest,
	) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		authed, err := i.authenticate(ctx, req.Header().Get(stoken.TokenHeaderKey))
		if err != nil {
			return nil, err
		}
		return next(authed, req)
	})
}

func (*authInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *authInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return connect.StreamingHandlerFunc(func(
		ctx context.Context,
		conn connect.StreamingHandlerConn,
	) error {
		authed, err := i.authenticate(ctx, conn.RequestHeader().Get(stoken.TokenHeaderKey))
		if err != nil {
			return err
		}
		return next(authed, conn)
	})
}

func (i *authInterceptor) authenticate(ctx context.Context, headerValue string) (context.Context, error) {
	if len(i.secret) == 0 {
		return CreateAuthedContext(ctx, LocalDummyID), nil
	}
	if headerValue == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, ErrNoToken)
	}

	tokenRaw, ok := strings.CutPrefix(headerValue, "Bearer ")
	if !ok || tokenRaw == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, ErrInvalidToken)
	}

	claims, err := stoken.ValidateJWT(tokenRaw, stoken.AccessToken, i.secret)
	if err != nil {
		slog.ErrorContext(ctx, "Error validating JWT token", "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	id, err := idwrap.NewText(claims.Subject)
	if err != nil {
		slog.ErrorContext(ctx, "Error creating ID from claims.Subject", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	return CreateAuthedContext(ctx, id), nil
}

func CreateAuthedContext(ctx context.Context, userID idwrap.IDWrap) context.Context {
	return context.WithValue(ctx, UserIDKeyCtx, userID)
}

func GetContextUserID(ctx context.Context) (idwrap.IDWrap, error) {
	ulidID, ok := ctx.Value(UserIDKeyCtx).(idwrap.IDWrap)
	if !ok {
		return ulidID, errors.New("user id not found in context")
	}
	return ulidID, nil
}

// Actor returns the authenticated user to record as the author of a write,
// or nil for anonymous and local callers.
func Actor(ctx context.Context) *idwrap.IDWrap {
	id, err := GetContextUserID(ctx)
	if err != nil || id == LocalDummyID {
		return nil
	}
	return &id
}

// crashInterceptor turns handler panics into CodeInternal errors.
type crashInterceptor struct {
	logger *slog.Logger
}

var _ connect.Interceptor = (*crashInterceptor)(nil)

func NewCrashInterceptor(logger *slog.Logger) connect.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &crashInterceptor{logger: logger}
}

func (c *crashInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (resp connect.AnyResponse, err error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		defer func() {
			if r := recover(); r != nil {
				err = c.recovered(ctx, req.Spec().Procedure, r)
				resp = nil
			}
		}()
		return next(ctx, req)
	}
}

func (*crashInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (c *crashInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = c.recovered(ctx, conn.Spec().Procedure, r)
			}
		}()
		return next(ctx, conn)
	}
}

func (c *crashInterceptor) recovered(ctx context.Context, procedure string, r any) error {
	c.logger.ErrorContext(ctx, "Recovered from panic in handler",
		"procedure", procedure,
		"panic", r,
		"stack", string(debug.Stack()))
	return connect.NewError(connect.CodeInternal, fmt.Errorf("panic: %v", r))
}
