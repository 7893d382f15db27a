//go:build windows

package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
)

func DefaultServerSocketPath() string {
	return ""
}

func listenIPC(_ context.Context, _ *http.Server, _ string, _ *slog.Logger) (net.Listener, error) {
	return nil, errors.New("uds mode is not supported on windows, use tcp")
}
