//nolint:revive // exported
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

type Service struct {
	Handler http.Handler
	Path    string
}

// Server mode constants
const (
	ServerModeUDS = "uds"
	ServerModeTCP = "tcp"
)

const shutdownTimeout = 10 * time.Second

// ListenOptions selects where the server listens.
type ListenOptions struct {
	Mode       string
	Port       int
	SocketPath string
	Logger     *slog.Logger
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Accept",
			"Accept-Encoding",
			"Accept-Post",
			"Connect-Accept-Encoding",
			"Connect-Content-Encoding",
			"Content-Encoding",
			"Grpc-Accept-Encoding",
			"Grpc-Encoding",
			"Grpc-Message",
			"Grpc-Status",
			"Grpc-Status-Details-Bin",
			"X-Request-Id",
		},
		MaxAge: int(time.Hour / time.Second),
	})
}

// NewHandler mounts every service on one mux behind CORS.
func NewHandler(services []Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	for _, service := range services {
		logger.Info("Registering service", "path", service.Path)
		mux.Handle(service.Path, service.Handler)
	}
	return newCORS().Handler(mux)
}

func newH2CServer(handler http.Handler) *http.Server {
	return &http.Server{
		// NOTE: ConnectRPC requires an address even for Unix sockets.
		Addr:              "docserver:0",
		ReadHeaderTimeout: 10 * time.Second,
		// INFO: Use h2c so we can serve HTTP/2 without TLS.
		Handler: h2c.NewHandler(handler, &http2.Server{
			IdleTimeout:          0,
			MaxConcurrentStreams: 100000,
			MaxHandlers:          0,
		}),
	}
}

// ListenServices serves the services until ctx is cancelled, then shuts the
// server down gracefully.
func ListenServices(ctx context.Context, services []Service, opts ListenOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := newH2CServer(NewHandler(services, logger))

	var (
		ln  net.Listener
		err error
	)
	switch opts.Mode {
	case ServerModeTCP, "":
		ln, err = listenTCP(ctx, opts.Port)
		if err == nil {
			logger.Info("Server listening on TCP", "addr", ln.Addr().String())
		}
	case ServerModeUDS:
		ln, err = listenIPC(ctx, srv, opts.SocketPath, logger)
	default:
		return fmt.Errorf("unknown server mode %q", opts.Mode)
	}
	if err != nil {
		return err
	}

	return serve(ctx, srv, ln, logger)
}

func listenTCP(ctx context.Context, port int) (net.Listener, error) {
	lc := net.ListenConfig{}
	return lc.Listen(ctx, "tcp", fmt.Sprintf(":%d", port))
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	// Request contexts end when shutdown starts so open sync streams return.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	srv.BaseContext = func(net.Listener) context.Context { return baseCtx }
	srv.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
