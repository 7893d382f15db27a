// Package healthv1connect binds the HealthService messages to Connect
// handlers and clients.
package healthv1connect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	healthv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/health/v1"
)

const HealthServiceName = "docserver.health.v1.HealthService"

const HealthServiceHealthCheckProcedure = "/docserver.health.v1.HealthService/HealthCheck"

type HealthServiceClient interface {
	HealthCheck(context.Context, *connect.Request[healthv1.HealthCheckRequest]) (*connect.Response[healthv1.HealthCheckResponse], error)
}

func NewHealthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) HealthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &healthServiceClient{
		healthCheck: connect.NewClient[healthv1.HealthCheckRequest, healthv1.HealthCheckResponse](
			httpClient,
			baseURL+HealthServiceHealthCheckProcedure,
			opts...,
		),
	}
}

type healthServiceClient struct {
	healthCheck *connect.Client[healthv1.HealthCheckRequest, healthv1.HealthCheckResponse]
}

func (c *healthServiceClient) HealthCheck(ctx context.Context, req *connect.Request[healthv1.HealthCheckRequest]) (*connect.Response[healthv1.HealthCheckResponse], error) {
	return c.healthCheck.CallUnary(ctx, req)
}

type HealthServiceHandler interface {
	HealthCheck(context.Context, *connect.Request[healthv1.HealthCheckRequest]) (*connect.Response[healthv1.HealthCheckResponse], error)
}

func NewHealthServiceHandler(svc HealthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	healthCheckHandler := connect.NewUnaryHandler(
		HealthServiceHealthCheckProcedure,
		svc.HealthCheck,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...,
	)
	return "/docserver.health.v1.HealthService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case HealthServiceHealthCheckProcedure:
			healthCheckHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
