//nolint:revive // exported
package rhealth

import (
	"context"
	"database/sql"
	"fmt"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/api"
	healthv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/health/v1"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/health/v1/healthv1connect"
)

type HealthServiceRPC struct {
	db *sql.DB
}

// New creates the health service. With a nil db the check always passes.
func New(db *sql.DB) *HealthServiceRPC {
	return &HealthServiceRPC{db: db}
}

func CreateService(srv *HealthServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	path, handler := healthv1connect.NewHealthServiceHandler(srv, options...)
	return &api.Service{Path: path, Handler: handler}, nil
}

func (c *HealthServiceRPC) HealthCheck(ctx context.Context, _ *connect.Request[healthv1.HealthCheckRequest]) (*connect.Response[healthv1.HealthCheckResponse], error) {
	if c.db != nil {
		if err := c.db.PingContext(ctx); err != nil {
			return nil, connect.NewError(connect.CodeUnavailable, fmt.Errorf("database: %w", err))
		}
	}
	return connect.NewResponse(&healthv1.HealthCheckResponse{Status: healthv1.StatusServing}), nil
}
