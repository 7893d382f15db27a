package rhealth

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthv1 "github.com/the-dev-tools/dev-tools/packages/docserver/pkg/spec/api/health/v1"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/testutil"
)

func TestHealthServiceRPC_HealthCheck(t *testing.T) {
	t.Parallel()

	base := testutil.CreateBaseDB(context.Background(), t)
	svc := New(base.DB)

	resp, err := svc.HealthCheck(context.Background(), connect.NewRequest(&healthv1.HealthCheckRequest{}))
	require.NoError(t, err)
	assert.Equal(t, healthv1.StatusServing, resp.Msg.Status)
}

func TestHealthServiceRPC_DatabaseDown(t *testing.T) {
	t.Parallel()

	base := testutil.CreateBaseDB(context.Background(), t)
	base.Close()
	svc := New(base.DB)

	_, err := svc.HealthCheck(context.Background(), connect.NewRequest(&healthv1.HealthCheckRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestCreateService(t *testing.T) {
	t.Parallel()

	service, err := CreateService(New(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "/docserver.health.v1.HealthService/", service.Path)
	assert.NotNil(t, service.Handler)
}
