// Package healthv1 holds the JSON messages of the
// docserver.health.v1.HealthService API.
package healthv1

const StatusServing = "SERVING"

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
