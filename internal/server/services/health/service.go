package health

import (
	"context"
	"sync/atomic"

	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/minio-ops/minio-operator/pkg/status"
)

// Checker serves the gRPC health protocol, reflecting the aggregate status
// of the latest reconciliation run: SERVING while Active or Maintenance,
// NOT_SERVING while Waiting or Blocked.
type Checker struct {
	grpc_health_v1.UnimplementedHealthServer

	serving atomic.Bool
}

func NewChecker() *Checker {
	c := &Checker{}
	c.serving.Store(true)
	return c
}

// SetAggregate records the outcome of a run.
func (s *Checker) SetAggregate(agg status.Status) {
	s.serving.Store(agg.Kind == status.Active || agg.Kind == status.Maintenance)
}

func (s *Checker) current() grpc_health_v1.HealthCheckResponse_ServingStatus {
	if s.serving.Load() {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_NOT_SERVING
}

func (s *Checker) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	return &grpc_health_v1.HealthCheckResponse{
		Status: s.current(),
	}, nil
}

func (s *Checker) Watch(req *grpc_health_v1.HealthCheckRequest, server grpc_health_v1.Health_WatchServer) error {
	return server.Send(&grpc_health_v1.HealthCheckResponse{
		Status: s.current(),
	})
}
