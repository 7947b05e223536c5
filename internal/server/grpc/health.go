package grpcserver

import (
	"context"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	flakev1 "github.com/rzbill/flake/api/flake/v1"
	logpkg "github.com/rzbill/flake/pkg/log"
)

// refreshHealth publishes the runtime health for the overall server and for
// the IdService.
func (s *Server) refreshHealth(ctx context.Context) {
	st := healthpb.HealthCheckResponse_SERVING
	if err := s.rt.CheckHealth(ctx); err != nil {
		s.logger.Warn("runtime unhealthy", logpkg.Err(err))
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(flakev1.IDServiceName, st)
}
