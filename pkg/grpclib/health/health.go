package health

import (
	"context"
	"time"

	"github.com/muhammadchandra19/chart-data/pkg/logger"
	"google.golang.org/grpc"

	healthgrpc "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CheckFunc reports whether the dependencies of a service are reachable.
type CheckFunc func(ctx context.Context) error

// Server wraps grpc health server
type Server struct {
	server *healthgrpc.Server
	logger logger.Interface
}

// NewServer creates health server using default grpc health server.
// Services start as NOT_SERVING until InitService or a passing watch marks them.
func NewServer(logger logger.Interface) *Server {
	return &Server{
		server: healthgrpc.NewServer(),
		logger: logger,
	}
}

// InitService marks serviceName as SERVING.
func (h *Server) InitService(serviceName string) {
	h.server.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
}

// Status returns the current status of serviceName.
func (h *Server) Status(ctx context.Context, serviceName string) healthpb.HealthCheckResponse_ServingStatus {
	resp, err := h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: serviceName})
	if err != nil {
		return healthpb.HealthCheckResponse_SERVICE_UNKNOWN
	}
	return resp.GetStatus()
}

// Watch runs check every interval until ctx is done and flips serviceName between SERVING
// and NOT_SERVING. Transitions are logged.
func (h *Server) Watch(ctx context.Context, serviceName string, interval time.Duration, check CheckFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.probe(ctx, serviceName, check)
		}
	}
}

func (h *Server) probe(ctx context.Context, serviceName string, check CheckFunc) {
	current := h.Status(ctx, serviceName)
	if current == healthpb.HealthCheckResponse_SERVICE_UNKNOWN {
		// not initialized yet
		return
	}

	next := healthpb.HealthCheckResponse_SERVING
	err := check(ctx)
	if err != nil {
		next = healthpb.HealthCheckResponse_NOT_SERVING
	}
	if next == current {
		return
	}

	h.server.SetServingStatus(serviceName, next)
	if err != nil {
		h.logger.ErrorContext(ctx, err, logger.NewField("service", serviceName), logger.NewField("status", next.String()))
		return
	}
	h.logger.InfoContext(ctx, "service healthy again", logger.NewField("service", serviceName))
}

// Shutdown sets all serving status to NOT_SERVING.
func (h *Server) Shutdown() {
	h.server.Shutdown()
}

// Resume sets all serving status to SERVING.
func (h *Server) Resume() {
	h.server.Resume()
}

// Register registers health server.
func (h *Server) Register(grpc *grpc.Server) {
	healthpb.RegisterHealthServer(grpc, h.server)
}
