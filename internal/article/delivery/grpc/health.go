package grpc

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/spaceflight-news/pkg/logger"
)

// ServiceName is the health service name reported alongside the overall "" entry
const ServiceName = "spaceflight.news.v1.NewsService"

// DefaultCheckInterval is how often the database is probed
const DefaultCheckInterval = 10 * time.Second

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthMonitor drives grpc.health.v1 status from database reachability
type HealthMonitor struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
}

// NewHealthMonitor creates a monitor; statuses start as NOT_SERVING until the first probe
func NewHealthMonitor(pinger Pinger, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}

	server := health.NewServer()
	server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	server.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthMonitor{
		server:   server,
		pinger:   pinger,
		interval: interval,
	}
}

// Probe pings the database once and updates the serving status
func (m *HealthMonitor) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := m.pinger.PingContext(ctx); err != nil {
		logger.Warn(ctx).Err(err).Msg("Database ping failed, reporting NOT_SERVING")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	m.server.SetServingStatus("", status)
	m.server.SetServingStatus(ServiceName, status)
	return status
}

// Run probes until ctx is done, then marks everything NOT_SERVING
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			m.server.Shutdown()
			return
		case <-ticker.C:
			m.Probe(ctx)
		}
	}
}

// NewServer builds a gRPC server exposing the health and reflection services
func NewServer(interceptors *Interceptors, monitor *HealthMonitor) *grpc.Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(interceptors.Unary()...),
	)

	healthpb.RegisterHealthServer(server, monitor.server)
	reflection.Register(server)

	return server
}
