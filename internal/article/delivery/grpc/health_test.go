package grpc

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func startServer(t *testing.T, monitor *HealthMonitor, interceptors *Interceptors) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	server := NewServer(interceptors, monitor)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestHealth_FollowsDatabasePing(t *testing.T) {
	pinger := &fakePinger{}
	monitor := NewHealthMonitor(pinger, time.Minute)
	client := startServer(t, monitor, NewInterceptors(prometheus.NewRegistry()))
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, monitor.Probe(ctx))
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	pinger.setErr(errors.New("connection refused"))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, monitor.Probe(ctx))
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestHealth_UnknownServiceAndMetrics(t *testing.T) {
	interceptors := NewInterceptors(prometheus.NewRegistry())
	client := startServer(t, NewHealthMonitor(&fakePinger{}, time.Minute), interceptors)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "unknown.Service"})
	require.Error(t, err)
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)

	const method = "/grpc.health.v1.Health/Check"
	assert.Equal(t, float64(1), promtestutil.ToFloat64(interceptors.requestsTotal.WithLabelValues(method, "NotFound")))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(interceptors.requestsTotal.WithLabelValues(method, "OK")))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(interceptors.errorsTotal.WithLabelValues(method, "NotFound")))
}

func TestHealthMonitor_RunStopsOnCancel(t *testing.T) {
	pinger := &fakePinger{}
	monitor := NewHealthMonitor(pinger, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
