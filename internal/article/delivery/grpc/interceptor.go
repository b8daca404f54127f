package grpc

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/tair/spaceflight-news/pkg/logger"
)

const serviceLabel = "news-api"

var grpcTracer = otel.Tracer("grpc-news-server")

// Interceptors holds the unary interceptors and the metrics they record
type Interceptors struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestSummary  *prometheus.SummaryVec
	errorsTotal     *prometheus.CounterVec
}

// NewInterceptors registers gRPC metrics on reg
func NewInterceptors(reg prometheus.Registerer) *Interceptors {
	factory := promauto.With(reg)

	return &Interceptors{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "news_api_grpc_requests_total",
				Help: "Total number of gRPC requests",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "news_api_grpc_request_duration_seconds",
				Help:    "Duration of gRPC requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		requestSummary: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "news_api_grpc_request_duration_summary",
				Help: "Summary of gRPC request durations with percentiles",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
				MaxAge: 10 * time.Minute,
			},
			[]string{"method"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "news_api_grpc_errors_total",
				Help: "Total number of gRPC errors",
			},
			[]string{"method", "error_code"},
		),
	}
}

// Unary returns the interceptor chain in execution order
func (i *Interceptors) Unary() []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		i.Tracing,
		i.Metrics,
		i.Logging,
	}
}

// Tracing adds a server span around each call
func (i *Interceptors) Tracing(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	ctx, span := grpcTracer.Start(ctx, info.FullMethod,
		oteltrace.WithSpanKind(oteltrace.SpanKindServer),
		oteltrace.WithAttributes(
			attribute.String("rpc.system", "grpc"),
			attribute.String("rpc.method", info.FullMethod),
			attribute.String("service.name", serviceLabel),
		),
	)
	defer span.End()

	resp, err := handler(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("rpc.grpc.status_code", status.Code(err).String()))
	} else {
		span.SetStatus(codes.Ok, "success")
	}

	return resp, err
}

// Metrics collects Prometheus metrics for each call
func (i *Interceptors) Metrics(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	duration := time.Since(start).Seconds()
	statusCode := status.Code(err).String()
	if err != nil {
		i.errorsTotal.WithLabelValues(info.FullMethod, statusCode).Inc()
	}

	i.requestsTotal.WithLabelValues(info.FullMethod, statusCode).Inc()
	i.requestDuration.WithLabelValues(info.FullMethod).Observe(duration)
	i.requestSummary.WithLabelValues(info.FullMethod).Observe(duration)

	return resp, err
}

// Logging logs each call with structured fields
func (i *Interceptors) Logging(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	traceID := "no-trace"
	if span := oteltrace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		traceID = span.SpanContext().TraceID().String()
	}

	resp, err := handler(ctx, req)
	duration := time.Since(start)

	if err != nil {
		logger.Error(ctx).
			Str("method", info.FullMethod).
			Str("protocol", "grpc").
			Str("service", serviceLabel).
			Int64("duration_ms", duration.Milliseconds()).
			Str("trace_id", traceID).
			Str("grpc_status", status.Code(err).String()).
			Err(err).
			Msg("gRPC request failed")
	} else {
		logger.Debug(ctx).
			Str("method", info.FullMethod).
			Str("protocol", "grpc").
			Str("service", serviceLabel).
			Int64("duration_ms", duration.Milliseconds()).
			Str("trace_id", traceID).
			Msg("gRPC request completed")
	}

	return resp, err
}
