package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/vegefoods/cart-service/internal/domains/checkout/domain"
	"github.com/vegefoods/cart-service/internal/domains/checkout/ports"
)

const tracerName = "github.com/vegefoods/cart-service/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core checkout service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// SubmitOrder runs the checkout with instrumentation. An empty-cart
// rejection is counted separately from real failures.
func (s *Service) SubmitOrder(ctx context.Context, request domain.OrderRequest) (*domain.Confirmation, error) {
	ctx, span := s.tracer.Start(ctx, "Service.SubmitOrder",
		trace.WithAttributes(attribute.Bool("order.has_promo", request.PromoCode != "")))
	defer span.End()

	confirmation, err := s.inner.SubmitOrder(ctx, request)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			s.metrics.recordRejection(ctx)
			span.SetAttributes(attribute.Bool("order.rejected", true))
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to submit order", slog.String("error", err.Error()))
		return nil, err
	}
	s.metrics.recordOrder(ctx)
	span.SetAttributes(attribute.String("order.id", confirmation.OrderID))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order submitted", slog.String("order.id", confirmation.OrderID))
	return confirmation, nil
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	orders     metric.Int64Counter
	rejections metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	orders, _ := m.Int64Counter("checkout.service.orders", metric.WithDescription("Number of confirmed simulated orders"))
	rejections, _ := m.Int64Counter("checkout.service.rejections", metric.WithDescription("Number of submissions rejected on an empty cart"))
	return serviceMetrics{orders: orders, rejections: rejections}
}

func (m serviceMetrics) recordOrder(ctx context.Context) {
	if m.orders == nil {
		return
	}
	m.orders.Add(ctx, 1)
}

func (m serviceMetrics) recordRejection(ctx context.Context) {
	if m.rejections == nil {
		return
	}
	m.rejections.Add(ctx, 1)
}

var _ ports.Service = (*Service)(nil)
