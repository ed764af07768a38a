package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

const tracerName = "github.com/vegefoods/cart-service/internal/domains/cart/adapters/observability/service"

// Service decorates the cart store with tracing, logging, and metrics.
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

// New wires a decorator around the core cart service.
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

// Cart loads the current state with instrumentation.
func (s *Service) Cart(ctx context.Context) (domain.Cart, domain.Totals, error) {
	ctx, span := s.startSpan(ctx, "Service.Cart")
	defer span.End()

	cart, totals, err := s.inner.Cart(ctx)
	if err != nil {
		return cart, totals, s.handleError(ctx, span, err, "failed to load cart")
	}
	span.SetAttributes(
		attribute.Int64("cart.items", cart.ItemCount()),
		attribute.Int64("cart.total", totals.Total),
	)
	return cart, totals, nil
}

// AddItem merges a product into the cart with instrumentation.
func (s *Service) AddItem(ctx context.Context, product ports.ProductInput, quantity int64) (*ports.MutationResult, error) {
	ctx, span := s.startSpan(ctx, "Service.AddItem",
		attribute.String("product.id", product.ID),
		attribute.Int64("quantity", quantity),
	)
	defer span.End()

	result, err := s.inner.AddItem(ctx, product, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item", slog.String("product.id", product.ID))
	}
	if result.Changed {
		s.metrics.recordMutation(ctx, "add_item")
		s.logInfo(ctx, "item added",
			slog.String("product.id", product.ID),
			slog.Int64("cart.items", result.Cart.ItemCount()))
	}
	return result, nil
}

// SetQuantity pins an item quantity with instrumentation.
func (s *Service) SetQuantity(ctx context.Context, id string, quantity int64) (*ports.MutationResult, error) {
	ctx, span := s.startSpan(ctx, "Service.SetQuantity",
		attribute.String("product.id", id),
		attribute.Int64("quantity", quantity),
	)
	defer span.End()

	result, err := s.inner.SetQuantity(ctx, id, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set quantity", slog.String("product.id", id))
	}
	if result.Changed {
		s.metrics.recordMutation(ctx, "set_quantity")
	}
	return result, nil
}

// RemoveItem drops an item with instrumentation.
func (s *Service) RemoveItem(ctx context.Context, id string) (*ports.MutationResult, error) {
	ctx, span := s.startSpan(ctx, "Service.RemoveItem", attribute.String("product.id", id))
	defer span.End()

	result, err := s.inner.RemoveItem(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove item", slog.String("product.id", id))
	}
	if result.Changed {
		s.metrics.recordMutation(ctx, "remove_item")
		s.logInfo(ctx, "item removed", slog.String("product.id", id))
	}
	return result, nil
}

// Clear resets the cart with instrumentation.
func (s *Service) Clear(ctx context.Context) (*ports.MutationResult, error) {
	ctx, span := s.startSpan(ctx, "Service.Clear")
	defer span.End()

	result, err := s.inner.Clear(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.metrics.recordMutation(ctx, "clear")
	s.logInfo(ctx, "cart cleared")
	return result, nil
}

// ApplyPromo applies or clears a promo code with instrumentation.
func (s *Service) ApplyPromo(ctx context.Context, code string) (*ports.PromoResult, error) {
	ctx, span := s.startSpan(ctx, "Service.ApplyPromo")
	defer span.End()

	result, err := s.inner.ApplyPromo(ctx, code)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to apply promo")
	}
	span.SetAttributes(attribute.Bool("promo.accepted", result.Success))
	if result.Success {
		s.metrics.recordMutation(ctx, "apply_promo")
	} else {
		s.metrics.recordPromoRejected(ctx)
		s.logInfo(ctx, "promo code rejected")
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	mutations      metric.Int64Counter
	promosRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of persisted cart mutations"))
	promosRejected, _ := m.Int64Counter("cart.service.promos_rejected", metric.WithDescription("Number of rejected promo codes"))
	return serviceMetrics{mutations: mutations, promosRejected: promosRejected}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string) {
	addCounter(ctx, m.mutations, 1, attribute.String("cart.op", op))
}

func (m serviceMetrics) recordPromoRejected(ctx context.Context) {
	addCounter(ctx, m.promosRejected, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
