package observability

import (
	"context"
	"iter"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	ordersports "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

const tracerName = "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
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
	return s
}

func (s *Service) Place(ctx context.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Place")
	defer span.End()

	var customer, table string
	if order != nil {
		customer, table = order.Customer, order.Table
	}
	s.logInfo(ctx, "placing order", slog.String("order.customer", customer), slog.String("order.table", table))
	result, err := s.inner.Place(ctx, order)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("order.customer", customer))
	}
	span.SetAttributes(attribute.Int64("order.id", result.ID), attribute.String("order.number", result.Number))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.ID),
		slog.String("order.number", result.Number),
		slog.String("order.total", money.Format(result.Total)))
	return result, nil
}

func (s *Service) Transition(ctx context.Context, id int64, to ordersdomain.Status) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Transition", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status.to", string(to)),
	))
	defer span.End()

	s.logInfo(ctx, "transitioning order", slog.Int64("order.id", id), slog.String("status", string(to)))
	result, err := s.inner.Transition(ctx, id, to)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to transition order", slog.Int64("order.id", id), slog.String("status", string(to)))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order transitioned", slog.Int64("order.id", id), slog.String("order.number", result.Number), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) Find(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Find", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.Find(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) FindByNumber(ctx context.Context, number string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.FindByNumber", trace.WithAttributes(attribute.String("order.number", number)))
	defer span.End()

	result, err := s.inner.FindByNumber(ctx, number)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to look up order", slog.String("order.number", number))
	}
	return result, nil
}

func (s *Service) List(ctx context.Context, filter ordersdomain.Filter) (iter.Seq[*ordersdomain.Order], error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.List", trace.WithAttributes(
		attribute.Int("filter.statuses", len(filter.Statuses)),
		attribute.String("filter.term", filter.Term),
	))
	defer span.End()

	result, err := s.inner.List(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	return result, nil
}

func (s *Service) Summary(ctx context.Context) (ordersdomain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.Summary")
	defer span.End()

	s.logInfo(ctx, "calculating order summary")
	result, err := s.inner.Summary(ctx)
	if err != nil {
		return ordersdomain.Summary{}, s.handleError(ctx, span, err, "failed to calculate order summary")
	}
	span.SetAttributes(attribute.Int("summary.orders", result.TotalOrders), attribute.Int("summary.open", result.Open))
	return result, nil
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
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced metric.Int64Counter
	itemsOrdered metric.Int64Counter
	transitions  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	itemsOrdered, _ := m.Int64Counter("orders.service.items_ordered", metric.WithDescription("Number of dishes ordered"))
	transitions, _ := m.Int64Counter("orders.service.transitions", metric.WithDescription("Number of order status transitions"))
	return serviceMetrics{ordersPlaced: ordersPlaced, itemsOrdered: itemsOrdered, transitions: transitions}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *ordersdomain.Order) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.type", string(order.Type))))
	}
	if m.itemsOrdered != nil {
		m.itemsOrdered.Add(ctx, int64(order.ItemCount()))
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.Status) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
