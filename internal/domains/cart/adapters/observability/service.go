package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/domain"
	cartports "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/ports"
	ordersdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

const tracerName = "github.com/firaolassefa/restaurant-management-system/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
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

func (s *Service) Open(ctx context.Context) (*cartdomain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Open")
	defer span.End()

	result, err := s.inner.Open(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open cart")
	}
	span.SetAttributes(attribute.String("cart.id", result.CartID))
	s.metrics.recordOpened(ctx)
	s.logInfo(ctx, "cart opened", slog.String("cart.id", result.CartID))
	return result, nil
}

func (s *Service) Quote(ctx context.Context, cartID string) (*cartdomain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Quote", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	result, err := s.inner.Quote(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to quote cart", slog.String("cart.id", cartID))
	}
	return result, nil
}

func (s *Service) AddItem(ctx context.Context, cartID string, itemID int64) (*cartdomain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.Int64("item.id", itemID),
	))
	defer span.End()

	result, err := s.inner.AddItem(ctx, cartID, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add item to cart", slog.String("cart.id", cartID), slog.Int64("item.id", itemID))
	}
	s.metrics.recordEdit(ctx, "add")
	return result, nil
}

func (s *Service) RemoveItem(ctx context.Context, cartID string, itemID int64) (*cartdomain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.Int64("item.id", itemID),
	))
	defer span.End()

	result, err := s.inner.RemoveItem(ctx, cartID, itemID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove item from cart", slog.String("cart.id", cartID), slog.Int64("item.id", itemID))
	}
	s.metrics.recordEdit(ctx, "remove")
	return result, nil
}

func (s *Service) SetQuantity(ctx context.Context, cartID string, itemID int64, quantity int) (*cartdomain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.SetQuantity", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.Int64("item.id", itemID),
		attribute.Int("item.quantity", quantity),
	))
	defer span.End()

	result, err := s.inner.SetQuantity(ctx, cartID, itemID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set cart quantity", slog.String("cart.id", cartID), slog.Int64("item.id", itemID))
	}
	s.metrics.recordEdit(ctx, "set_quantity")
	return result, nil
}

func (s *Service) Clear(ctx context.Context, cartID string) (*cartdomain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear", trace.WithAttributes(attribute.String("cart.id", cartID)))
	defer span.End()

	result, err := s.inner.Clear(ctx, cartID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("cart.id", cartID))
	}
	s.metrics.recordEdit(ctx, "clear")
	return result, nil
}

func (s *Service) Checkout(ctx context.Context, cartID string, details cartdomain.OrderDetails, idempotencyKey string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Checkout", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.Bool("checkout.idempotent", idempotencyKey != ""),
	))
	defer span.End()

	s.logInfo(ctx, "checking out cart", slog.String("cart.id", cartID), slog.String("order.table", details.TableNumber))
	result, err := s.inner.Checkout(ctx, cartID, details, idempotencyKey)
	if err != nil {
		s.metrics.recordCheckout(ctx, false)
		return nil, s.handleError(ctx, span, err, "failed to check out cart", slog.String("cart.id", cartID))
	}
	span.SetAttributes(attribute.String("order.number", result.Number))
	s.metrics.recordCheckout(ctx, true)
	s.logInfo(ctx, "cart checked out",
		slog.String("cart.id", cartID),
		slog.String("order.number", result.Number),
		slog.String("order.total", money.Format(result.Total)))
	return result, nil
}

func (s *Service) Reorder(ctx context.Context, cartID string, order *ordersdomain.Order) (*cartdomain.Quote, []string, error) {
	var number string
	if order != nil {
		number = order.Number
	}
	ctx, span := s.tracer.Start(ctx, "CartService.Reorder", trace.WithAttributes(
		attribute.String("cart.id", cartID),
		attribute.String("order.number", number),
	))
	defer span.End()

	result, skipped, err := s.inner.Reorder(ctx, cartID, order)
	if err != nil {
		return nil, nil, s.handleError(ctx, span, err, "failed to reorder", slog.String("cart.id", cartID), slog.String("order.number", number))
	}
	span.SetAttributes(attribute.Int("reorder.skipped", len(skipped)))
	s.metrics.recordEdit(ctx, "reorder")
	s.logInfo(ctx, "cart refilled from order",
		slog.String("cart.id", cartID),
		slog.String("order.number", number),
		slog.Int("reorder.skipped", len(skipped)))
	return result, skipped, nil
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
	opened    metric.Int64Counter
	edits     metric.Int64Counter
	checkouts metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	opened, _ := m.Int64Counter("cart.service.opened", metric.WithDescription("Number of carts opened"))
	edits, _ := m.Int64Counter("cart.service.edits", metric.WithDescription("Number of cart line edits"))
	checkouts, _ := m.Int64Counter("cart.service.checkouts", metric.WithDescription("Number of checkout attempts"))
	return serviceMetrics{opened: opened, edits: edits, checkouts: checkouts}
}

func (m serviceMetrics) recordOpened(ctx context.Context) {
	if m.opened != nil {
		m.opened.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordEdit(ctx context.Context, kind string) {
	if m.edits != nil {
		m.edits.Add(ctx, 1, metric.WithAttributes(attribute.String("edit.kind", kind)))
	}
}

func (m serviceMetrics) recordCheckout(ctx context.Context, ok bool) {
	if m.checkouts != nil {
		m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("checkout.succeeded", ok)))
	}
}
