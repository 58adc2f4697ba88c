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

	menudomain "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	menuports "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
)

const tracerName = "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/observability/service"

// Service decorates the menu service with tracing, logging, and metrics.
type Service struct {
	inner   menuports.Service
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

// New wraps the core menu service.
func New(inner menuports.Service, opts ...Option) menuports.Service {
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

func (s *Service) AddItem(ctx context.Context, item *menudomain.Item) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.AddItem")
	defer span.End()

	name := ""
	if item != nil {
		name = item.Name
	}
	s.logInfo(ctx, "adding menu item", slog.String("item.name", name))
	result, err := s.inner.AddItem(ctx, item)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add menu item", slog.String("item.name", name))
	}
	span.SetAttributes(attribute.Int64("item.id", result.ID))
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "menu item added", slog.Int64("item.id", result.ID), slog.String("item.category", string(result.Category)))
	return result, nil
}

func (s *Service) UpdateItem(ctx context.Context, id int64, patch menudomain.Patch) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.UpdateItem", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "updating menu item", slog.Int64("item.id", id))
	result, err := s.inner.UpdateItem(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update menu item", slog.Int64("item.id", id))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "menu item updated", slog.Int64("item.id", id))
	return result, nil
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "MenuService.DeleteItem", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting menu item", slog.Int64("item.id", id))
	if err := s.inner.DeleteItem(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete menu item", slog.Int64("item.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "menu item deleted", slog.Int64("item.id", id))
	return nil
}

func (s *Service) ToggleAvailability(ctx context.Context, id int64) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.ToggleAvailability", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	result, err := s.inner.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle menu item availability", slog.Int64("item.id", id))
	}
	s.metrics.recordMutation(ctx, "toggle")
	s.logInfo(ctx, "menu item availability toggled", slog.Int64("item.id", id), slog.Bool("item.available", result.Available))
	return result, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.GetItem", trace.WithAttributes(attribute.Int64("item.id", id)))
	defer span.End()

	result, err := s.inner.GetItem(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load menu item", slog.Int64("item.id", id))
	}
	return result, nil
}

func (s *Service) ReplaceAll(ctx context.Context, items []*menudomain.Item) ([]*menudomain.Item, error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.ReplaceAll", trace.WithAttributes(attribute.Int("items.count", len(items))))
	defer span.End()

	s.logInfo(ctx, "replacing menu catalog", slog.Int("items.count", len(items)))
	result, err := s.inner.ReplaceAll(ctx, items)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to replace menu catalog")
	}
	s.metrics.recordMutation(ctx, "replace")
	return result, nil
}

func (s *Service) Search(ctx context.Context, query menudomain.SearchQuery) (iter.Seq[*menudomain.Item], error) {
	ctx, span := s.tracer.Start(ctx, "MenuService.Search", trace.WithAttributes(
		attribute.String("search.term", query.Term),
		attribute.String("search.category", string(query.Category)),
		attribute.Bool("search.available_only", query.AvailableOnly),
	))
	defer span.End()

	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search menu")
	}
	s.metrics.recordSearch(ctx)
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
	mutations metric.Int64Counter
	searches  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("menu.service.mutations", metric.WithDescription("Number of catalog mutations"))
	searches, _ := m.Int64Counter("menu.service.searches", metric.WithDescription("Number of catalog searches"))
	return serviceMetrics{mutations: mutations, searches: searches}
}

func (m serviceMetrics) recordMutation(ctx context.Context, kind string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("mutation.kind", kind)))
	}
}

func (m serviceMetrics) recordSearch(ctx context.Context) {
	if m.searches != nil {
		m.searches.Add(ctx, 1)
	}
}

var _ menuports.Service = (*Service)(nil)
