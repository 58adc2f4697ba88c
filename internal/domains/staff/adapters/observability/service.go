package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	staffdomain "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	staffports "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

const tracerName = "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/observability/service"

// Service decorates the staff service with tracing, logging, and metrics.
// Passwords and tokens are never logged.
type Service struct {
	inner   staffports.Service
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

// New wraps the core staff service.
func New(inner staffports.Service, opts ...Option) staffports.Service {
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

func (s *Service) CreateMember(ctx context.Context, input staffports.NewMember) (*staffdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "StaffService.CreateMember", trace.WithAttributes(attribute.String("staff.role", string(input.Role))))
	defer span.End()
	s.logInfo(ctx, "creating staff member", slog.String("staff.email", input.Email))
	result, err := s.inner.CreateMember(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create staff member", slog.String("staff.email", input.Email))
	}
	s.metrics.recordChange(ctx, "create")
	s.logInfo(ctx, "staff member created", slog.Int64("staff.id", result.ID))
	return result, nil
}

func (s *Service) UpdateMember(ctx context.Context, id int64, patch staffdomain.Patch) (*staffdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "StaffService.UpdateMember", trace.WithAttributes(attribute.Int64("staff.id", id)))
	defer span.End()
	result, err := s.inner.UpdateMember(ctx, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update staff member", slog.Int64("staff.id", id))
	}
	s.metrics.recordChange(ctx, "update")
	return result, nil
}

func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "StaffService.DeleteMember", trace.WithAttributes(attribute.Int64("staff.id", id)))
	defer span.End()
	if err := s.inner.DeleteMember(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete staff member", slog.Int64("staff.id", id))
	}
	s.metrics.recordChange(ctx, "delete")
	s.logInfo(ctx, "staff member deleted", slog.Int64("staff.id", id))
	return nil
}

func (s *Service) GetMember(ctx context.Context, id int64) (*staffdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "StaffService.GetMember", trace.WithAttributes(attribute.Int64("staff.id", id)))
	defer span.End()
	result, err := s.inner.GetMember(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load staff member", slog.Int64("staff.id", id))
	}
	return result, nil
}

func (s *Service) ListMembers(ctx context.Context, term string) ([]*staffdomain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "StaffService.ListMembers", trace.WithAttributes(attribute.String("filter.term", term)))
	defer span.End()
	result, err := s.inner.ListMembers(ctx, term)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list staff members")
	}
	span.SetAttributes(attribute.Int("staff.count", len(result)))
	return result, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*staffports.Token, error) {
	ctx, span := s.tracer.Start(ctx, "StaffService.Login")
	defer span.End()
	result, err := s.inner.Login(ctx, email, password)
	if err != nil {
		s.metrics.recordLogin(ctx, false)
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("staff.email", email))
	}
	s.metrics.recordLogin(ctx, true)
	s.logInfo(ctx, "staff member logged in", slog.Int64("staff.id", result.Member.ID))
	return result, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "StaffService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (identity.Identity, error) {
	ctx, span := s.tracer.Start(ctx, "StaffService.Authenticate")
	defer span.End()
	result, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return identity.Identity{}, err
	}
	span.SetAttributes(attribute.Int64("staff.id", result.ID), attribute.String("staff.role", string(result.Role)))
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
	changes metric.Int64Counter
	logins  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	changes, _ := m.Int64Counter("staff.service.changes", metric.WithDescription("Number of staff roster changes"))
	logins, _ := m.Int64Counter("staff.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{changes: changes, logins: logins}
}

func (m serviceMetrics) recordChange(ctx context.Context, kind string) {
	if m.changes != nil {
		m.changes.Add(ctx, 1, metric.WithAttributes(attribute.String("change.kind", kind)))
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.succeeded", ok)))
	}
}
