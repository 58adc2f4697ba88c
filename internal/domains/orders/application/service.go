package application

import (
	"context"
	"errors"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/money"
)

// Service orchestrates order lifecycle use cases.
type Service struct {
	repo   ports.Repository
	events ports.EventPublisher
	now    func() time.Time
}

// Option configures optional collaborators.
type Option func(*Service)

// WithEventPublisher announces placements and transitions.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		events: ports.NoopEventPublisher,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Place stores a new order in Pending. Id, number and history are assigned here, never taken from input.
func (s *Service) Place(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	candidate := order.Clone()
	candidate.ID = 0
	candidate.Number = ""
	candidate.Status = domain.StatusPending
	candidate.History = nil
	if candidate.PlacedAt.IsZero() {
		candidate.PlacedAt = s.now()
	}
	candidate.UpdatedAt = candidate.PlacedAt
	if candidate.Waiter == "" {
		candidate.Waiter = identity.NameFromContext(ctx)
	}
	if err := candidate.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Insert(ctx, candidate)
	if err != nil {
		return nil, err
	}
	_ = s.events.Publish(ctx, domain.OrderPlaced{
		BaseEvent: domain.BaseEvent{Timestamp: saved.PlacedAt, Number: saved.Number},
		OrderID:   saved.ID,
		Customer:  saved.Customer,
		Table:     saved.Table,
		Total:     money.Format(saved.Total),
		Items:     saved.ItemCount(),
	})
	return saved, nil
}

// Transition moves an order one step along the lifecycle. The check and write are atomic in the repository.
func (s *Service) Transition(ctx context.Context, id int64, to domain.Status) (*domain.Order, error) {
	if !to.Valid() {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	by := identity.NameFromContext(ctx)
	at := s.now()
	var from domain.Status
	updated, err := s.repo.Update(ctx, id, func(order *domain.Order) error {
		from = order.Status
		return order.TransitionTo(to, by, at)
	})
	if err != nil {
		return nil, mapError(err)
	}
	_ = s.events.Publish(ctx, domain.OrderStatusChanged{
		BaseEvent: domain.BaseEvent{Timestamp: at, Number: updated.Number},
		OrderID:   updated.ID,
		From:      from,
		To:        updated.Status,
		By:        by,
	})
	return updated, nil
}

func (s *Service) Find(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// FindByNumber resolves an order by its display number, ignoring case.
func (s *Service) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ports.ErrNotFound
	}
	orders, err := s.repo.List(ctx, domain.Filter{Term: number})
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		if strings.EqualFold(order.Number, number) {
			return order, nil
		}
	}
	return nil, ports.ErrNotFound
}

// List returns a restartable sequence over a snapshot of matching orders.
func (s *Service) List(ctx context.Context, filter domain.Filter) (iter.Seq[*domain.Order], error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return filter.Apply(orders), nil
}

// Summary computes the dashboard figures across every order.
func (s *Service) Summary(ctx context.Context) (domain.Summary, error) {
	orders, err := s.repo.List(ctx, domain.Filter{})
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(slices.Values(orders)), nil
}

var _ ports.Service = (*Service)(nil)
