package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

// DefaultSessionTTL is how long a sign-in lasts when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

var _ ports.Service = (*Service)(nil)

// Service manages staff members and their sessions.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   ports.TokenIssuer
	ttl      time.Duration
	now      func() time.Time
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		sessions: sessions,
		tokens:   tokens,
		ttl:      DefaultSessionTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) CreateMember(ctx context.Context, input ports.NewMember) (*domain.Member, error) {
	member, err := domain.NewMember(input.Name, input.Email, input.Password, input.Role, input.Position)
	if err != nil {
		return nil, mapError(err)
	}
	member.Phone = strings.TrimSpace(input.Phone)
	now := s.now()
	member.CreatedAt, member.UpdatedAt = now, now
	return s.repo.Create(ctx, member)
}

// UpdateMember applies patch. Deactivating a member or changing their password
// or role ends all of their sessions.
func (s *Service) UpdateMember(ctx context.Context, id int64, patch domain.Patch) (*domain.Member, error) {
	var revoke bool
	updated, err := s.repo.Update(ctx, id, func(m *domain.Member) error {
		before := *m
		if err := m.Apply(patch); err != nil {
			return err
		}
		m.UpdatedAt = s.now()
		revoke = !m.Active || m.Role != before.Role || m.PasswordHash != before.PasswordHash
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	if revoke {
		if err := s.sessions.DeleteByMember(ctx, id); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func (s *Service) DeleteMember(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.sessions.DeleteByMember(ctx, id)
}

func (s *Service) GetMember(ctx context.Context, id int64) (*domain.Member, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMembers returns members whose name, email or position contains term.
func (s *Service) ListMembers(ctx context.Context, term string) ([]*domain.Member, error) {
	members, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Member, 0, len(members))
	for _, m := range members {
		if m.Matches(term) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Login verifies the credentials, opens a session and signs a token for it.
func (s *Service) Login(ctx context.Context, email, password string) (*ports.Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, mapError(ErrInvalidCredentials)
	}
	member, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !member.Active || !member.CheckPassword(password) {
		return nil, mapError(ErrInvalidCredentials)
	}
	now := s.now()
	session := domain.Session{ID: uuid.NewString(), MemberID: member.ID, CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	value, err := s.tokens.Issue(ports.Claims{SessionID: session.ID, Identity: member.Identity(), ExpiresAt: session.ExpiresAt})
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return nil, err
	}
	return &ports.Token{Value: value, ExpiresAt: session.ExpiresAt, Member: member}, nil
}

// Logout ends the session behind token. Ending an unknown session is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return mapError(err)
	}
	err = s.sessions.Delete(ctx, claims.SessionID)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Authenticate resolves a bearer token to the identity of a live, active member.
// Role and name come from the stored member, not from the token.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return identity.Identity{}, mapError(err)
	}
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return identity.Identity{}, mapError(err)
	}
	if session.Expired(s.now()) || session.MemberID != claims.Identity.ID {
		_ = s.sessions.Delete(ctx, session.ID)
		return identity.Identity{}, mapError(ports.ErrInvalidToken)
	}
	member, err := s.repo.GetByID(ctx, session.MemberID)
	if errors.Is(err, ports.ErrNotFound) {
		return identity.Identity{}, mapError(ports.ErrInvalidToken)
	}
	if err != nil {
		return identity.Identity{}, err
	}
	if !member.Active {
		return identity.Identity{}, mapError(ports.ErrInvalidToken)
	}
	return member.Identity(), nil
}

// EnsureAdmin creates an admin account for email unless one is already registered.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return false, err
	}
	_, err = s.CreateMember(ctx, ports.NewMember{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     identity.RoleAdmin,
		Position: domain.PositionManager,
	})
	if errors.Is(err, ports.ErrDuplicateEmail) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
