package memory

import (
	"context"
	"sync"
	"time"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory SessionStore implementation.
type SessionStore struct {
	sessions sync.Map
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.sessions.Store(session.ID, session)
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	value, ok := s.sessions.Load(id)
	if !ok {
		return domain.Session{}, ports.ErrSessionNotFound
	}
	return value.(domain.Session), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.sessions.Delete(id)
	return nil
}

func (s *SessionStore) DeleteByMember(_ context.Context, memberID int64) error {
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).MemberID == memberID {
			s.sessions.Delete(key)
		}
		return true
	})
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()
	var purged int64
	s.sessions.Range(func(key, value any) bool {
		if value.(domain.Session).Expired(now) {
			s.sessions.Delete(key)
			purged++
		}
		return true
	})
	return purged, nil
}
