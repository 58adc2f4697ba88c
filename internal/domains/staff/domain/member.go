package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidEmail    = errors.New("email must contain '@'")
	ErrEmptyPassword   = errors.New("password is required")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
	ErrInvalidRole     = errors.New("role must be admin or staff")
	ErrInvalidPosition = errors.New("invalid position")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// HashCost is the bcrypt work factor used for new passwords.
var HashCost = bcrypt.DefaultCost

// Position is the job a member does on the floor.
type Position string

const (
	PositionWaiter  Position = "Waiter"
	PositionChef    Position = "Chef"
	PositionCashier Position = "Cashier"
	PositionManager Position = "Manager"
)

func Positions() []Position {
	return []Position{PositionWaiter, PositionChef, PositionCashier, PositionManager}
}

// ParsePosition matches case-insensitively. Blank means waiter.
func ParsePosition(raw string) (Position, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PositionWaiter, nil
	}
	for _, p := range Positions() {
		if strings.EqualFold(raw, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPosition, raw)
}

// ParseRole matches case-insensitively. Blank means staff.
func ParseRole(raw string) (identity.Role, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return identity.RoleStaff, nil
	}
	role := identity.Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
	return role, nil
}

// Member is a restaurant employee who can sign in.
type Member struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Role         identity.Role
	Position     Position
	Active       bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewMember builds an active member with a hashed password.
func NewMember(name, email, password string, role identity.Role, position Position) (*Member, error) {
	m := &Member{Role: role, Position: position, Active: true}
	if err := m.Rename(name); err != nil {
		return nil, err
	}
	if err := m.ChangeEmail(email); err != nil {
		return nil, err
	}
	if err := m.SetPassword(password); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Member) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	m.Name = name
	return nil
}

// ChangeEmail stores the address lower-cased so lookups are case-insensitive.
func (m *Member) ChangeEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	m.Email = email
	return nil
}

// SetPassword replaces the stored hash.
func (m *Member) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return err
	}
	m.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares password with the stored hash.
func (m *Member) CheckPassword(password string) bool {
	if m.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) == nil
}

// Validate re-checks the invariants before persistence.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if !m.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, m.Role)
	}
	if _, err := ParsePosition(string(m.Position)); err != nil || m.Position == "" {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, m.Position)
	}
	if m.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Identity is the view of m other domains are allowed to see.
func (m *Member) Identity() identity.Identity {
	return identity.Identity{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role}
}

// Matches reports whether term appears in the name, email or position.
func (m *Member) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), term) ||
		strings.Contains(m.Email, term) ||
		strings.Contains(strings.ToLower(string(m.Position)), term)
}

func (m *Member) Clone() *Member {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

// Patch is a partial update. Nil fields are left alone.
type Patch struct {
	Name     *string
	Email    *string
	Phone    *string
	Role     *identity.Role
	Position *Position
	Active   *bool
	Password *string
}

// Apply updates m only if every field in p is valid.
func (m *Member) Apply(p Patch) error {
	next := m.Clone()
	if p.Name != nil {
		if err := next.Rename(*p.Name); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := next.ChangeEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		next.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Role != nil {
		next.Role = *p.Role
	}
	if p.Position != nil {
		next.Position = *p.Position
	}
	if p.Active != nil {
		next.Active = *p.Active
	}
	if p.Password != nil {
		if err := next.SetPassword(*p.Password); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*m = *next
	return nil
}
