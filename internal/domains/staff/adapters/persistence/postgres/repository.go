package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/staff/ports"
	"github.com/firaolassefa/restaurant-management-system/internal/shared/identity"
)

var _ ports.Repository = (*Repository)(nil)

const uniqueViolation = "23505"

// Repository persists staff members in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records this package owns, for schema migration.
func Models() []any {
	return []any{&memberRecord{}, &sessionRecord{}}
}

type memberRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role;size:16"`
	Position     string    `gorm:"column:position;size:32"`
	Active       bool      `gorm:"column:active"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (memberRecord) TableName() string { return "staff_members" }

func (r *Repository) Create(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("staff member is nil")
	}
	if err := member.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(member)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, translateError(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

// Update locks the row, applies mutate and writes the result in one transaction.
func (r *Repository) Update(ctx context.Context, id int64, mutate func(*domain.Member) error) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Member
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record memberRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		member := record.toDomain()
		if err := mutate(member); err != nil {
			return err
		}
		member.ID = id
		if err := member.Validate(); err != nil {
			return err
		}
		next := toRecord(member)
		next.CreatedAt = record.CreatedAt
		if err := tx.Save(&next).Error; err != nil {
			return translateError(err)
		}
		updated = next.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&memberRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []memberRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	members := make([]*domain.Member, 0, len(records))
	for i := range records {
		members = append(members, records[i].toDomain())
	}
	return members, nil
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.Member, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record memberRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres staff repository not configured")
	}
	return nil
}

// translateError maps the unique email index violation to ErrDuplicateEmail.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ports.ErrDuplicateEmail
	}
	return err
}

func toRecord(m *domain.Member) memberRecord {
	return memberRecord{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Role:         string(m.Role),
		Position:     string(m.Position),
		Active:       m.Active,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r memberRecord) toDomain() *domain.Member {
	return &domain.Member{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Role:         identity.Role(r.Role),
		Position:     domain.Position(r.Position),
		Active:       r.Active,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
