package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/menu/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the menu catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records this adapter owns, for schema migration.
func Models() []any {
	return []any{&itemRecord{}}
}

// itemRecord maps the menu item aggregate to a relational table.
type itemRecord struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Category    string          `gorm:"column:category;type:varchar(32);index"`
	Image       string          `gorm:"column:image"`
	Available   bool            `gorm:"column:available;index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (itemRecord) TableName() string { return "menu_items" }

// Save inserts a new item or upserts one carrying an explicit id.
func (r *Repository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("menu item is nil")
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(item)
	db := r.db.WithContext(ctx)
	if record.ID != 0 {
		db = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"price":       record.Price,
				"category":    record.Category,
				"image":       record.Image,
				"available":   record.Available,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		})
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an item by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update locks the row, applies mutate and writes the result in one transaction.
func (r *Repository) Update(ctx context.Context, id int64, mutate func(*domain.Item) error) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record itemRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		item := record.toDomain()
		if err := mutate(item); err != nil {
			return err
		}
		item.ID = id
		if err := item.Validate(); err != nil {
			return err
		}
		next := toRecord(item)
		next.CreatedAt = record.CreatedAt
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
		updated = next.toDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an item by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns the catalog ordered by id, which matches insertion order.
func (r *Repository) List(ctx context.Context) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.Item, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// ReplaceAll truncates the catalog and inserts items, keeping explicit ids.
func (r *Repository) ReplaceAll(ctx context.Context, items []*domain.Item) ([]*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var explicit, fresh []itemRecord
	for _, item := range items {
		if item == nil {
			return nil, errors.New("menu item is nil")
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		if item.ID != 0 {
			explicit = append(explicit, toRecord(item))
		} else {
			fresh = append(fresh, toRecord(item))
		}
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&itemRecord{}).Error; err != nil {
			return err
		}
		if len(explicit) > 0 {
			if err := tx.Create(&explicit).Error; err != nil {
				return err
			}
		}
		// keep the serial ahead of explicitly inserted ids
		if err := tx.Exec("SELECT setval(pg_get_serial_sequence('menu_items', 'id'), COALESCE((SELECT MAX(id) FROM menu_items), 0) + 1, false)").Error; err != nil {
			return err
		}
		if len(fresh) > 0 {
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.List(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres menu repository not configured")
	}
	return nil
}

func toRecord(item *domain.Item) itemRecord {
	return itemRecord{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    string(item.Category),
		Image:       item.Image,
		Available:   item.Available,
	}
}

func (r itemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    domain.Category(r.Category),
		Image:       r.Image,
		Available:   r.Available,
	}
}
