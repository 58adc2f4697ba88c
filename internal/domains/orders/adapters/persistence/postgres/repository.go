package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/domain"
	"github.com/firaolassefa/restaurant-management-system/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records this adapter owns, for schema migration.
func Models() []any {
	return []any{&orderRecord{}}
}

// orderRecord maps the order aggregate to a relational table. Line items and
// history are snapshots, so they live in JSONB columns next to the header.
type orderRecord struct {
	ID           int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Number       *string         `gorm:"column:number;size:32;uniqueIndex"`
	Items        []lineRecord    `gorm:"column:items;type:jsonb;serializer:json"`
	Customer     string          `gorm:"column:customer;index"`
	TableNumber  string          `gorm:"column:table_number;size:32"`
	Waiter       string          `gorm:"column:waiter"`
	OrderType    string          `gorm:"column:order_type;size:32"`
	Instructions string          `gorm:"column:instructions"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric"`
	Tax          decimal.Decimal `gorm:"column:tax;type:numeric"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric"`
	Status       string          `gorm:"column:status;type:varchar(32);index"`
	History      []changeRecord  `gorm:"column:history;type:jsonb;serializer:json"`
	PlacedAt     time.Time       `gorm:"column:placed_at;index"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ItemID    int64           `json:"itemId,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type changeRecord struct {
	From string    `json:"from"`
	To   string    `json:"to"`
	By   string    `json:"by,omitempty"`
	At   time.Time `json:"at"`
}

// Insert stores the order and derives its number from the generated id in the same transaction.
func (r *Repository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	record.ID = 0
	record.Number = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		number := domain.FormatNumber(record.ID)
		record.Number = &number
		return tx.Model(&orderRecord{}).Where("id = ?", record.ID).Update("number", number).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update locks the row with SELECT ... FOR UPDATE so concurrent transitions serialize.
func (r *Repository) Update(ctx context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var updated *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record orderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		order := record.toDomain()
		if err := mutate(order); err != nil {
			return err
		}
		if err := order.Validate(); err != nil {
			return err
		}
		next := toRecord(order)
		next.ID, next.Number = record.ID, record.Number
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

// List pushes the status set and search term down to SQL and returns rows in placement order.
func (r *Repository) List(ctx context.Context, filter domain.Filter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{}).Order("id ASC")
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status = ANY(?)", pq.Array(statuses))
	}
	if term := strings.TrimSpace(filter.Term); term != "" {
		like := "%" + escapeLike(term) + "%"
		query = query.Where("(number ILIKE ? OR customer ILIKE ? OR table_number ILIKE ?)", like, like, like)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:           order.ID,
		Customer:     order.Customer,
		TableNumber:  order.Table,
		Waiter:       order.Waiter,
		OrderType:    string(order.Type),
		Instructions: order.Instructions,
		Subtotal:     order.Subtotal,
		Tax:          order.Tax,
		Total:        order.Total,
		Status:       string(order.Status),
		PlacedAt:     order.PlacedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	if order.Number != "" {
		number := order.Number
		rec.Number = &number
	}
	for _, line := range order.Items {
		rec.Items = append(rec.Items, lineRecord{ItemID: line.ItemID, Name: line.Name, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	for _, change := range order.History {
		rec.History = append(rec.History, changeRecord{From: string(change.From), To: string(change.To), By: change.By, At: change.At})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:           r.ID,
		Customer:     r.Customer,
		Table:        r.TableNumber,
		Waiter:       r.Waiter,
		Type:         domain.Type(r.OrderType),
		Instructions: r.Instructions,
		Subtotal:     r.Subtotal,
		Tax:          r.Tax,
		Total:        r.Total,
		Status:       domain.Status(r.Status),
		PlacedAt:     r.PlacedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.Number != nil {
		order.Number = *r.Number
	}
	for _, line := range r.Items {
		order.Items = append(order.Items, domain.LineItem{ItemID: line.ItemID, Name: line.Name, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	for _, change := range r.History {
		order.History = append(order.History, domain.StatusChange{From: domain.Status(change.From), To: domain.Status(change.To), By: change.By, At: change.At})
	}
	return order
}
