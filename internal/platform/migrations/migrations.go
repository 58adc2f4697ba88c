// Package migrations owns schema creation. Repository adapters never migrate on their own.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	menupostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/menu/adapters/persistence/postgres"
	orderspostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/orders/adapters/persistence/postgres"
	staffpostgres "github.com/firaolassefa/restaurant-management-system/internal/domains/staff/adapters/persistence/postgres"
)

// Models lists every table the restaurant persists.
func Models() []any {
	var models []any
	models = append(models, menupostgres.Models()...)
	models = append(models, orderspostgres.Models()...)
	models = append(models, staffpostgres.Models()...)
	return models
}

// Run applies the schema. A nil db is a no-op so memory-only processes can call it unconditionally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate restaurant schema: %w", err)
	}
	return nil
}
