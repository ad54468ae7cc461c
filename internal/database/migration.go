package database

import (
	"fmt"

	"github.com/Afatsiawu/FMS/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models. Migrations are
// additive; existing rows are never dropped.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Income{},
		&models.Tithe{},
		&models.Offering{},
		&models.Expense{},
		&models.DistrictExpense{},
		&models.AccountingEntry{},
		&models.InventoryItem{},
		&models.Backup{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
