package ledger

import (
	"errors"
	"fmt"

	"github.com/Afatsiawu/FMS/internal/models"

	"gorm.io/gorm"
)

// ReverseIncome deletes an income record together with the accounting
// entries and pending district expense its posting created. Returns
// ErrNotFound if the record does not exist; on any storage failure nothing
// is deleted.
func (s *Service) ReverseIncome(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var income models.Income
		if err := tx.First(&income, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find income: %w", err)
		}
		if income.IsTithe || income.IsOffering {
			if err := deleteDependents(tx, income.ID, models.RefIncome); err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Income{}, income.ID).Error; err != nil {
			return fmt.Errorf("delete income: %w", err)
		}
		return nil
	})
}

// ReverseTithe deletes a tithe aggregate, every income record posted
// through it, and their accounting/district-expense dependents.
func (s *Service) ReverseTithe(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tithe models.Tithe
		if err := tx.First(&tithe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find tithe: %w", err)
		}

		var incomes []models.Income
		if err := tx.Where("tithe_id = ?", tithe.ID).Find(&incomes).Error; err != nil {
			return fmt.Errorf("find tithe incomes: %w", err)
		}
		for i := range incomes {
			if err := deleteDependents(tx, incomes[i].ID, models.RefTithe); err != nil {
				return err
			}
			if err := tx.Delete(&models.Income{}, incomes[i].ID).Error; err != nil {
				return fmt.Errorf("delete tithe income: %w", err)
			}
		}

		if err := tx.Delete(&models.Tithe{}, tithe.ID).Error; err != nil {
			return fmt.Errorf("delete tithe: %w", err)
		}
		return nil
	})
}

// ReverseExpense deletes an expense and its accounting entry.
func (s *Service) ReverseExpense(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.First(&expense, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find expense: %w", err)
		}
		if err := tx.Where("reference_id = ? AND reference_type = ?",
			expense.ID, models.RefExpense).
			Delete(&models.AccountingEntry{}).Error; err != nil {
			return fmt.Errorf("delete expense entries: %w", err)
		}
		if err := tx.Delete(&models.Expense{}, expense.ID).Error; err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
}

// DeleteInventoryItem removes an inventory item. Inventory has no ledger
// dependents.
func (s *Service) DeleteInventoryItem(id uint) error {
	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find inventory item: %w", err)
	}
	if err := s.db.Delete(&models.InventoryItem{}, item.ID).Error; err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return nil
}

// deleteDependents removes the accounting entries and the pending district
// expense created for one posted event, located by the explicit source
// reference columns.
func deleteDependents(tx *gorm.DB, refID uint, refType string) error {
	if err := tx.Where("reference_id = ? AND reference_type = ?", refID, refType).
		Delete(&models.AccountingEntry{}).Error; err != nil {
		return fmt.Errorf("delete accounting entries: %w", err)
	}
	if err := tx.Where("source_event_id = ? AND source_event_type = ? AND status = ?",
		refID, refType, models.DistrictStatusPending).
		Delete(&models.DistrictExpense{}).Error; err != nil {
		return fmt.Errorf("delete district expense: %w", err)
	}
	return nil
}
