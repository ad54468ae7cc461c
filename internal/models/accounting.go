package models

import "time"

// Reference types for accounting entries.
const (
	RefIncome  = "income"
	RefTithe   = "tithe"
	RefExpense = "expense"
)

// AccountingEntry is one side of a double-entry posting. Exactly one of
// DebitAmount and CreditAmount is nonzero per row. The four rows of a
// tithe/offering posting share ReferenceID, ReferenceType and Period.
type AccountingEntry struct {
	ID            uint    `gorm:"primaryKey"`
	AccountName   string  `gorm:"size:64;not null"`
	DebitAmount   float64 `gorm:"default:0"`
	CreditAmount  float64 `gorm:"default:0"`
	Description   string  `gorm:"size:255;not null"`
	ReferenceID   uint    `gorm:"index:idx_entries_ref"`
	ReferenceType string  `gorm:"size:16;index:idx_entries_ref"`
	Date          string  `gorm:"size:10;not null"`
	Period        string  `gorm:"size:7;index"` // YYYY-MM
	CreatedAt     time.Time
}
