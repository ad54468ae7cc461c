package models

import "time"

// InventoryItem is a church asset (chairs, instruments, equipment). Pure
// record keeping; inventory has no ledger fan-out.
type InventoryItem struct {
	ID        uint   `gorm:"primaryKey"`
	ItemName  string `gorm:"size:128;not null"`
	Category  string `gorm:"size:64;not null"`
	Quantity  int    `gorm:"not null"`
	Condition string `gorm:"size:32;not null"`
	DateAdded string `gorm:"size:10;not null"`
	CreatedAt time.Time
}
