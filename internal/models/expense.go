package models

import "time"

// Expense represents a single outgoing payment.
type Expense struct {
	ID          uint    `gorm:"primaryKey"`
	Category    string  `gorm:"size:64;not null"`
	Description string  `gorm:"size:255;not null"`
	Amount      float64 `gorm:"not null"`
	Date        string  `gorm:"size:10;index;not null"`
	ExpenseType string  `gorm:"size:32;index;default:other"`
	CreatedAt   time.Time
}
