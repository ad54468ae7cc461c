package models

import "time"

// District expense statuses.
const (
	DistrictStatusPending = "Pending"
	DistrictStatusPaid    = "Paid"
)

// DistrictExpense is the payable obligation to the district body created as
// a side effect of posting tithe or offering income. SourceEventID and
// SourceEventType identify the income row that produced it, so reversal can
// find it without matching on description text.
type DistrictExpense struct {
	ID              uint    `gorm:"primaryKey"`
	Source          string  `gorm:"size:64;not null"` // e.g. "Tithe Allocation"
	Description     string  `gorm:"size:255"`
	OriginalAmount  float64 `gorm:"not null"`
	DistrictAmount  float64 `gorm:"not null"`
	Date            string  `gorm:"size:10;not null"`
	Status          string  `gorm:"size:16;default:Pending"`
	SourceEventID   uint    `gorm:"index:idx_district_source"`
	SourceEventType string  `gorm:"size:16;index:idx_district_source"`
	CreatedAt       time.Time
}
