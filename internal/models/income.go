package models

import "time"

// Income represents a single income record. Tithe and offering income is
// split into a retained local share and a district share; plain income keeps
// the full amount locally.
type Income struct {
	ID             uint    `gorm:"primaryKey"`
	Category       string  `gorm:"size:64;not null"`
	Description    string  `gorm:"size:255;not null"`
	Amount         float64 `gorm:"not null"`               // gross amount, 2 decimal places
	Date           string  `gorm:"size:10;index;not null"` // YYYY-MM-DD
	IsTithe        bool    `gorm:"index"`
	IsOffering     bool    `gorm:"index"`
	LocalAmount    float64
	DistrictAmount float64
	// TitheID links income rows created through the tithe path back to
	// their tithe aggregate, so reversal needs no text matching.
	TitheID   *uint `gorm:"index"`
	CreatedAt time.Time
}
