package models

import "time"

// Offering aggregates the congregation-wide offering for one month. Unlike
// tithes there is one row per month, not per member.
type Offering struct {
	ID        uint `gorm:"primaryKey"`
	Month     int  `gorm:"not null;uniqueIndex"` // 1..12
	Week1     *float64
	Week2     *float64
	Week3     *float64
	Week4     *float64
	Week5     *float64
	Total     float64 `gorm:"default:0"`
	Date      string  `gorm:"size:10"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Offering) Weeks() [5]*float64 {
	return [5]*float64{o.Week1, o.Week2, o.Week3, o.Week4, o.Week5}
}

// SetWeek overwrites the given week (1..5) and recomputes Total.
func (o *Offering) SetWeek(week int, amount float64) {
	v := amount
	switch week {
	case 1:
		o.Week1 = &v
	case 2:
		o.Week2 = &v
	case 3:
		o.Week3 = &v
	case 4:
		o.Week4 = &v
	case 5:
		o.Week5 = &v
	}
	total := 0.0
	for _, w := range o.Weeks() {
		if w != nil {
			total += *w
		}
	}
	o.Total = total
}
