package models

import "time"

// Tithe aggregates one member's tithe contributions for one month. Weeks are
// nullable; posting the same member/month/week again overwrites that week's
// value and Total is recomputed from the non-null weeks.
type Tithe struct {
	ID         uint   `gorm:"primaryKey"`
	MemberName string `gorm:"size:128;not null"`
	MemberID   string `gorm:"size:128;uniqueIndex:idx_tithes_member_month"` // defaults to MemberName
	Month      int    `gorm:"not null;uniqueIndex:idx_tithes_member_month"` // 1..12
	Week1      *float64
	Week2      *float64
	Week3      *float64
	Week4      *float64
	Week5      *float64
	Total      float64 `gorm:"default:0"`
	Date       string  `gorm:"size:10"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Weeks returns the five week columns in order.
func (t *Tithe) Weeks() [5]*float64 {
	return [5]*float64{t.Week1, t.Week2, t.Week3, t.Week4, t.Week5}
}

// SetWeek overwrites the given week (1..5) and recomputes Total as the sum
// of the non-null weeks.
func (t *Tithe) SetWeek(week int, amount float64) {
	v := amount
	switch week {
	case 1:
		t.Week1 = &v
	case 2:
		t.Week2 = &v
	case 3:
		t.Week3 = &v
	case 4:
		t.Week4 = &v
	case 5:
		t.Week5 = &v
	}
	total := 0.0
	for _, w := range t.Weeks() {
		if w != nil {
			total += *w
		}
	}
	t.Total = total
}
