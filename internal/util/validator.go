package util

import (
	"fmt"
	"time"
)

// ValidateAmount checks that a monetary amount is positive and below the
// sanity ceiling.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero, got %.2f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %.2f", amount)
	}
	return nil
}

// ValidateDate checks the YYYY-MM-DD format.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateMonth checks a calendar month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("invalid month %d, must be 1-12", month)
	}
	return nil
}

// ValidateWeek checks a week-of-month number.
func ValidateWeek(week int) error {
	if week < 1 || week > 5 {
		return fmt.Errorf("invalid week %d, must be 1-5", week)
	}
	return nil
}

// ValidateCategory checks that a category label is present and sane.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 64 {
		return fmt.Errorf("category too long, max 64 characters")
	}
	return nil
}
