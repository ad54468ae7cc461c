package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/Afatsiawu/FMS/internal/database"
	"github.com/Afatsiawu/FMS/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a uniquely named in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// newTestService pins the clock to 2025-03-15.
func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	s := NewService(db)
	s.Now = func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return s, db
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestPostIncome_TitheSplit(t *testing.T) {
	s, db := newTestService(t)

	income, err := s.PostIncome(IncomeInput{
		Category:    "Sunday Service",
		Description: "March tithes",
		Amount:      100.00,
		IsTithe:     true,
	})
	if err != nil {
		t.Fatalf("PostIncome() error = %v", err)
	}

	if income.LocalAmount != 23.00 || income.DistrictAmount != 77.00 {
		t.Errorf("split = (%v, %v), want (23, 77)", income.LocalAmount, income.DistrictAmount)
	}
	if income.Date != "2025-03-15" {
		t.Errorf("date = %q, want 2025-03-15", income.Date)
	}

	// one pending district expense pointing at the income row
	var de models.DistrictExpense
	if err := db.Where("source_event_id = ? AND source_event_type = ?",
		income.ID, models.RefIncome).First(&de).Error; err != nil {
		t.Fatalf("district expense not found: %v", err)
	}
	if de.Status != models.DistrictStatusPending {
		t.Errorf("district expense status = %q, want Pending", de.Status)
	}
	if de.DistrictAmount != 77.00 || de.OriginalAmount != 100.00 {
		t.Errorf("district expense amounts = (%v, %v), want (77, 100)",
			de.DistrictAmount, de.OriginalAmount)
	}

	// exactly four balanced accounting entries
	var entries []models.AccountingEntry
	if err := db.Where("reference_id = ? AND reference_type = ?",
		income.ID, models.RefIncome).Find(&entries).Error; err != nil {
		t.Fatalf("load entries: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}
	var debits, credits float64
	for _, e := range entries {
		debits += e.DebitAmount
		credits += e.CreditAmount
		if e.Period != "2025-03" {
			t.Errorf("entry period = %q, want 2025-03", e.Period)
		}
		if (e.DebitAmount == 0) == (e.CreditAmount == 0) {
			t.Errorf("entry %q must have exactly one nonzero side", e.AccountName)
		}
	}
	if debits != 100.00 || credits != 100.00 {
		t.Errorf("debits = %v, credits = %v, want 100 each", debits, credits)
	}
}

func TestPostIncome_PlainHasNoFanout(t *testing.T) {
	s, db := newTestService(t)

	income, err := s.PostIncome(IncomeInput{
		Category:    "Hall Rental",
		Description: "Community event",
		Amount:      250.00,
		Date:        "2025-02-01",
	})
	if err != nil {
		t.Fatalf("PostIncome() error = %v", err)
	}

	if income.LocalAmount != 250.00 || income.DistrictAmount != 0 {
		t.Errorf("plain income split = (%v, %v), want (250, 0)",
			income.LocalAmount, income.DistrictAmount)
	}
	if n := countRows(t, db, &models.AccountingEntry{}, ""); n != 0 {
		t.Errorf("accounting entries = %d, want 0", n)
	}
	if n := countRows(t, db, &models.DistrictExpense{}, ""); n != 0 {
		t.Errorf("district expenses = %d, want 0", n)
	}
}

func TestPostIncome_Validation(t *testing.T) {
	s, db := newTestService(t)

	testCases := []struct {
		name string
		in   IncomeInput
	}{
		{"zero amount", IncomeInput{Category: "x", Amount: 0}},
		{"negative amount", IncomeInput{Category: "x", Amount: -5}},
		{"conflicting flags", IncomeInput{Category: "x", Amount: 10, IsTithe: true, IsOffering: true}},
		{"bad date", IncomeInput{Category: "x", Amount: 10, Date: "15/03/2025"}},
	}

	for _, tc := range testCases {
		_, err := s.PostIncome(tc.in)
		if !IsValidation(err) {
			t.Errorf("%s: error = %v, want validation error", tc.name, err)
		}
	}

	// rejected before any write
	if n := countRows(t, db, &models.Income{}, ""); n != 0 {
		t.Errorf("income rows after rejected input = %d, want 0", n)
	}
}

func TestPostTithe_CreatesAggregateAndFanout(t *testing.T) {
	s, db := newTestService(t)

	tithe, income, err := s.PostTithe(TitheInput{
		MemberName: "Jane",
		Month:      3,
		Week:       1,
		Amount:     50,
	})
	if err != nil {
		t.Fatalf("PostTithe() error = %v", err)
	}

	if tithe.Week1 == nil || *tithe.Week1 != 50 || tithe.Total != 50 {
		t.Errorf("tithe week1/total = %v/%v, want 50/50", tithe.Week1, tithe.Total)
	}
	if tithe.MemberID != "Jane" {
		t.Errorf("member id = %q, want defaulted to member name", tithe.MemberID)
	}
	if !income.IsTithe || income.TitheID == nil || *income.TitheID != tithe.ID {
		t.Errorf("income not linked to tithe: IsTithe=%v TitheID=%v", income.IsTithe, income.TitheID)
	}
	if income.LocalAmount != 11.50 || income.DistrictAmount != 38.50 {
		t.Errorf("split = (%v, %v), want (11.50, 38.50)",
			income.LocalAmount, income.DistrictAmount)
	}

	if n := countRows(t, db, &models.AccountingEntry{},
		"reference_id = ? AND reference_type = ?", income.ID, models.RefTithe); n != 4 {
		t.Errorf("tithe accounting entries = %d, want 4", n)
	}
	if n := countRows(t, db, &models.DistrictExpense{},
		"source_event_id = ? AND source_event_type = ?", income.ID, models.RefTithe); n != 1 {
		t.Errorf("district expenses = %d, want 1", n)
	}
}

func TestPostTithe_RepostReplacesWeek(t *testing.T) {
	s, db := newTestService(t)

	if _, _, err := s.PostTithe(TitheInput{MemberName: "Jane", Month: 3, Week: 1, Amount: 50}); err != nil {
		t.Fatalf("first PostTithe() error = %v", err)
	}
	tithe, _, err := s.PostTithe(TitheInput{MemberName: "Jane", Month: 3, Week: 1, Amount: 30})
	if err != nil {
		t.Fatalf("second PostTithe() error = %v", err)
	}

	// same week replaces, never accumulates
	if tithe.Week1 == nil || *tithe.Week1 != 30 || tithe.Total != 30 {
		t.Errorf("after repost week1/total = %v/%v, want 30/30", tithe.Week1, tithe.Total)
	}
	if n := countRows(t, db, &models.Tithe{}, ""); n != 1 {
		t.Errorf("tithe rows = %d, want 1", n)
	}
}

func TestPostTithe_SecondWeekAddsToTotal(t *testing.T) {
	s, _ := newTestService(t)

	if _, _, err := s.PostTithe(TitheInput{MemberName: "Jane", Month: 3, Week: 1, Amount: 50}); err != nil {
		t.Fatalf("PostTithe() error = %v", err)
	}
	tithe, _, err := s.PostTithe(TitheInput{MemberName: "Jane", Month: 3, Week: 2, Amount: 25})
	if err != nil {
		t.Fatalf("PostTithe() error = %v", err)
	}

	if tithe.Total != 75 {
		t.Errorf("total = %v, want 75", tithe.Total)
	}
	if tithe.Week1 == nil || *tithe.Week1 != 50 || tithe.Week2 == nil || *tithe.Week2 != 25 {
		t.Errorf("weeks = (%v, %v), want (50, 25)", tithe.Week1, tithe.Week2)
	}
}

func TestPostTithe_Validation(t *testing.T) {
	s, _ := newTestService(t)

	testCases := []struct {
		name string
		in   TitheInput
	}{
		{"missing name", TitheInput{Month: 3, Week: 1, Amount: 10}},
		{"month too low", TitheInput{MemberName: "Jane", Month: 0, Week: 1, Amount: 10}},
		{"month too high", TitheInput{MemberName: "Jane", Month: 13, Week: 1, Amount: 10}},
		{"week too high", TitheInput{MemberName: "Jane", Month: 3, Week: 6, Amount: 10}},
		{"zero amount", TitheInput{MemberName: "Jane", Month: 3, Week: 1, Amount: 0}},
	}

	for _, tc := range testCases {
		_, _, err := s.PostTithe(tc.in)
		if !IsValidation(err) {
			t.Errorf("%s: error = %v, want validation error", tc.name, err)
		}
	}
}

func TestPostOffering_UpsertByMonth(t *testing.T) {
	s, db := newTestService(t)

	if _, _, err := s.PostOffering(OfferingInput{Month: 3, Week: 1, Amount: 100}); err != nil {
		t.Fatalf("PostOffering() error = %v", err)
	}
	offering, income, err := s.PostOffering(OfferingInput{Month: 3, Week: 2, Amount: 60})
	if err != nil {
		t.Fatalf("PostOffering() error = %v", err)
	}

	if offering.Total != 160 {
		t.Errorf("offering total = %v, want 160", offering.Total)
	}
	if n := countRows(t, db, &models.Offering{}, ""); n != 1 {
		t.Errorf("offering rows = %d, want 1", n)
	}
	if !income.IsOffering {
		t.Error("income row not flagged as offering")
	}
	// each weekly posting carries its own fan-out
	if n := countRows(t, db, &models.AccountingEntry{}, ""); n != 8 {
		t.Errorf("accounting entries = %d, want 8", n)
	}
	if n := countRows(t, db, &models.DistrictExpense{}, ""); n != 2 {
		t.Errorf("district expenses = %d, want 2", n)
	}
}

func TestPostExpense_CreatesDebitEntry(t *testing.T) {
	s, db := newTestService(t)

	expense, err := s.PostExpense(ExpenseInput{
		Category:    "Utilities",
		Description: "Electricity bill",
		Amount:      80.50,
		Date:        "2025-03-10",
	})
	if err != nil {
		t.Fatalf("PostExpense() error = %v", err)
	}

	if expense.ExpenseType != "other" {
		t.Errorf("expense type = %q, want default \"other\"", expense.ExpenseType)
	}

	var entry models.AccountingEntry
	if err := db.Where("reference_id = ? AND reference_type = ?",
		expense.ID, models.RefExpense).First(&entry).Error; err != nil {
		t.Fatalf("expense entry not found: %v", err)
	}
	if entry.DebitAmount != 80.50 || entry.CreditAmount != 0 {
		t.Errorf("entry amounts = (%v, %v), want (80.50, 0)",
			entry.DebitAmount, entry.CreditAmount)
	}
	if entry.AccountName != "Other Expenses" {
		t.Errorf("account = %q, want Other Expenses", entry.AccountName)
	}
}

func TestPostExpense_Validation(t *testing.T) {
	s, _ := newTestService(t)

	testCases := []struct {
		name string
		in   ExpenseInput
	}{
		{"zero amount", ExpenseInput{Category: "x", Description: "y", Amount: 0}},
		{"missing category", ExpenseInput{Description: "y", Amount: 10}},
		{"missing description", ExpenseInput{Category: "x", Amount: 10}},
	}

	for _, tc := range testCases {
		_, err := s.PostExpense(tc.in)
		if !IsValidation(err) {
			t.Errorf("%s: error = %v, want validation error", tc.name, err)
		}
	}
}
