package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/Afatsiawu/FMS/internal/database"
	"github.com/Afatsiawu/FMS/internal/ledger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

// newFixture wires a ledger service (clock pinned to 2025-03-15) for seeding
// and a report service under test against the same database.
func newFixture(t *testing.T) (*ledger.Service, *Service) {
	t.Helper()
	db := newTestDB(t)
	l := ledger.NewService(db)
	l.Now = func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return l, NewService(db)
}

func TestIncomes_TotalsAndFilters(t *testing.T) {
	l, r := newFixture(t)

	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Sunday", Amount: 100, IsTithe: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Rental", Amount: 50}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	incomes, totals, err := r.Incomes(IncomeFilter{})
	if err != nil {
		t.Fatalf("Incomes() error = %v", err)
	}
	if len(incomes) != 2 {
		t.Fatalf("len(incomes) = %d, want 2", len(incomes))
	}
	if totals.TotalAmount != 150 {
		t.Errorf("total amount = %v, want 150", totals.TotalAmount)
	}
	// retained income: 23 from the tithe plus the full plain income
	if totals.TotalLocal != 73 {
		t.Errorf("total local = %v, want 73", totals.TotalLocal)
	}
	if totals.TotalDistrict != 77 {
		t.Errorf("total district = %v, want 77", totals.TotalDistrict)
	}

	isTithe := true
	filtered, _, err := r.Incomes(IncomeFilter{IsTithe: &isTithe})
	if err != nil {
		t.Fatalf("Incomes(tithe) error = %v", err)
	}
	if len(filtered) != 1 || !filtered[0].IsTithe {
		t.Errorf("tithe filter returned %d rows", len(filtered))
	}
}

func TestIncomes_DateRange(t *testing.T) {
	l, r := newFixture(t)

	for _, date := range []string{"2025-01-10", "2025-02-10", "2025-03-10"} {
		if _, err := l.PostIncome(ledger.IncomeInput{Category: "x", Amount: 10, Date: date}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	incomes, totals, err := r.Incomes(IncomeFilter{StartDate: "2025-02-01", EndDate: "2025-02-28"})
	if err != nil {
		t.Fatalf("Incomes() error = %v", err)
	}
	if len(incomes) != 1 || incomes[0].Date != "2025-02-10" {
		t.Fatalf("date filter returned %d rows", len(incomes))
	}
	if totals.TotalAmount != 10 {
		t.Errorf("total amount = %v, want 10", totals.TotalAmount)
	}
}

func TestTithes_ComputedSplit(t *testing.T) {
	l, r := newFixture(t)

	if _, _, err := l.PostTithe(ledger.TitheInput{MemberName: "Jane", Month: 3, Week: 1, Amount: 50}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := l.PostTithe(ledger.TitheInput{MemberName: "Jane", Month: 3, Week: 2, Amount: 50}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	month := 3
	rows, totals, err := r.Tithes(&month, "")
	if err != nil {
		t.Fatalf("Tithes() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].Total != 100 || rows[0].DistrictAmount != 77 || rows[0].LocalAmount != 23 {
		t.Errorf("row = total %v district %v local %v, want 100/77/23",
			rows[0].Total, rows[0].DistrictAmount, rows[0].LocalAmount)
	}
	if totals.TotalTithes != 100 || totals.TotalDistrict != 77 || totals.TotalLocal != 23 {
		t.Errorf("totals = %+v, want 100/77/23", totals)
	}
}

func TestDashboard_UsesLocalAmounts(t *testing.T) {
	l, r := newFixture(t)

	// today (pinned clock): tithe 100 -> 23 retained, plain 50 -> 50
	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Sunday", Amount: 100, IsTithe: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Rental", Amount: 50}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.PostExpense(ledger.ExpenseInput{Category: "Utilities", Description: "Power", Amount: 20}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// earlier in the month, not today
	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Rental", Amount: 30, Date: "2025-03-01"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sum, err := r.Dashboard("2025-03-15")
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if sum.TodayIncome != 73 {
		t.Errorf("today income = %v, want 73", sum.TodayIncome)
	}
	if sum.TodayExpense != 20 {
		t.Errorf("today expense = %v, want 20", sum.TodayExpense)
	}
	if sum.MonthIncome != 103 {
		t.Errorf("month income = %v, want 103", sum.MonthIncome)
	}
	if sum.NetBalance != 53 {
		t.Errorf("net balance = %v, want 53", sum.NetBalance)
	}
}

func TestTrialBalance_Balanced(t *testing.T) {
	l, r := newFixture(t)

	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Sunday", Amount: 100, IsTithe: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := l.PostOffering(ledger.OfferingInput{Month: 3, Week: 1, Amount: 60}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rows, err := r.TrialBalance("2025-03")
	if err != nil {
		t.Fatalf("TrialBalance() error = %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("trial balance is empty")
	}

	var debit, credit float64
	for _, row := range rows {
		debit += row.TotalDebit
		credit += row.TotalCredit
	}
	if debit != credit {
		t.Errorf("debits %v != credits %v", debit, credit)
	}
	if debit != 160 {
		t.Errorf("total debits = %v, want 160", debit)
	}
}

func TestTrialBalance_OtherPeriodEmpty(t *testing.T) {
	l, r := newFixture(t)

	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Sunday", Amount: 100, IsTithe: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rows, err := r.TrialBalance("2024-01")
	if err != nil {
		t.Fatalf("TrialBalance() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestExpensesAndDistrictExpenses(t *testing.T) {
	l, r := newFixture(t)

	if _, err := l.PostExpense(ledger.ExpenseInput{Category: "Utilities", Description: "Power", Amount: 20}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.PostExpense(ledger.ExpenseInput{
		Category: "District", Description: "Remittance", Amount: 10, ExpenseType: "district",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.PostIncome(ledger.IncomeInput{Category: "Sunday", Amount: 100, IsTithe: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	other, err := r.Expenses("other")
	if err != nil {
		t.Fatalf("Expenses() error = %v", err)
	}
	if len(other) != 1 || other[0].ExpenseType != "other" {
		t.Errorf("other expenses = %d rows", len(other))
	}

	district, err := r.Expenses("district")
	if err != nil {
		t.Fatalf("Expenses() error = %v", err)
	}
	if len(district) != 1 {
		t.Errorf("district expenses = %d rows, want 1", len(district))
	}

	payables, err := r.DistrictExpenses()
	if err != nil {
		t.Fatalf("DistrictExpenses() error = %v", err)
	}
	if len(payables) != 1 || payables[0].DistrictAmount != 77 {
		t.Errorf("payables = %d rows", len(payables))
	}
}
