// Package report provides the read-only aggregation queries backing lists,
// dashboards and the trial balance. No method here writes anything.
package report

import (
	"fmt"

	"github.com/Afatsiawu/FMS/internal/allocation"
	"github.com/Afatsiawu/FMS/internal/models"

	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ---------- income ----------

// IncomeFilter narrows the income listing. Zero values mean "no filter".
type IncomeFilter struct {
	StartDate  string // inclusive, YYYY-MM-DD
	EndDate    string // inclusive
	IsTithe    *bool
	IsOffering *bool
}

// IncomeTotals sums the filtered set. TotalLocal is the organization-retained
// figure; TotalAmount is gross.
type IncomeTotals struct {
	TotalAmount   float64 `json:"total_amount"`
	TotalLocal    float64 `json:"total_local"`
	TotalDistrict float64 `json:"total_district"`
}

// Incomes lists income records matching the filter, newest first, together
// with their totals.
func (s *Service) Incomes(f IncomeFilter) ([]models.Income, IncomeTotals, error) {
	q := s.db.Model(&models.Income{})
	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	if f.IsTithe != nil {
		q = q.Where("is_tithe = ?", *f.IsTithe)
	}
	if f.IsOffering != nil {
		q = q.Where("is_offering = ?", *f.IsOffering)
	}

	var incomes []models.Income
	if err := q.Order("date DESC, created_at DESC").Find(&incomes).Error; err != nil {
		return nil, IncomeTotals{}, fmt.Errorf("list income: %w", err)
	}

	var totals IncomeTotals
	for i := range incomes {
		totals.TotalAmount += incomes[i].Amount
		totals.TotalLocal += incomes[i].LocalAmount
		totals.TotalDistrict += incomes[i].DistrictAmount
	}
	totals.TotalAmount = allocation.Round2(totals.TotalAmount)
	totals.TotalLocal = allocation.Round2(totals.TotalLocal)
	totals.TotalDistrict = allocation.Round2(totals.TotalDistrict)
	return incomes, totals, nil
}

// ---------- tithes ----------

// TitheRow is a tithe aggregate with its computed district/local split.
type TitheRow struct {
	models.Tithe
	DistrictAmount float64 `json:"district_amount"`
	LocalAmount    float64 `json:"local_amount"`
}

type TitheTotals struct {
	TotalTithes   float64 `json:"total_tithes"`
	TotalDistrict float64 `json:"total_district"`
	TotalLocal    float64 `json:"total_local"`
}

// Tithes lists tithe aggregates, optionally filtered by month and member,
// with the 77/23 split computed per row.
func (s *Service) Tithes(month *int, memberID string) ([]TitheRow, TitheTotals, error) {
	q := s.db.Model(&models.Tithe{})
	if month != nil {
		q = q.Where("month = ?", *month)
	}
	if memberID != "" {
		q = q.Where("member_id = ? OR member_name = ?", memberID, memberID)
	}

	var tithes []models.Tithe
	if err := q.Order("month DESC, member_name ASC").Find(&tithes).Error; err != nil {
		return nil, TitheTotals{}, fmt.Errorf("list tithes: %w", err)
	}

	rows := make([]TitheRow, 0, len(tithes))
	var totals TitheTotals
	for i := range tithes {
		local, district := allocation.Split(tithes[i].Total)
		rows = append(rows, TitheRow{
			Tithe:          tithes[i],
			DistrictAmount: district,
			LocalAmount:    local,
		})
		totals.TotalTithes += tithes[i].Total
		totals.TotalDistrict += district
		totals.TotalLocal += local
	}
	totals.TotalTithes = allocation.Round2(totals.TotalTithes)
	totals.TotalDistrict = allocation.Round2(totals.TotalDistrict)
	totals.TotalLocal = allocation.Round2(totals.TotalLocal)
	return rows, totals, nil
}

// ---------- offerings / expenses / district expenses ----------

// Offerings lists the monthly offering aggregates, optionally one month.
func (s *Service) Offerings(month *int) ([]models.Offering, error) {
	q := s.db.Model(&models.Offering{})
	if month != nil {
		q = q.Where("month = ?", *month)
	}
	var offerings []models.Offering
	if err := q.Order("month ASC").Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return offerings, nil
}

// Expenses lists expenses of one type, newest first.
func (s *Service) Expenses(expenseType string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("expense_type = ?", expenseType).
		Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// DistrictExpenses lists the district payables, newest first.
func (s *Service) DistrictExpenses() ([]models.DistrictExpense, error) {
	var records []models.DistrictExpense
	if err := s.db.Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list district expenses: %w", err)
	}
	return records, nil
}

// ---------- dashboard ----------

// DashboardSummary carries the headline figures. Income figures use the
// retained local amounts; expense figures use gross.
type DashboardSummary struct {
	TodayIncome  float64 `json:"todayIncome"`
	TodayExpense float64 `json:"todayExpense"`
	MonthIncome  float64 `json:"monthIncome"`
	MonthExpense float64 `json:"monthExpense"`
	NetBalance   float64 `json:"netBalance"`
}

// Dashboard aggregates today's and the current month's totals for the given
// date (YYYY-MM-DD).
func (s *Service) Dashboard(today string) (DashboardSummary, error) {
	var sum DashboardSummary

	if err := s.db.Model(&models.Income{}).Where("date = ?", today).
		Select("COALESCE(SUM(local_amount), 0)").Scan(&sum.TodayIncome).Error; err != nil {
		return sum, fmt.Errorf("today income: %w", err)
	}
	if err := s.db.Model(&models.Expense{}).Where("date = ?", today).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum.TodayExpense).Error; err != nil {
		return sum, fmt.Errorf("today expenses: %w", err)
	}

	month := today
	if len(month) >= 7 {
		month = month[:7]
	}
	if err := s.db.Model(&models.Income{}).Where("date LIKE ?", month+"%").
		Select("COALESCE(SUM(local_amount), 0)").Scan(&sum.MonthIncome).Error; err != nil {
		return sum, fmt.Errorf("month income: %w", err)
	}
	if err := s.db.Model(&models.Expense{}).Where("date LIKE ?", month+"%").
		Select("COALESCE(SUM(amount), 0)").Scan(&sum.MonthExpense).Error; err != nil {
		return sum, fmt.Errorf("month expenses: %w", err)
	}

	sum.TodayIncome = allocation.Round2(sum.TodayIncome)
	sum.TodayExpense = allocation.Round2(sum.TodayExpense)
	sum.MonthIncome = allocation.Round2(sum.MonthIncome)
	sum.MonthExpense = allocation.Round2(sum.MonthExpense)
	sum.NetBalance = allocation.Round2(sum.TodayIncome - sum.TodayExpense)
	return sum, nil
}

// ---------- trial balance ----------

// AccountBalance is one account's debit/credit rollup within a period.
type AccountBalance struct {
	AccountName string  `json:"account_name"`
	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`
}

// TrialBalance sums debits and credits per account for one financial period
// (YYYY-MM). An empty period covers all entries.
func (s *Service) TrialBalance(period string) ([]AccountBalance, error) {
	q := s.db.Model(&models.AccountingEntry{}).
		Select("account_name, COALESCE(SUM(debit_amount), 0) AS total_debit, COALESCE(SUM(credit_amount), 0) AS total_credit").
		Group("account_name").
		Order("account_name ASC")
	if period != "" {
		q = q.Where("period = ?", period)
	}
	var rows []AccountBalance
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("trial balance: %w", err)
	}
	for i := range rows {
		rows[i].TotalDebit = allocation.Round2(rows[i].TotalDebit)
		rows[i].TotalCredit = allocation.Round2(rows[i].TotalCredit)
	}
	return rows, nil
}
