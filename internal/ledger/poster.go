// Package ledger implements posting of financial events (income, tithes,
// offerings, expenses) and their reversal. A posting persists the primary
// record plus its fan-out (a pending district-expense record and the
// double-entry accounting rows) inside one transaction; a reversal removes
// exactly what the posting created.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Afatsiawu/FMS/internal/allocation"
	"github.com/Afatsiawu/FMS/internal/models"
	"github.com/Afatsiawu/FMS/internal/util"

	"gorm.io/gorm"
)

// Source types labelling allocation fan-out rows.
const (
	sourceTithe    = "Tithe"
	sourceOffering = "Offering"
)

// Service posts and reverses financial events. Now is injectable so tests
// can pin the transaction date.
type Service struct {
	db  *gorm.DB
	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, Now: time.Now}
}

func (s *Service) today() string {
	return s.Now().Format("2006-01-02")
}

// periodOf derives the financial period (YYYY-MM) from a YYYY-MM-DD date.
func periodOf(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}

// ---------- inputs ----------

type IncomeInput struct {
	Category    string
	Description string
	Amount      float64
	Date        string // YYYY-MM-DD, defaults to today
	IsTithe     bool
	IsOffering  bool
}

type TitheInput struct {
	MemberName string
	MemberID   string // defaults to MemberName
	Month      int    // 1..12
	Week       int    // 1..5
	Amount     float64
}

type OfferingInput struct {
	Month  int // 1..12
	Week   int // 1..5
	Amount float64
}

type ExpenseInput struct {
	Category    string
	Description string
	Amount      float64
	Date        string
	ExpenseType string // defaults to "other"
}

// ---------- posting ----------

// PostIncome validates and persists an income record. Tithe- or
// offering-flagged income is split 77/23 and fans out into a pending
// district expense plus four balanced accounting entries; plain income is
// retained locally in full with no fan-out.
func (s *Service) PostIncome(in IncomeInput) (*models.Income, error) {
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, validationf("invalid amount: %v", err)
	}
	if in.IsTithe && in.IsOffering {
		return nil, validationf("income cannot be both tithe and offering")
	}
	date := in.Date
	if date == "" {
		date = s.today()
	} else if err := util.ValidateDate(date); err != nil {
		return nil, validationf("invalid date: %v", err)
	}

	amount := allocation.Round2(in.Amount)
	income := models.Income{
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Amount:      amount,
		Date:        date,
		IsTithe:     in.IsTithe,
		IsOffering:  in.IsOffering,
		LocalAmount: amount,
	}
	if in.IsTithe || in.IsOffering {
		income.LocalAmount, income.DistrictAmount = allocation.Split(amount)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&income).Error; err != nil {
			return fmt.Errorf("create income: %w", err)
		}
		if !income.IsTithe && !income.IsOffering {
			return nil
		}
		sourceType := sourceTithe
		if income.IsOffering {
			sourceType = sourceOffering
		}
		return s.postAllocation(tx, fanout{
			sourceType: sourceType,
			sourceDesc: strings.TrimSpace(sourceType + " - " + income.Category),
			refType:    models.RefIncome,
			refID:      income.ID,
			gross:      income.Amount,
			local:      income.LocalAmount,
			district:   income.DistrictAmount,
			date:       date,
		})
	})
	if err != nil {
		return nil, err
	}
	return &income, nil
}

// PostTithe records one member's weekly tithe. The tithe aggregate row is
// upserted by (memberID, month) with the targeted week overwritten; the
// contribution is additionally posted as tithe income with the full fan-out.
func (s *Service) PostTithe(in TitheInput) (*models.Tithe, *models.Income, error) {
	memberName := strings.TrimSpace(in.MemberName)
	if memberName == "" {
		return nil, nil, validationf("member name is required")
	}
	if err := util.ValidateMonth(in.Month); err != nil {
		return nil, nil, validationf("%v", err)
	}
	if err := util.ValidateWeek(in.Week); err != nil {
		return nil, nil, validationf("%v", err)
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, nil, validationf("invalid amount: %v", err)
	}

	memberID := strings.TrimSpace(in.MemberID)
	if memberID == "" {
		memberID = memberName
	}
	amount := allocation.Round2(in.Amount)
	date := s.today()
	desc := fmt.Sprintf("Tithe from %s - %s Week %d",
		memberName, time.Month(in.Month).String(), in.Week)

	var tithe models.Tithe
	var income models.Income

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Upsert the monthly aggregate: same member/month/week replaces
		// the stored value, it does not accumulate.
		err := tx.Where("member_id = ? AND month = ?", memberID, in.Month).
			First(&tithe).Error
		switch {
		case err == nil:
			tithe.SetWeek(in.Week, amount)
			tithe.Date = date
			if err := tx.Save(&tithe).Error; err != nil {
				return fmt.Errorf("update tithe: %w", err)
			}
		case err == gorm.ErrRecordNotFound:
			tithe = models.Tithe{
				MemberName: memberName,
				MemberID:   memberID,
				Month:      in.Month,
				Date:       date,
			}
			tithe.SetWeek(in.Week, amount)
			if err := tx.Create(&tithe).Error; err != nil {
				return fmt.Errorf("create tithe: %w", err)
			}
		default:
			return fmt.Errorf("find tithe: %w", err)
		}

		local, district := allocation.Split(amount)
		income = models.Income{
			Category:       "Tithe - " + memberName,
			Description:    desc,
			Amount:         amount,
			Date:           date,
			IsTithe:        true,
			LocalAmount:    local,
			DistrictAmount: district,
			TitheID:        &tithe.ID,
		}
		if err := tx.Create(&income).Error; err != nil {
			return fmt.Errorf("create tithe income: %w", err)
		}

		return s.postAllocation(tx, fanout{
			sourceType: sourceTithe,
			sourceDesc: fmt.Sprintf("%s - Week %d", memberName, in.Week),
			fullDesc:   desc,
			refType:    models.RefTithe,
			refID:      income.ID,
			gross:      amount,
			local:      local,
			district:   district,
			date:       date,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &tithe, &income, nil
}

// PostOffering records the congregation-wide offering for one week. The
// monthly aggregate is upserted by month; the amount is additionally posted
// as offering income with the full fan-out.
func (s *Service) PostOffering(in OfferingInput) (*models.Offering, *models.Income, error) {
	if err := util.ValidateMonth(in.Month); err != nil {
		return nil, nil, validationf("%v", err)
	}
	if err := util.ValidateWeek(in.Week); err != nil {
		return nil, nil, validationf("%v", err)
	}
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, nil, validationf("invalid amount: %v", err)
	}

	amount := allocation.Round2(in.Amount)
	date := s.today()
	desc := fmt.Sprintf("Offering - Week %d", in.Week)

	var offering models.Offering
	var income models.Income

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("month = ?", in.Month).First(&offering).Error
		switch {
		case err == nil:
			offering.SetWeek(in.Week, amount)
			offering.Date = date
			if err := tx.Save(&offering).Error; err != nil {
				return fmt.Errorf("update offering: %w", err)
			}
		case err == gorm.ErrRecordNotFound:
			offering = models.Offering{Month: in.Month, Date: date}
			offering.SetWeek(in.Week, amount)
			if err := tx.Create(&offering).Error; err != nil {
				return fmt.Errorf("create offering: %w", err)
			}
		default:
			return fmt.Errorf("find offering: %w", err)
		}

		local, district := allocation.Split(amount)
		income = models.Income{
			Category:       "Offering",
			Description:    desc,
			Amount:         amount,
			Date:           date,
			IsOffering:     true,
			LocalAmount:    local,
			DistrictAmount: district,
		}
		if err := tx.Create(&income).Error; err != nil {
			return fmt.Errorf("create offering income: %w", err)
		}

		return s.postAllocation(tx, fanout{
			sourceType: sourceOffering,
			sourceDesc: fmt.Sprintf("Week %d", in.Week),
			fullDesc:   desc,
			refType:    models.RefIncome,
			refID:      income.ID,
			gross:      amount,
			local:      local,
			district:   district,
			date:       date,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return &offering, &income, nil
}

// PostExpense validates and persists an expense plus its single debit
// accounting entry. Expenses carry no district allocation.
func (s *Service) PostExpense(in ExpenseInput) (*models.Expense, error) {
	if err := util.ValidateAmount(in.Amount); err != nil {
		return nil, validationf("invalid amount: %v", err)
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, validationf("category is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, validationf("description is required")
	}
	date := in.Date
	if date == "" {
		date = s.today()
	} else if err := util.ValidateDate(date); err != nil {
		return nil, validationf("invalid date: %v", err)
	}
	expenseType := strings.TrimSpace(in.ExpenseType)
	if expenseType == "" {
		expenseType = "other"
	}

	expense := models.Expense{
		Category:    category,
		Description: description,
		Amount:      allocation.Round2(in.Amount),
		Date:        date,
		ExpenseType: expenseType,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		entry := models.AccountingEntry{
			AccountName:   "Other Expenses",
			DebitAmount:   expense.Amount,
			Description:   expense.Description,
			ReferenceID:   expense.ID,
			ReferenceType: models.RefExpense,
			Date:          date,
			Period:        periodOf(date),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create expense entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ---------- allocation fan-out ----------

// fanout carries the parameters of one district-allocation posting. The same
// fan-out serves income, tithe and offering events; only the labels and the
// reference differ.
type fanout struct {
	sourceType string // "Tithe" or "Offering"
	sourceDesc string // short label used in entry descriptions
	fullDesc   string // district expense description; defaults to "<type> - <sourceDesc>"
	refType    string
	refID      uint
	gross      float64
	local      float64
	district   float64
	date       string
}

// postAllocation creates the pending district expense and the two balanced
// debit/credit pairs recording the split. Called inside the posting
// transaction.
func (s *Service) postAllocation(tx *gorm.DB, f fanout) error {
	desc := f.fullDesc
	if desc == "" {
		desc = f.sourceDesc
	}
	period := periodOf(f.date)

	districtExpense := models.DistrictExpense{
		Source:          f.sourceType + " Allocation",
		Description:     desc,
		OriginalAmount:  f.gross,
		DistrictAmount:  f.district,
		Date:            f.date,
		Status:          models.DistrictStatusPending,
		SourceEventID:   f.refID,
		SourceEventType: f.refType,
	}
	if err := tx.Create(&districtExpense).Error; err != nil {
		return fmt.Errorf("create district expense: %w", err)
	}

	entries := []models.AccountingEntry{
		{
			AccountName: "District Allocation Expense",
			DebitAmount: f.district,
			Description: fmt.Sprintf("%s Allocation: %s", f.sourceType, f.sourceDesc),
		},
		{
			AccountName:  f.sourceType + " Income",
			CreditAmount: f.district,
			Description:  "District Allocation: " + f.sourceDesc,
		},
		{
			AccountName: "Local " + f.sourceType + " Income",
			DebitAmount: f.local,
			Description: fmt.Sprintf("Local %s Income: %s", f.sourceType, f.sourceDesc),
		},
		{
			AccountName:  f.sourceType + " Income",
			CreditAmount: f.local,
			Description:  fmt.Sprintf("Local %s Income: %s", f.sourceType, f.sourceDesc),
		},
	}
	for i := range entries {
		entries[i].ReferenceID = f.refID
		entries[i].ReferenceType = f.refType
		entries[i].Date = f.date
		entries[i].Period = period
		if err := tx.Create(&entries[i]).Error; err != nil {
			return fmt.Errorf("create accounting entry: %w", err)
		}
	}
	return nil
}
