package handler

import (
	"net/http"
	"time"

	"github.com/Afatsiawu/FMS/internal/report"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the read-only report endpoints.
type ReportHandler struct {
	Reports *report.Service
	Now     func() time.Time
}

func NewReportHandler(r *report.Service) *ReportHandler {
	return &ReportHandler{Reports: r, Now: time.Now}
}

// Dashboard returns today's and the current month's headline figures.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	today := h.Now().Format("2006-01-02")

	sum, err := h.Reports.Dashboard(today)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	util.Success(c, util.Response{
		"todayIncome":  sum.TodayIncome,
		"todayExpense": sum.TodayExpense,
		"monthIncome":  sum.MonthIncome,
		"monthExpense": sum.MonthExpense,
		"netBalance":   sum.NetBalance,
	})
}

// TrialBalance returns the per-account debit/credit rollup for a period
// (?period=YYYY-MM, defaults to the current month).
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		period = h.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid period, want YYYY-MM")
		return
	}

	rows, err := h.Reports.TrialBalance(period)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var totalDebit, totalCredit float64
	items := make([]gin.H, 0, len(rows))
	for _, r := range rows {
		totalDebit += r.TotalDebit
		totalCredit += r.TotalCredit
		items = append(items, gin.H{
			"account_name": r.AccountName,
			"total_debit":  r.TotalDebit,
			"total_credit": r.TotalCredit,
		})
	}

	util.Success(c, util.Response{
		"period":       period,
		"accounts":     items,
		"total_debit":  totalDebit,
		"total_credit": totalCredit,
	})
}
