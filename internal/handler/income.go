package handler

import (
	"net/http"

	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/report"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
)

// IncomeHandler serves the income endpoints.
type IncomeHandler struct {
	Ledger  *ledger.Service
	Reports *report.Service
}

func NewIncomeHandler(l *ledger.Service, r *report.Service) *IncomeHandler {
	return &IncomeHandler{Ledger: l, Reports: r}
}

type createIncomeReq struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date"`
	IsTithe     bool    `json:"is_tithe"`
	IsOffering  bool    `json:"is_offering"`
}

// CreateIncome posts an income record. Tithe/offering income fans out into
// the district allocation and accounting entries.
func (h *IncomeHandler) CreateIncome(c *gin.Context) {
	var req createIncomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	income, err := h.Ledger.PostIncome(ledger.IncomeInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		IsTithe:     req.IsTithe,
		IsOffering:  req.IsOffering,
	})
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"id":              income.ID,
		"local_amount":    income.LocalAmount,
		"district_amount": income.DistrictAmount,
	})
}

// ListIncome lists income records filtered by date range and flags, with
// gross/local/district totals.
func (h *IncomeHandler) ListIncome(c *gin.Context) {
	filter := report.IncomeFilter{
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		IsTithe:    parseBoolQuery(c, "is_tithe"),
		IsOffering: parseBoolQuery(c, "is_offering"),
	}
	if filter.StartDate != "" {
		if err := util.ValidateDate(filter.StartDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start_date, want YYYY-MM-DD")
			return
		}
	}
	if filter.EndDate != "" {
		if err := util.ValidateDate(filter.EndDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end_date, want YYYY-MM-DD")
			return
		}
	}

	incomes, totals, err := h.Reports.Incomes(filter)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(incomes))
	for i := range incomes {
		in := &incomes[i]
		items = append(items, gin.H{
			"id":              in.ID,
			"category":        in.Category,
			"description":     in.Description,
			"amount":          in.Amount,
			"date":            in.Date,
			"is_tithe":        in.IsTithe,
			"is_offering":     in.IsOffering,
			"local_amount":    in.LocalAmount,
			"district_amount": in.DistrictAmount,
			"created_at":      in.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"data":   items,
		"totals": totals,
		"count":  len(items),
	})
}

// DeleteIncome reverses an income posting: the accounting entries, the
// pending district expense and the income row go together.
func (h *IncomeHandler) DeleteIncome(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Ledger.ReverseIncome(id); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "income record deleted",
	})
}
