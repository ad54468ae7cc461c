package handler

import (
	"net/http"

	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/report"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense endpoints.
type ExpenseHandler struct {
	Ledger  *ledger.Service
	Reports *report.Service
}

func NewExpenseHandler(l *ledger.Service, r *report.Service) *ExpenseHandler {
	return &ExpenseHandler{Ledger: l, Reports: r}
}

type createExpenseReq struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date"`
	ExpenseType string  `json:"expense_type"`
}

// CreateExpense posts an expense and its debit accounting entry.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req createExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	expense, err := h.Ledger.PostExpense(ledger.ExpenseInput{
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		ExpenseType: req.ExpenseType,
	})
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "expense recorded",
		"id":      expense.ID,
	})
}

// ListExpenses lists expenses of one type, defaulting to "other".
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenseType := c.DefaultQuery("type", "other")

	expenses, err := h.Reports.Expenses(expenseType)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		items = append(items, gin.H{
			"id":           e.ID,
			"category":     e.Category,
			"description":  e.Description,
			"amount":       e.Amount,
			"date":         e.Date,
			"expense_type": e.ExpenseType,
		})
	}

	util.Success(c, util.Response{
		"data":  items,
		"count": len(items),
	})
}

// DeleteExpense reverses an expense posting.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Ledger.ReverseExpense(id); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "expense deleted",
	})
}
