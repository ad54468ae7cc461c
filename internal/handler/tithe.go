package handler

import (
	"net/http"
	"strconv"

	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/report"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
)

// TitheHandler serves the tithe endpoints.
type TitheHandler struct {
	Ledger  *ledger.Service
	Reports *report.Service
}

func NewTitheHandler(l *ledger.Service, r *report.Service) *TitheHandler {
	return &TitheHandler{Ledger: l, Reports: r}
}

type createTitheReq struct {
	MemberName string  `json:"memberName" binding:"required"`
	MemberID   string  `json:"memberId"`
	Month      int     `json:"month" binding:"required"`
	Week       int     `json:"week" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
}

// CreateTithe records a member's weekly tithe. Posting the same
// member/month/week again replaces that week's value.
func (h *TitheHandler) CreateTithe(c *gin.Context) {
	var req createTitheReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	tithe, income, err := h.Ledger.PostTithe(ledger.TitheInput{
		MemberName: req.MemberName,
		MemberID:   req.MemberID,
		Month:      req.Month,
		Week:       req.Week,
		Amount:     req.Amount,
	})
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":         "tithe recorded",
		"id":              tithe.ID,
		"total":           tithe.Total,
		"local_amount":    income.LocalAmount,
		"district_amount": income.DistrictAmount,
	})
}

// ListTithes lists tithe aggregates filtered by month and member, with the
// computed split per row.
func (h *TitheHandler) ListTithes(c *gin.Context) {
	var month *int
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || util.ValidateMonth(v) != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
			return
		}
		month = &v
	}

	rows, totals, err := h.Reports.Tithes(month, c.Query("member_id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		items = append(items, gin.H{
			"id":              r.ID,
			"memberName":      r.MemberName,
			"memberId":        r.MemberID,
			"month":           r.Month,
			"week1":           r.Week1,
			"week2":           r.Week2,
			"week3":           r.Week3,
			"week4":           r.Week4,
			"week5":           r.Week5,
			"total":           r.Total,
			"date":            r.Date,
			"district_amount": r.DistrictAmount,
			"local_amount":    r.LocalAmount,
		})
	}

	util.Success(c, util.Response{
		"data":   items,
		"totals": totals,
		"count":  len(items),
	})
}

// DeleteTithe reverses a tithe aggregate and every income posting made
// through it.
func (h *TitheHandler) DeleteTithe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Ledger.ReverseTithe(id); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "tithe record deleted",
	})
}
