package handler

import (
	"net/http"
	"strconv"

	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/report"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
)

// OfferingHandler serves the offering endpoints.
type OfferingHandler struct {
	Ledger  *ledger.Service
	Reports *report.Service
}

func NewOfferingHandler(l *ledger.Service, r *report.Service) *OfferingHandler {
	return &OfferingHandler{Ledger: l, Reports: r}
}

type createOfferingReq struct {
	Month  int     `json:"month" binding:"required"`
	Week   int     `json:"week" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// CreateOffering records the congregation offering for one week of a month.
func (h *OfferingHandler) CreateOffering(c *gin.Context) {
	var req createOfferingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	offering, income, err := h.Ledger.PostOffering(ledger.OfferingInput{
		Month:  req.Month,
		Week:   req.Week,
		Amount: req.Amount,
	})
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message":         "offering recorded",
		"id":              offering.ID,
		"total":           offering.Total,
		"local_amount":    income.LocalAmount,
		"district_amount": income.DistrictAmount,
	})
}

// ListOfferings lists monthly offering aggregates.
func (h *OfferingHandler) ListOfferings(c *gin.Context) {
	var month *int
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || util.ValidateMonth(v) != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid month")
			return
		}
		month = &v
	}

	offerings, err := h.Reports.Offerings(month)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(offerings))
	for i := range offerings {
		o := &offerings[i]
		items = append(items, gin.H{
			"id":    o.ID,
			"month": o.Month,
			"week1": o.Week1,
			"week2": o.Week2,
			"week3": o.Week3,
			"week4": o.Week4,
			"week5": o.Week5,
			"total": o.Total,
			"date":  o.Date,
		})
	}

	util.Success(c, util.Response{
		"data":  items,
		"count": len(items),
	})
}
