package handler

import (
	"net/http"

	"github.com/Afatsiawu/FMS/internal/allocation"
	"github.com/Afatsiawu/FMS/internal/models"
	"github.com/Afatsiawu/FMS/internal/report"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DistrictHandler serves the district-expense endpoints. Most district
// expenses are created by the ledger poster as a posting side effect; the
// POST endpoint covers manual entries.
type DistrictHandler struct {
	DB      *gorm.DB
	Reports *report.Service
}

func NewDistrictHandler(db *gorm.DB, r *report.Service) *DistrictHandler {
	return &DistrictHandler{DB: db, Reports: r}
}

type createDistrictReq struct {
	Source         string  `json:"source" binding:"required"`
	OriginalAmount float64 `json:"originalAmount" binding:"required"`
	DistrictAmount float64 `json:"districtAmount" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	Status         string  `json:"status"`
}

// CreateDistrictExpense records a manually entered district payable.
func (h *DistrictHandler) CreateDistrictExpense(c *gin.Context) {
	var req createDistrictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := util.ValidateAmount(req.DistrictAmount); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err := util.ValidateDate(req.Date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = models.DistrictStatusPending
	}

	record := models.DistrictExpense{
		Source:         req.Source,
		OriginalAmount: allocation.Round2(req.OriginalAmount),
		DistrictAmount: allocation.Round2(req.DistrictAmount),
		Date:           req.Date,
		Status:         status,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	util.Success(c, util.Response{
		"message": "district expense recorded",
		"id":      record.ID,
	})
}

// ListDistrictExpenses lists the district payables, newest first.
func (h *DistrictHandler) ListDistrictExpenses(c *gin.Context) {
	records, err := h.Reports.DistrictExpenses()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(records))
	for i := range records {
		r := &records[i]
		items = append(items, gin.H{
			"id":             r.ID,
			"source":         r.Source,
			"description":    r.Description,
			"originalAmount": r.OriginalAmount,
			"districtAmount": r.DistrictAmount,
			"date":           r.Date,
			"status":         r.Status,
		})
	}

	util.Success(c, util.Response{
		"data":  items,
		"count": len(items),
	})
}
