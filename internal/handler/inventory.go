package handler

import (
	"net/http"
	"time"

	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/models"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InventoryHandler serves the church asset inventory endpoints.
type InventoryHandler struct {
	DB     *gorm.DB
	Ledger *ledger.Service
}

func NewInventoryHandler(db *gorm.DB, l *ledger.Service) *InventoryHandler {
	return &InventoryHandler{DB: db, Ledger: l}
}

type createInventoryReq struct {
	ItemName  string `json:"itemName" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Condition string `json:"condition" binding:"required"`
}

// CreateItem adds an inventory item dated today.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req createInventoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "quantity must be positive")
		return
	}

	item := models.InventoryItem{
		ItemName:  req.ItemName,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Condition: req.Condition,
		DateAdded: time.Now().Format("2006-01-02"),
	}
	if err := h.DB.Create(&item).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	util.Success(c, util.Response{
		"message": "inventory item added",
		"id":      item.ID,
	})
}

// ListItems lists inventory, newest first.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var items []models.InventoryItem
	if err := h.DB.Order("date_added DESC").Find(&items).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	list := make([]gin.H, 0, len(items))
	for i := range items {
		it := &items[i]
		list = append(list, gin.H{
			"id":        it.ID,
			"itemName":  it.ItemName,
			"category":  it.Category,
			"quantity":  it.Quantity,
			"condition": it.Condition,
			"dateAdded": it.DateAdded,
		})
	}

	util.Success(c, util.Response{
		"data":  list,
		"count": len(list),
	})
}

// DeleteItem removes an inventory item.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Ledger.DeleteInventoryItem(id); err != nil {
		writeLedgerError(c, err)
		return
	}
	util.Success(c, util.Response{
		"message": "inventory item deleted",
	})
}
