package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Afatsiawu/FMS/internal/models"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler exports income records as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) loadIncome(c *gin.Context) ([]models.Income, bool) {
	var incomes []models.Income
	if err := h.DB.Order("date DESC, created_at DESC").Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return nil, false
	}
	return incomes, true
}

// ExportCSV streams all income records as CSV.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	incomes, ok := h.loadIncome(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"income_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Date", "Category", "Description", "Amount",
		"Local Amount", "District Amount", "Tithe", "Offering"})

	for i := range incomes {
		in := &incomes[i]
		writer.Write([]string{
			in.Date,
			in.Category,
			in.Description,
			strconv.FormatFloat(in.Amount, 'f', 2, 64),
			strconv.FormatFloat(in.LocalAmount, 'f', 2, 64),
			strconv.FormatFloat(in.DistrictAmount, 'f', 2, 64),
			strconv.FormatBool(in.IsTithe),
			strconv.FormatBool(in.IsOffering),
		})
	}
}

// ExportXLSX writes all income records into a spreadsheet.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	incomes, ok := h.loadIncome(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Income"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Category", "Description", "Amount",
		"Local Amount", "District Amount", "Tithe", "Offering"}
	for col, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}

	for row, in := range incomes {
		values := []interface{}{
			in.Date, in.Category, in.Description, in.Amount,
			in.LocalAmount, in.DistrictAmount, in.IsTithe, in.IsOffering,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"income_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write spreadsheet failed")
	}
}
