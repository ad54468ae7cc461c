package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Afatsiawu/FMS/internal/models"
	"github.com/Afatsiawu/FMS/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler writes and restores JSON snapshots of the financial tables.
type BackupHandler struct {
	DB        *gorm.DB
	BackupDir string
}

func NewBackupHandler(db *gorm.DB, backupDir string) *BackupHandler {
	return &BackupHandler{DB: db, BackupDir: backupDir}
}

// backupData is the snapshot file content. Row ids are preserved so the
// accounting entries and district expenses keep pointing at their source
// records after a restore.
type backupData struct {
	Created          time.Time                `json:"created"`
	Incomes          []models.Income          `json:"incomes"`
	Tithes           []models.Tithe           `json:"tithes"`
	Offerings        []models.Offering        `json:"offerings"`
	Expenses         []models.Expense         `json:"expenses"`
	DistrictExpenses []models.DistrictExpense `json:"district_expenses"`
	Entries          []models.AccountingEntry `json:"accounting_entries"`
	Inventory        []models.InventoryItem   `json:"inventory"`
}

// CreateBackup snapshots every financial table into one file.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	var data backupData
	data.Created = time.Now()

	loads := []struct {
		name string
		dest interface{}
	}{
		{"income", &data.Incomes},
		{"tithes", &data.Tithes},
		{"offerings", &data.Offerings},
		{"expenses", &data.Expenses},
		{"district expenses", &data.DistrictExpenses},
		{"accounting entries", &data.Entries},
		{"inventory", &data.Inventory},
	}
	for _, l := range loads {
		if err := h.DB.Order("id ASC").Find(l.dest).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr,
				"read "+l.name+" failed")
			return
		}
	}

	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "serialize failed")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create backup dir failed")
		return
	}

	fileName := fmt.Sprintf("backup-%s.json", uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, raw, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write backup file failed")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save backup record failed")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists existing snapshots, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	var list []models.Backup
	if err := h.DB.Order("created_at DESC").Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
	})
}

// DownloadBackup serves a snapshot file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes a snapshot record and its file.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	// file first, then record
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete backup record failed")
		return
	}

	util.Success(c, util.Response{
		"message": "backup deleted",
	})
}

// RestoreBackup replaces the financial tables with a snapshot's contents,
// all inside one transaction.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	backup, ok := h.findBackup(c)
	if !ok {
		return
	}

	raw, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read backup file failed")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "parse backup data failed")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		wipe := []interface{}{
			&models.AccountingEntry{},
			&models.DistrictExpense{},
			&models.Income{},
			&models.Tithe{},
			&models.Offering{},
			&models.Expense{},
			&models.InventoryItem{},
		}
		for _, m := range wipe {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		for i := range data.Incomes {
			if err := tx.Create(&data.Incomes[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Tithes {
			if err := tx.Create(&data.Tithes[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Offerings {
			if err := tx.Create(&data.Offerings[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Expenses {
			if err := tx.Create(&data.Expenses[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.DistrictExpenses {
			if err := tx.Create(&data.DistrictExpenses[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Entries {
			if err := tx.Create(&data.Entries[i]).Error; err != nil {
				return err
			}
		}
		for i := range data.Inventory {
			if err := tx.Create(&data.Inventory[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore failed")
		return
	}

	util.Success(c, util.Response{
		"message":       "restore complete",
		"income_count":  len(data.Incomes),
		"tithe_count":   len(data.Tithes),
		"expense_count": len(data.Expenses),
	})
}

func (h *BackupHandler) findBackup(c *gin.Context) (*models.Backup, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}

	var backup models.Backup
	if err := h.DB.First(&backup, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return nil, false
	}
	return &backup, true
}
