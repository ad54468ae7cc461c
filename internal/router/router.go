package router

import (
	"github.com/Afatsiawu/FMS/internal/config"
	"github.com/Afatsiawu/FMS/internal/handler"
	"github.com/Afatsiawu/FMS/internal/ledger"
	"github.com/Afatsiawu/FMS/internal/report"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and registers all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	ledgerSvc := ledger.NewService(db)
	reportSvc := report.NewService(db)

	// ====== API ======
	api := r.Group("/api")

	incomeHandler := handler.NewIncomeHandler(ledgerSvc, reportSvc)
	api.POST("/income", incomeHandler.CreateIncome)
	api.GET("/income", incomeHandler.ListIncome)
	api.DELETE("/income/:id", incomeHandler.DeleteIncome)

	titheHandler := handler.NewTitheHandler(ledgerSvc, reportSvc)
	api.POST("/tithes", titheHandler.CreateTithe)
	api.GET("/tithes", titheHandler.ListTithes)
	api.DELETE("/tithes/:id", titheHandler.DeleteTithe)

	offeringHandler := handler.NewOfferingHandler(ledgerSvc, reportSvc)
	api.POST("/offerings", offeringHandler.CreateOffering)
	api.GET("/offerings", offeringHandler.ListOfferings)

	expenseHandler := handler.NewExpenseHandler(ledgerSvc, reportSvc)
	api.POST("/expenses", expenseHandler.CreateExpense)
	api.GET("/expenses", expenseHandler.ListExpenses)
	api.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	districtHandler := handler.NewDistrictHandler(db, reportSvc)
	api.POST("/district-expenses", districtHandler.CreateDistrictExpense)
	api.GET("/district-expenses", districtHandler.ListDistrictExpenses)

	inventoryHandler := handler.NewInventoryHandler(db, ledgerSvc)
	api.POST("/inventory", inventoryHandler.CreateItem)
	api.GET("/inventory", inventoryHandler.ListItems)
	api.DELETE("/inventory/:id", inventoryHandler.DeleteItem)

	reportHandler := handler.NewReportHandler(reportSvc)
	api.GET("/reports/dashboard", reportHandler.Dashboard)
	api.GET("/reports/trial-balance", reportHandler.TrialBalance)

	backupHandler := handler.NewBackupHandler(db, cfg.Backup.Dir)
	api.POST("/backups", backupHandler.CreateBackup)
	api.GET("/backups", backupHandler.ListBackups)
	api.GET("/backups/:id/download", backupHandler.DownloadBackup)
	api.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	api.DELETE("/backups/:id", backupHandler.DeleteBackup)

	exportHandler := handler.NewExportHandler(db)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
