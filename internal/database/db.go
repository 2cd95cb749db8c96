package database

import (
	"log"

	"stockdesk-backend/internal/config"
	"stockdesk-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.UserPermission{},
		&models.Customer{},
		&models.Warehouse{},
		&models.Supplier{},
		&models.SKU{},
		&models.PurchaseIndent{},
		&models.PurchaseIndentItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.StockAllocation{},
		&models.DispatchedItem{},
		&models.DispatchLog{},
		&models.DispatchLogItem{},
		&models.EventLog{},
		&models.Sequence{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	seedPermissions()

	log.Println("Database connection established. Migration complete.")
}

// seedPermissions keeps the permission catalog in sync with the routes the
// API protects. Re-running is safe: existing routes are left untouched.
func seedPermissions() {
	catalog := []models.Permission{
		{Name: "Delete sales orders", Route: "sales-orders.delete", Description: "Remove draft sales orders"},
		{Name: "Delete purchase indents", Route: "purchase-indents.delete", Description: "Remove pending purchase indents"},
		{Name: "Delete purchase orders", Route: "purchase-orders.delete", Description: "Remove pending purchase orders"},
		{Name: "Approve purchase indents", Route: "purchase-indents.approve", Description: "Approve or reject pending indents"},
		{Name: "Dispatch sales orders", Route: "sales-orders.dispatch", Description: "Dispatch confirmed sales orders"},
		{Name: "Adjust stock", Route: "skus.adjust-stock", Description: "Manual stock corrections"},
	}

	for _, p := range catalog {
		var existing models.Permission
		err := DB.Where("route = ?", p.Route).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if createErr := DB.Create(&p).Error; createErr != nil {
				log.Printf("Permission %q could not be seeded: %v", p.Route, createErr)
			}
		}
	}
}
