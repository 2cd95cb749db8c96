package catalog

import (
	"errors"
	"fmt"
	"strings"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSKURequest struct {
	Code                 string          `json:"code" validate:"required,max=50"`
	Name                 string          `json:"name" validate:"required,max=150"`
	Category             string          `json:"category" validate:"max=100"`
	CurrentStock         int             `json:"current_stock" validate:"gte=0"`
	MinimumStock         int             `json:"minimum_stock" validate:"gte=0"`
	CostPrice            decimal.Decimal `json:"cost_price"`
	SellingPrice         decimal.Decimal `json:"selling_price"`
	WarehouseID          uint            `json:"warehouse_id" validate:"required"`
	PrimarySupplierID    uint            `json:"primary_supplier_id" validate:"required"`
	AlternateSupplierIDs []uint          `json:"alternate_supplier_ids"`
}

type UpdateSKURequest struct {
	Name                 *string          `json:"name"`
	Category             *string          `json:"category"`
	MinimumStock         *int             `json:"minimum_stock"`
	CostPrice            *decimal.Decimal `json:"cost_price"`
	SellingPrice         *decimal.Decimal `json:"selling_price"`
	WarehouseID          *uint            `json:"warehouse_id"`
	PrimarySupplierID    *uint            `json:"primary_supplier_id"`
	AlternateSupplierIDs *[]uint          `json:"alternate_supplier_ids"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required,max=255"`
}

// POST /api/skus (admin)
func CreateSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSKURequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Code = strings.TrimSpace(body.Code)
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(body); err != nil {
			return err
		}
		if body.CostPrice.IsNegative() || body.SellingPrice.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Prices cannot be negative")
		}

		var existing models.SKU
		if err := database.DB.Where("code = ?", body.Code).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "This SKU code is already in use")
		}

		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, body.WarehouseID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse not found")
		}
		var supplier models.Supplier
		if err := database.DB.First(&supplier, body.PrimarySupplierID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Primary supplier not found")
		}

		alternates, err := loadSuppliers(body.AlternateSupplierIDs)
		if err != nil {
			return err
		}

		sku := models.SKU{
			Code:               body.Code,
			Name:               body.Name,
			Category:           strings.TrimSpace(body.Category),
			CurrentStock:       body.CurrentStock,
			MinimumStock:       body.MinimumStock,
			CostPrice:          body.CostPrice,
			SellingPrice:       body.SellingPrice,
			WarehouseID:        body.WarehouseID,
			PrimarySupplierID:  body.PrimarySupplierID,
			AlternateSuppliers: alternates,
			IsActive:           true,
		}

		if err := database.DB.Create(&sku).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(sku)
	}
}

// GET /api/skus?q=&category=&include_inactive=
func ListSKUsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Preload("Warehouse").Preload("PrimarySupplier")

		if c.Query("include_inactive") != "true" {
			dbq = dbq.Where("is_active = ?", true)
		}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			dbq = dbq.Where("category = ?", category)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			dbq = dbq.Where("name ILIKE ? OR code ILIKE ?", like, like)
		}

		var skus []models.SKU
		if err := dbq.Order("code asc").Find(&skus).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKUs could not be listed")
		}
		return c.JSON(skus)
	}
}

// GET /api/skus/:id
func GetSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sku models.SKU
		err := database.DB.
			Preload("Warehouse").
			Preload("PrimarySupplier").
			Preload("AlternateSuppliers").
			First(&sku, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "SKU not found")
		}
		return c.JSON(sku)
	}
}

// PUT /api/skus/:id (admin)
func UpdateSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sku models.SKU
		if err := database.DB.First(&sku, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "SKU not found")
		}

		var body UpdateSKURequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			sku.Name = name
		}
		if body.Category != nil {
			sku.Category = strings.TrimSpace(*body.Category)
		}
		if body.MinimumStock != nil {
			if *body.MinimumStock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Minimum stock cannot be negative")
			}
			sku.MinimumStock = *body.MinimumStock
		}
		if body.CostPrice != nil {
			if body.CostPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Cost price cannot be negative")
			}
			sku.CostPrice = *body.CostPrice
		}
		if body.SellingPrice != nil {
			if body.SellingPrice.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Selling price cannot be negative")
			}
			sku.SellingPrice = *body.SellingPrice
		}
		if body.WarehouseID != nil {
			var warehouse models.Warehouse
			if err := database.DB.First(&warehouse, *body.WarehouseID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Warehouse not found")
			}
			sku.WarehouseID = *body.WarehouseID
		}
		if body.PrimarySupplierID != nil {
			var supplier models.Supplier
			if err := database.DB.First(&supplier, *body.PrimarySupplierID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Primary supplier not found")
			}
			sku.PrimarySupplierID = *body.PrimarySupplierID
		}

		// profit margin is recomputed by the BeforeSave hook
		if err := database.DB.Save(&sku).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU could not be updated")
		}

		if body.AlternateSupplierIDs != nil {
			alternates, err := loadSuppliers(*body.AlternateSupplierIDs)
			if err != nil {
				return err
			}
			if err := database.DB.Model(&sku).Association("AlternateSuppliers").Replace(alternates); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Alternate suppliers could not be updated")
			}
		}

		return c.JSON(sku)
	}
}

// DELETE /api/skus/:id (admin): soft deactivate, never a hard delete
func DeactivateSKUHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sku models.SKU
		if err := database.DB.First(&sku, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "SKU not found")
		}

		sku.IsActive = false
		if err := database.DB.Save(&sku).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "SKU could not be deactivated")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/skus/:id/adjust-stock
// Manual on-hand correction. The adjustment is applied conditionally so the
// resulting stock can never go below the reserved quantity.
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var sku models.SKU
		if err := database.DB.First(&sku, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "SKU not found")
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		before := sku.CurrentStock
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.SKU{}).
				Where("id = ? AND current_stock + ? >= reserved_stock", sku.ID, body.Delta).
				Update("current_stock", gorm.Expr("current_stock + ?", body.Delta))
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Stock could not be adjusted")
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Adjustment of %d would drop stock below the reserved quantity", body.Delta))
			}

			if err := tx.First(&sku, sku.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "SKU could not be reloaded")
			}

			return events.WriteTx(tx, events.LogOptions{
				EntityType: "sku",
				EntityID:   sku.ID,
				Action:     models.EventActionStockAdjusted,
				ActorID:    actorID,
				ActorName:  actorName,
				Remarks:    body.Reason,
				Before:     fiber.Map{"current_stock": before},
				After:      fiber.Map{"current_stock": sku.CurrentStock},
			})
		})
		if err != nil {
			return err
		}

		return c.JSON(sku)
	}
}

func loadSuppliers(ids []uint) ([]models.Supplier, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var suppliers []models.Supplier
	if err := database.DB.Find(&suppliers, ids).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Alternate supplier not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Supplier lookup failed")
	}
	if len(suppliers) != len(ids) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Alternate supplier not found")
	}
	return suppliers, nil
}
