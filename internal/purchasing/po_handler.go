package purchasing

import (
	"fmt"
	"strings"
	"time"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/sequence"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type POItemRequest struct {
	SKUID     uint            `json:"sku_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tax       decimal.Decimal `json:"tax"`
}

type CreatePORequest struct {
	IndentID     uint            `json:"indent_id" validate:"required"`
	VendorID     uint            `json:"vendor_id" validate:"required"`
	Items        []POItemRequest `json:"items" validate:"required,min=1,dive"`
	ExpectedDate *time.Time      `json:"expected_date"`
	Notes        string          `json:"notes" validate:"max=500"`
}

type UpdatePORequest struct {
	Status       *models.POStatus `json:"status"`
	ExpectedDate *time.Time       `json:"expected_date"`
	Notes        *string          `json:"notes"`
}

// POST /api/purchase-orders
// No stock moves here: purchase orders only record the inbound commitment.
func CreatePOHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePORequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var indent models.PurchaseIndent
		if err := database.DB.First(&indent, body.IndentID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Indent not found")
		}
		if !CanRaisePO(indent.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Indent %s is %s, a purchase order needs an Approved indent", indent.Code, indent.Status))
		}

		var vendor models.Supplier
		if err := database.DB.First(&vendor, body.VendorID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Vendor not found")
		}

		subtotal := decimal.Zero
		totalTax := decimal.Zero
		items := make([]models.PurchaseOrderItem, 0, len(body.Items))
		for _, itemReq := range body.Items {
			if itemReq.UnitPrice.IsNegative() || itemReq.Tax.IsNegative() {
				return fiber.NewError(fiber.StatusBadRequest, "Unit price and tax cannot be negative")
			}
			var sku models.SKU
			if err := database.DB.First(&sku, itemReq.SKUID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("SKU not found: %d", itemReq.SKUID))
			}

			lineTotal := POLineTotal(itemReq.Quantity, itemReq.UnitPrice, itemReq.Tax)
			subtotal = subtotal.Add(itemReq.UnitPrice.Mul(decimal.NewFromInt(int64(itemReq.Quantity))))
			totalTax = totalTax.Add(itemReq.Tax)

			items = append(items, models.PurchaseOrderItem{
				SKUID:       itemReq.SKUID,
				Quantity:    itemReq.Quantity,
				UnitPrice:   itemReq.UnitPrice,
				Tax:         itemReq.Tax,
				TotalAmount: lineTotal,
			})
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		order := models.PurchaseOrder{
			Status:       models.POStatusPending,
			IndentID:     indent.ID,
			VendorID:     vendor.ID,
			Subtotal:     subtotal,
			TotalTax:     totalTax,
			TotalAmount:  subtotal.Add(totalTax),
			CreatedByID:  actorID,
			ExpectedDate: body.ExpectedDate,
			Notes:        strings.TrimSpace(body.Notes),
			Items:        items,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			code, err := sequence.NextCode(tx, sequence.CounterPurchaseOrder, "PO", 4)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "PO code could not be allocated")
			}
			order.Code = code
			if err := tx.Create(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Purchase order could not be created")
			}

			// the indent is consumed by the PO
			res := tx.Model(&models.PurchaseIndent{}).
				Where("id = ? AND status IN ?", indent.ID,
					[]models.IndentStatus{models.IndentStatusApproved, models.IndentStatusPOPending}).
				Update("status", models.IndentStatusPOCreated)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Indent status could not be updated")
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Indent %s was consumed by another purchase order", indent.Code))
			}

			return events.WriteTx(tx, events.LogOptions{
				EntityType: "purchase_indent",
				EntityID:   indent.ID,
				Action:     models.EventActionPOCreated,
				ActorID:    actorID,
				ActorName:  actorName,
				Remarks:    order.Code,
				Before:     fiber.Map{"status": indent.Status},
				After:      fiber.Map{"status": models.IndentStatusPOCreated},
			})
		})
		if err != nil {
			return err
		}

		if err := loadPO(&order, order.ID); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// GET /api/purchase-orders?status=
func ListPOsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.
			Preload("Vendor").
			Preload("CreatedBy").
			Preload("Items.SKU")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var orders []models.PurchaseOrder
		if err := dbq.Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Purchase orders could not be listed")
		}
		return c.JSON(orders)
	}
}

// GET /api/purchase-orders/:id
func GetPOHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.PurchaseOrder
		if err := loadPO(&order, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// PUT /api/purchase-orders/:id
// Only pending orders are editable; a pending order may also be moved
// forward in status here.
func UpdatePOHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.PurchaseOrder
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
		}

		var body UpdatePORequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if order.Status != models.POStatusPending {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Purchase order %s is %s and locked for changes", order.Code, order.Status))
		}

		if body.ExpectedDate != nil {
			order.ExpectedDate = body.ExpectedDate
		}
		if body.Notes != nil {
			order.Notes = strings.TrimSpace(*body.Notes)
		}
		if body.Status != nil {
			switch *body.Status {
			case models.POStatusPending, models.POStatusIssued, models.POStatusReceived, models.POStatusCancelled:
				order.Status = *body.Status
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
			}
		}

		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Purchase order could not be updated")
		}
		return c.JSON(order)
	}
}

// DELETE /api/purchase-orders/:id (pending only)
func DeletePOHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.PurchaseOrder
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
		}

		if order.Status != models.POStatusPending {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Purchase order %s is %s and cannot be deleted", order.Code, order.Status))
		}

		if err := database.DB.Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Purchase order could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func loadPO(order *models.PurchaseOrder, id any) error {
	err := database.DB.
		Preload("Indent").
		Preload("Vendor").
		Preload("CreatedBy").
		Preload("Items.SKU").
		First(order, "purchase_orders.id = ?", id).Error
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Purchase order not found")
	}
	return nil
}
