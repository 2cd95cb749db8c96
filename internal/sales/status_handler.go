package sales

import (
	"fmt"
	"strings"
	"time"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatusChangeRequest struct {
	Status  models.SalesOrderStatus `json:"status" validate:"required"`
	Remarks string                  `json:"remarks" validate:"max=500"`
}

// PUT /api/sales-orders/:id/status
// Confirming a draft reserves stock; cancelling a reserved order releases it.
// Each case runs as one transaction so counters, allocation rows and the
// event entry move together.
func ChangeStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body StatusChangeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var order models.SalesOrder
		if err := database.DB.Preload("Items.SKU").First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales order not found")
		}

		if body.Status == models.SOStatusDispatched {
			return fiber.NewError(fiber.StatusBadRequest, "Use the dispatch endpoint to dispatch an order")
		}
		if !CanTransition(order.Status, body.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Sales order %s cannot go from %s to %s", order.Code, order.Status, body.Status))
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		from := order.Status
		remarks := strings.TrimSpace(body.Remarks)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			switch {
			case from == models.SOStatusDraft && body.Status == models.SOStatusConfirmed:
				if err := reserveStock(tx, &order, actorID); err != nil {
					return err
				}
			case body.Status == models.SOStatusCancelled && ReleasesReservation(from):
				if err := releaseStock(tx, &order); err != nil {
					return err
				}
			}

			order.Status = body.Status
			if err := tx.Omit("Items").Save(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sales order could not be updated")
			}

			action := models.EventActionUpdated
			if body.Status == models.SOStatusConfirmed {
				action = models.EventActionConfirmed
			} else if body.Status == models.SOStatusCancelled {
				action = models.EventActionCancelled
			}
			return events.WriteTx(tx, events.LogOptions{
				EntityType: "sales_order",
				EntityID:   order.ID,
				Action:     action,
				ActorID:    actorID,
				ActorName:  actorName,
				Remarks:    remarks,
				Before:     fiber.Map{"status": from},
				After:      fiber.Map{"status": order.Status},
			})
		})
		if err != nil {
			return err
		}

		if err := loadOrder(&order, order.ID); err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// reserveStock earmarks every line quantity on its SKU. The increment is
// conditional, so a reservation can never push ReservedStock past
// CurrentStock, and each line writes an allocation row: the ledger the
// counter is derived from.
func reserveStock(tx *gorm.DB, order *models.SalesOrder, actorID uint) error {
	for _, item := range order.Items {
		res := tx.Model(&models.SKU{}).
			Where("id = ? AND reserved_stock + ? <= current_stock", item.SKUID, item.Quantity).
			Update("reserved_stock", gorm.Expr("reserved_stock + ?", item.Quantity))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock could not be reserved")
		}
		if res.RowsAffected == 0 {
			var sku models.SKU
			available := 0
			code := fmt.Sprintf("#%d", item.SKUID)
			if err := tx.First(&sku, item.SKUID).Error; err == nil {
				available = sku.CurrentStock - sku.ReservedStock
				code = sku.Code
			}
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for %s: available %d, requested %d",
					code, available, item.Quantity))
		}

		allocation := models.StockAllocation{
			SalesOrderID: order.ID,
			SKUID:        item.SKUID,
			Quantity:     item.Quantity,
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Allocation could not be recorded")
		}
	}

	now := time.Now()
	order.ConfirmedByID = &actorID
	order.ConfirmedAt = &now
	return nil
}

// releaseStock hands back every unreleased allocation of the order.
func releaseStock(tx *gorm.DB, order *models.SalesOrder) error {
	var allocations []models.StockAllocation
	if err := tx.Where("sales_order_id = ? AND released_at IS NULL", order.ID).Find(&allocations).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Allocations could not be loaded")
	}

	now := time.Now()
	for _, allocation := range allocations {
		err := tx.Model(&models.SKU{}).
			Where("id = ?", allocation.SKUID).
			Update("reserved_stock", gorm.Expr("GREATEST(reserved_stock - ?, 0)", allocation.Quantity)).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Reservation could not be released")
		}
		if err := tx.Model(&models.StockAllocation{}).
			Where("id = ?", allocation.ID).
			Update("released_at", now).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Allocation could not be released")
		}
	}
	return nil
}
