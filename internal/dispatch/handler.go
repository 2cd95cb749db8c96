package dispatch

import (
	"fmt"
	"strings"
	"time"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/logger"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DispatchItemRequest struct {
	SKUID    uint `json:"sku_id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

type DispatchRequest struct {
	Items []DispatchItemRequest `json:"items" validate:"required,min=1,dive"`
	Note  string                `json:"note" validate:"max=500"`
}

// PUT /api/sales-orders/:id/dispatch
// Moves stock out of the warehouse: each line conditionally decrements the
// SKU's on-hand and reserved counters, then the immutable DispatchLog, the
// order's dispatched-items snapshot, and the order status are written. All of
// it is one transaction, so a failed line rolls every decrement back.
func DispatchOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DispatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var order models.SalesOrder
		if err := database.DB.Preload("Items").First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales order not found")
		}

		if order.Status != models.SOStatusPendingDispatch {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Sales order %s is %s, only pending_dispatch orders can be dispatched",
					order.Code, order.Status))
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		var dispatchLog models.DispatchLog

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			logItems := make([]models.DispatchLogItem, 0, len(body.Items))
			dispatchedQty := make(map[uint]int, len(body.Items))

			for _, itemReq := range body.Items {
				var sku models.SKU
				if err := tx.First(&sku, itemReq.SKUID).Error; err != nil {
					return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("SKU not found: %d", itemReq.SKUID))
				}

				// The line's entire unreleased allocation is handed back,
				// not just the dispatched quantity: the order leaves
				// pending_dispatch here, so a short-shipped remainder would
				// otherwise stay reserved forever. Releasing by the ledger
				// sum keeps ReservedStock equal to the unreleased rows.
				var allocations []models.StockAllocation
				if err := tx.
					Where("sales_order_id = ? AND sku_id = ? AND released_at IS NULL", order.ID, sku.ID).
					Find(&allocations).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Allocations could not be loaded")
				}
				release := ReleaseAmount(allocations)

				// decrement-if-sufficient: both counters move in one
				// conditional statement, so concurrent dispatches cannot
				// over-commit the same stock
				res := tx.Model(&models.SKU{}).
					Where("id = ? AND current_stock >= ?", sku.ID, itemReq.Quantity).
					Updates(map[string]interface{}{
						"current_stock":  gorm.Expr("current_stock - ?", itemReq.Quantity),
						"reserved_stock": gorm.Expr("GREATEST(reserved_stock - ?, 0)", release),
					})
				if res.Error != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Stock could not be updated")
				}
				if res.RowsAffected == 0 {
					return fiber.NewError(fiber.StatusBadRequest,
						fmt.Sprintf("Insufficient stock for %s: available %d, requested %d",
							sku.Code, sku.CurrentStock, itemReq.Quantity))
				}

				var after models.SKU
				if err := tx.First(&after, sku.ID).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "SKU could not be reloaded")
				}

				logItems = append(logItems, models.DispatchLogItem{
					SKUID:       sku.ID,
					SKUName:     sku.Name,
					Quantity:    itemReq.Quantity,
					StockBefore: after.CurrentStock + itemReq.Quantity,
					StockAfter:  after.CurrentStock,
				})
				dispatchedQty[sku.ID] += itemReq.Quantity

				// close exactly the rows the release amount was summed from
				for _, allocation := range allocations {
					if err := tx.Model(&models.StockAllocation{}).
						Where("id = ?", allocation.ID).
						Update("released_at", time.Now()).Error; err != nil {
						return fiber.NewError(fiber.StatusInternalServerError, "Allocation could not be closed")
					}
				}
			}

			status := Completeness(order.Items, dispatchedQty)

			dispatchLog = models.DispatchLog{
				SalesOrderID:   order.ID,
				Status:         status,
				DispatchedByID: actorID,
				Note:           strings.TrimSpace(body.Note),
				Items:          logItems,
			}
			if err := tx.Create(&dispatchLog).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Dispatch log could not be written")
			}

			dispatchedItems := make([]models.DispatchedItem, 0, len(dispatchedQty))
			for skuID, qty := range dispatchedQty {
				dispatchedItems = append(dispatchedItems, models.DispatchedItem{
					SalesOrderID: order.ID,
					SKUID:        skuID,
					Quantity:     qty,
				})
			}
			if err := tx.Create(&dispatchedItems).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Dispatched items could not be recorded")
			}

			now := time.Now()
			order.Status = models.SOStatusDispatched
			if status == models.DispatchLogFull {
				order.DispatchStatus = models.DispatchStateCompleted
			} else {
				order.DispatchStatus = models.DispatchStatePartial
			}
			order.DispatchDate = &now
			if err := tx.Omit("Items").Save(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sales order could not be updated")
			}

			return events.WriteTx(tx, events.LogOptions{
				EntityType: "sales_order",
				EntityID:   order.ID,
				Action:     models.EventActionDispatched,
				ActorID:    actorID,
				ActorName:  actorName,
				Remarks:    string(status),
				After:      fiber.Map{"dispatch_status": order.DispatchStatus},
			})
		})
		if err != nil {
			logger.Get().WithFields(logrus.Fields{
				"order": order.Code,
				"user":  actorID,
			}).Warn("dispatch rejected or rolled back")
			return err
		}

		if err := database.DB.Preload("Items.SKU").Preload("DispatchedBy").First(&dispatchLog, dispatchLog.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dispatch log could not be loaded")
		}

		return c.JSON(fiber.Map{
			"order_id":        order.ID,
			"status":          order.Status,
			"dispatch_status": order.DispatchStatus,
			"dispatch_date":   order.DispatchDate,
			"dispatch_log":    dispatchLog,
		})
	}
}

// GET /api/sales-orders/:id/dispatch-logs (newest first)
func ListDispatchLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.SalesOrder
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales order not found")
		}

		var logs []models.DispatchLog
		err := database.DB.
			Preload("Items.SKU").
			Preload("DispatchedBy").
			Where("sales_order_id = ?", order.ID).
			Order("created_at DESC").
			Find(&logs).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dispatch logs could not be listed")
		}

		return c.JSON(logs)
	}
}
