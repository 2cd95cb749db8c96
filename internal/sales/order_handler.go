package sales

import (
	"fmt"
	"strings"
	"time"

	"stockdesk-backend/internal/auth"
	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/sequence"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemRequest struct {
	SKUID     uint            `json:"sku_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
}

type CreateOrderRequest struct {
	CustomerID   uint               `json:"customer_id" validate:"required"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	OrderDate    *time.Time         `json:"order_date"`
	DeliveryDate *time.Time         `json:"delivery_date"`
	Notes        string             `json:"notes" validate:"max=500"`
}

type UpdateOrderRequest struct {
	CustomerID   *uint               `json:"customer_id"`
	Items        *[]OrderItemRequest `json:"items"`
	OrderDate    *time.Time          `json:"order_date"`
	DeliveryDate *time.Time          `json:"delivery_date"`
	Notes        *string             `json:"notes"`
}

// buildItems validates every requested line against the catalog and current
// stock, and returns the priced item rows. Creation and draft update share
// this path so the insufficient-stock rule cannot drift between them.
func buildItems(reqs []OrderItemRequest) ([]models.SalesOrderItem, error) {
	items := make([]models.SalesOrderItem, 0, len(reqs))
	for _, itemReq := range reqs {
		if itemReq.UnitPrice.IsNegative() || itemReq.Discount.IsNegative() || itemReq.Tax.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Unit price, discount and tax cannot be negative")
		}

		var sku models.SKU
		if err := database.DB.First(&sku, itemReq.SKUID).Error; err != nil {
			return nil, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("SKU not found: %d", itemReq.SKUID))
		}
		if !sku.IsActive {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("SKU %s is deactivated", sku.Code))
		}
		if sku.CurrentStock < itemReq.Quantity {
			return nil, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for %s: available %d, requested %d",
					sku.Code, sku.CurrentStock, itemReq.Quantity))
		}

		items = append(items, models.SalesOrderItem{
			SKUID:       itemReq.SKUID,
			Quantity:    itemReq.Quantity,
			UnitPrice:   itemReq.UnitPrice,
			Discount:    itemReq.Discount,
			Tax:         itemReq.Tax,
			TotalAmount: LineTotal(itemReq.Quantity, itemReq.UnitPrice, itemReq.Discount, itemReq.Tax),
		})
	}
	return items, nil
}

func applyTotals(order *models.SalesOrder, items []models.SalesOrderItem) {
	totals := ComputeOrderTotals(items)
	order.Subtotal = totals.Subtotal
	order.TotalDiscount = totals.TotalDiscount
	order.TotalTax = totals.TotalTax
	order.TotalAmount = totals.TotalAmount
	order.TotalQuantity = totals.TotalQuantity
}

// POST /api/sales-orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var customer models.Customer
		if err := database.DB.First(&customer, body.CustomerID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		items, err := buildItems(body.Items)
		if err != nil {
			return err
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		orderDate := time.Now()
		if body.OrderDate != nil {
			orderDate = *body.OrderDate
		}

		order := models.SalesOrder{
			Status:         models.SOStatusDraft,
			DispatchStatus: models.DispatchStatePending,
			CustomerID:     customer.ID,
			OrderDate:      orderDate,
			DeliveryDate:   body.DeliveryDate,
			CreatedByID:    userID,
			Notes:          strings.TrimSpace(body.Notes),
			Items:          items,
		}
		applyTotals(&order, items)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			code, err := sequence.NextCode(tx, sequence.CounterSalesOrder, "SO", 4)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Order code could not be allocated")
			}
			order.Code = code
			if err := tx.Create(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sales order could not be created")
			}
			return nil
		})
		if err != nil {
			return err
		}

		if err := loadOrder(&order, order.ID); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(order)
	}
}

// GET /api/sales-orders?status=&customer_id=
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.
			Preload("Customer").
			Preload("Items.SKU").
			Preload("CreatedBy")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if customerID := c.Query("customer_id"); customerID != "" {
			dbq = dbq.Where("customer_id = ?", customerID)
		}

		var orders []models.SalesOrder
		if err := dbq.Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sales orders could not be listed")
		}
		return c.JSON(orders)
	}
}

// GET /api/sales-orders/:id
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.SalesOrder
		if err := loadOrder(&order, c.Params("id")); err != nil {
			return err
		}
		return c.JSON(order)
	}
}

// PUT /api/sales-orders/:id
// Items, customer and dates are mutable while the order is a draft; any
// other status is a conflict.
func UpdateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.SalesOrder
		if err := database.DB.Preload("Items").First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales order not found")
		}

		if !IsEditable(order.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Sales order %s is %s, only draft orders can be edited", order.Code, order.Status))
		}

		var body UpdateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.CustomerID != nil {
			var customer models.Customer
			if err := database.DB.First(&customer, *body.CustomerID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Customer not found")
			}
			order.CustomerID = *body.CustomerID
		}
		if body.OrderDate != nil {
			order.OrderDate = *body.OrderDate
		}
		if body.DeliveryDate != nil {
			order.DeliveryDate = body.DeliveryDate
		}
		if body.Notes != nil {
			order.Notes = strings.TrimSpace(*body.Notes)
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if body.Items != nil {
				if len(*body.Items) == 0 {
					return fiber.NewError(fiber.StatusBadRequest, "At least one item is required")
				}
				items, err := buildItems(*body.Items)
				if err != nil {
					return err
				}
				if err := tx.Where("sales_order_id = ?", order.ID).Delete(&models.SalesOrderItem{}).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Order items could not be replaced")
				}
				for i := range items {
					items[i].SalesOrderID = order.ID
				}
				if err := tx.Create(&items).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Order items could not be replaced")
				}
				order.Items = items
				applyTotals(&order, items)
			}

			if err := tx.Omit("Items").Save(&order).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sales order could not be updated")
			}
			return nil
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

// DELETE /api/sales-orders/:id (draft only)
func DeleteOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var order models.SalesOrder
		if err := database.DB.First(&order, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sales order not found")
		}

		if order.Status != models.SOStatusDraft {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Sales order %s is %s, only draft orders can be deleted", order.Code, order.Status))
		}

		if err := database.DB.Delete(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sales order could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func loadOrder(order *models.SalesOrder, id any) error {
	err := database.DB.
		Preload("Customer").
		Preload("Items.SKU").
		Preload("Allocations").
		Preload("DispatchedItems").
		Preload("CreatedBy").
		Preload("ConfirmedBy").
		First(order, "sales_orders.id = ?", id).Error
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Sales order not found")
	}
	return nil
}
