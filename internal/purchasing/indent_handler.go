package purchasing

import (
	"fmt"
	"strings"
	"time"

	"stockdesk-backend/internal/auth"
	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/sequence"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IndentItemRequest struct {
	SKUID      uint   `json:"sku_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Department string `json:"department" validate:"required,max=100"`
	VendorID   *uint  `json:"vendor_id"`
}

type CreateIndentRequest struct {
	Items []IndentItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes string              `json:"notes" validate:"max=500"`
}

type DecisionRequest struct {
	Remarks string `json:"remarks" validate:"max=500"`
}

// POST /api/purchase-indents
func CreateIndentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateIndentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one item is required")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		items := make([]models.PurchaseIndentItem, 0, len(body.Items))
		for _, itemReq := range body.Items {
			var sku models.SKU
			if err := database.DB.First(&sku, itemReq.SKUID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("SKU not found: %d", itemReq.SKUID))
			}
			if itemReq.VendorID != nil {
				var vendor models.Supplier
				if err := database.DB.First(&vendor, *itemReq.VendorID).Error; err != nil {
					return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Vendor not found: %d", *itemReq.VendorID))
				}
			}
			items = append(items, models.PurchaseIndentItem{
				SKUID:      itemReq.SKUID,
				Quantity:   itemReq.Quantity,
				Department: strings.TrimSpace(itemReq.Department),
				VendorID:   itemReq.VendorID,
			})
		}

		indent := models.PurchaseIndent{
			Status:        models.IndentStatusPending,
			RequestedByID: userID,
			Notes:         strings.TrimSpace(body.Notes),
			Items:         items,
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			code, err := sequence.NextCode(tx, sequence.CounterIndent, "IND", 3)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Indent code could not be allocated")
			}
			indent.Code = code
			if err := tx.Create(&indent).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Indent could not be created")
			}
			return events.WriteTx(tx, events.LogOptions{
				EntityType: "purchase_indent",
				EntityID:   indent.ID,
				Action:     models.EventActionCreated,
				ActorID:    actorID,
				ActorName:  actorName,
				After:      indent,
			})
		})
		if err != nil {
			return err
		}

		if err := database.DB.Preload("Items.SKU").Preload("RequestedBy").First(&indent, indent.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Indent could not be loaded")
		}
		return c.Status(fiber.StatusCreated).JSON(indent)
	}
}

// GET /api/purchase-indents?status=
func ListIndentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.
			Preload("Items.SKU").
			Preload("RequestedBy").
			Preload("DecidedBy").
			Where("status <> ?", models.IndentStatusDeleted)

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var indents []models.PurchaseIndent
		if err := dbq.Order("created_at DESC").Find(&indents).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Indents could not be listed")
		}
		return c.JSON(indents)
	}
}

// GET /api/purchase-indents/:id
func GetIndentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var indent models.PurchaseIndent
		err := database.DB.
			Preload("Items.SKU").
			Preload("Items.Vendor").
			Preload("RequestedBy").
			Preload("DecidedBy").
			First(&indent, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Indent not found")
		}
		return c.JSON(indent)
	}
}

// PUT /api/purchase-indents/approval/:id/approve
func ApproveIndentHandler() fiber.Handler {
	return decisionHandler(models.IndentStatusApproved, models.EventActionApproved)
}

// PUT /api/purchase-indents/approval/:id/reject
func RejectIndentHandler() fiber.Handler {
	return decisionHandler(models.IndentStatusRejected, models.EventActionRejected)
}

// decisionHandler covers both approve and reject: the guard, the stamp, and
// the audit entry differ only in the target status and event action. The
// status write and the event write share one transaction.
func decisionHandler(target models.IndentStatus, action models.EventAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DecisionRequest
		// empty body is fine, remarks are optional
		_ = c.BodyParser(&body)
		if err := validation.Struct(body); err != nil {
			return err
		}

		var indent models.PurchaseIndent
		if err := database.DB.First(&indent, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Indent not found")
		}

		if !CanDecide(indent.Status) {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Indent %s is %s, only Pending indents can be decided", indent.Code, indent.Status))
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		before := indent.Status
		now := time.Now()
		indent.Status = target
		indent.DecidedByID = &actorID
		indent.DecidedAt = &now
		indent.DecisionRemarks = strings.TrimSpace(body.Remarks)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			// guard against a concurrent decision on the same indent
			res := tx.Model(&models.PurchaseIndent{}).
				Where("id = ? AND status = ?", indent.ID, models.IndentStatusPending).
				Updates(map[string]interface{}{
					"status":           indent.Status,
					"decided_by_id":    indent.DecidedByID,
					"decided_at":       indent.DecidedAt,
					"decision_remarks": indent.DecisionRemarks,
				})
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Indent could not be updated")
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusBadRequest,
					fmt.Sprintf("Indent %s was already decided", indent.Code))
			}
			return events.WriteTx(tx, events.LogOptions{
				EntityType: "purchase_indent",
				EntityID:   indent.ID,
				Action:     action,
				ActorID:    actorID,
				ActorName:  actorName,
				Remarks:    indent.DecisionRemarks,
				Before:     fiber.Map{"status": before},
				After:      fiber.Map{"status": indent.Status},
			})
		})
		if err != nil {
			return err
		}

		return c.JSON(indent)
	}
}

// DELETE /api/purchase-indents/:id (manager/admin, Pending only)
func DeleteIndentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var indent models.PurchaseIndent
		if err := database.DB.First(&indent, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Indent not found")
		}

		if indent.Status != models.IndentStatusPending {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Indent %s is %s, only Pending indents can be deleted", indent.Code, indent.Status))
		}

		indent.Status = models.IndentStatusDeleted
		if err := database.DB.Save(&indent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Indent could not be deleted")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
