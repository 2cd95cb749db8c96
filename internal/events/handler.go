package events

import (
	"fmt"
	"strconv"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/events?entity_type=purchase_indent&entity_id=1&actor_id=2&limit=50
func ListEventsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		entityType := c.Query("entity_type")
		entityIDStr := c.Query("entity_id")
		actorIDStr := c.Query("actor_id")

		dbq := database.DB.Model(&models.EventLog{})

		if entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityIDStr != "" {
			var eid uint
			if _, err := fmt.Sscan(entityIDStr, &eid); err == nil && eid > 0 {
				dbq = dbq.Where("entity_id = ?", eid)
			}
		}
		if actorIDStr != "" {
			var aid uint
			if _, err := fmt.Sscan(actorIDStr, &aid); err == nil && aid > 0 {
				dbq = dbq.Where("actor_id = ?", aid)
			}
		}

		limit := 100
		if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 500 {
			limit = l
		}

		var entries []models.EventLog
		if err := dbq.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Events could not be listed")
		}

		return c.JSON(entries)
	}
}
