package events

import (
	"encoding/json"
	"fmt"

	"stockdesk-backend/internal/auth"
	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/logger"
	"stockdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LogOptions struct {
	EntityType string
	EntityID   uint
	Action     models.EventAction
	ActorID    uint
	ActorName  string
	Remarks    string
	Before     any
	After      any
}

// Write appends one event outside any caller transaction.
func Write(opts LogOptions) error {
	return WriteTx(database.DB, opts)
}

// WriteTx appends one event using the caller's transaction handle, so a
// business mutation and its audit entry commit or roll back together.
func WriteTx(tx *gorm.DB, opts LogOptions) error {
	// jsonb columns want "null", not an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.EventLog{
		EntityType: opts.EntityType,
		EntityID:   opts.EntityID,
		Action:     opts.Action,
		ActorID:    opts.ActorID,
		ActorName:  opts.ActorName,
		Remarks:    opts.Remarks,
		BeforeData: beforeStr,
		AfterData:  afterStr,
	}

	if err := tx.Create(&entry).Error; err != nil {
		logger.Error("events", "WriteTx", err, logrus.Fields{
			"entity_type": opts.EntityType,
			"entity_id":   opts.EntityID,
			"action":      opts.Action,
		})
		return fmt.Errorf("event log write failed: %w", err)
	}
	return nil
}

// Actor resolves the authenticated user's id and display name for event
// attribution.
func Actor(c *fiber.Ctx) (uint, string, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return 0, "", err
	}
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "User not found")
	}
	return user.ID, user.Name, nil
}
