package access

import (
	"time"

	"stockdesk-backend/internal/auth"
	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/permissions/check/:route
func CheckPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		route := c.Params("route")

		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		role, err := auth.CurrentUserRole(c)
		if err != nil {
			return err
		}

		ok, err := HasPermission(userID, role, route)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Permission check failed")
		}

		return c.JSON(fiber.Map{"hasPermission": ok})
	}
}

// GET /api/permissions
func ListPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var perms []models.Permission
		if err := database.DB.Order("route asc").Find(&perms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Permissions could not be listed")
		}
		return c.JSON(perms)
	}
}

type GrantRequest struct {
	Route string `json:"route" validate:"required"`
}

// POST /api/users/:id/permissions (admin): grant a catalog permission
func GrantPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GrantRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := validation.Struct(body); err != nil {
			return err
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var perm models.Permission
		if err := database.DB.Where("route = ?", body.Route).First(&perm).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Permission not found")
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		grant := models.UserPermission{
			UserID:       user.ID,
			PermissionID: perm.ID,
			Granted:      true,
			GrantedByID:  actorID,
			GrantedAt:    time.Now(),
		}
		if err := database.DB.Create(&grant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Permission could not be granted")
		}

		_ = events.Write(events.LogOptions{
			EntityType: "user_permission",
			EntityID:   grant.ID,
			Action:     models.EventActionGranted,
			ActorID:    actorID,
			ActorName:  actorName,
			Remarks:    perm.Route + " granted to " + user.Email,
			After:      grant,
		})

		return c.Status(fiber.StatusCreated).JSON(grant)
	}
}

// DELETE /api/users/:id/permissions/:route (admin): revoke
func RevokePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var perm models.Permission
		if err := database.DB.Where("route = ?", c.Params("route")).First(&perm).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Permission not found")
		}

		var grant models.UserPermission
		err := database.DB.
			Where("user_id = ? AND permission_id = ?", user.ID, perm.ID).
			Order("id DESC").
			First(&grant).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "No grant to revoke")
		}

		actorID, actorName, err := events.Actor(c)
		if err != nil {
			return err
		}

		now := time.Now()
		grant.Granted = false
		grant.RevokedByID = &actorID
		grant.RevokedAt = &now
		if err := database.DB.Save(&grant).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Permission could not be revoked")
		}

		_ = events.Write(events.LogOptions{
			EntityType: "user_permission",
			EntityID:   grant.ID,
			Action:     models.EventActionRevoked,
			ActorID:    actorID,
			ActorName:  actorName,
			Remarks:    perm.Route + " revoked from " + user.Email,
			After:      grant,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
