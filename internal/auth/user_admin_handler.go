package auth

import (
	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateUserRequest struct {
	Role     *models.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
}

// GET /api/users (admin)
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("name asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Users could not be listed")
		}
		return c.JSON(users)
	}
}

// PUT /api/users/:id (admin): role and active-flag changes
func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Role != nil {
			switch *body.Role {
			case models.RoleUser, models.RoleManager, models.RoleAdmin:
				user.Role = *body.Role
			default:
				return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
			}
		}
		if body.IsActive != nil {
			user.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "User could not be updated")
		}

		return c.JSON(user)
	}
}
