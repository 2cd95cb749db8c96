package catalog

import (
	"strings"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Location string `json:"location" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=20"`
}

type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"is_active"`
}

// POST /api/warehouses (admin)
func CreateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateWarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		if err := validation.Struct(body); err != nil {
			return err
		}

		var existing models.Warehouse
		if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A warehouse with this name already exists")
		}

		warehouse := models.Warehouse{
			Name:     body.Name,
			Location: strings.TrimSpace(body.Location),
			Phone:    strings.TrimSpace(body.Phone),
			IsActive: true,
		}
		if err := database.DB.Create(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Warehouse could not be created")
		}
		return c.Status(fiber.StatusCreated).JSON(warehouse)
	}
}

// GET /api/warehouses
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warehouses []models.Warehouse
		if err := database.DB.Where("is_active = ?", true).Order("name asc").Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Warehouses could not be listed")
		}
		return c.JSON(warehouses)
	}
}

// PUT /api/warehouses/:id (admin)
func UpdateWarehouseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warehouse models.Warehouse
		if err := database.DB.First(&warehouse, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Warehouse not found")
		}

		var body UpdateWarehouseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			warehouse.Name = name
		}
		if body.Location != nil {
			warehouse.Location = strings.TrimSpace(*body.Location)
		}
		if body.Phone != nil {
			warehouse.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.IsActive != nil {
			warehouse.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&warehouse).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Warehouse could not be updated")
		}
		return c.JSON(warehouse)
	}
}
