package customers

import (
	"errors"
	"strings"

	"stockdesk-backend/internal/database"
	"stockdesk-backend/internal/events"
	"stockdesk-backend/internal/models"
	"stockdesk-backend/internal/sequence"
	"stockdesk-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Country string `json:"country"`
}

func (a AddressRequest) toModel() models.Address {
	return models.Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
		Pincode: strings.TrimSpace(a.Pincode),
		Country: strings.TrimSpace(a.Country),
	}
}

type CreateCustomerRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=150"`
	Phone           string          `json:"phone" validate:"required,min=6,max=20"`
	Email           string          `json:"email" validate:"omitempty,email"`
	Address         AddressRequest  `json:"address"`
	BillingAddress  *AddressRequest `json:"billing_address"`
	ShippingAddress *AddressRequest `json:"shipping_address"`
}

type UpdateCustomerRequest struct {
	Name            *string         `json:"name"`
	Phone           *string         `json:"phone"`
	Email           *string         `json:"email"`
	Address         *AddressRequest `json:"address"`
	BillingAddress  *AddressRequest `json:"billing_address"`
	ShippingAddress *AddressRequest `json:"shipping_address"`
}

// defaultAddresses fills billing/shipping from the general address when they
// were omitted at creation.
func defaultAddresses(general models.Address, billing, shipping *models.Address) (models.Address, models.Address) {
	b := general
	if billing != nil && !billing.IsZero() {
		b = *billing
	}
	s := general
	if shipping != nil && !shipping.IsZero() {
		s = *shipping
	}
	return b, s
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)
		body.Phone = strings.TrimSpace(body.Phone)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if err := validation.Struct(body); err != nil {
			return err
		}

		if err := checkUnique(body.Phone, body.Email, 0); err != nil {
			return err
		}

		general := body.Address.toModel()
		var billingPtr, shippingPtr *models.Address
		if body.BillingAddress != nil {
			a := body.BillingAddress.toModel()
			billingPtr = &a
		}
		if body.ShippingAddress != nil {
			a := body.ShippingAddress.toModel()
			shippingPtr = &a
		}
		billing, shipping := defaultAddresses(general, billingPtr, shippingPtr)

		var email *string
		if body.Email != "" {
			email = &body.Email
		}

		customer := models.Customer{
			Name:            body.Name,
			Phone:           body.Phone,
			Email:           email,
			Address:         general,
			BillingAddress:  billing,
			ShippingAddress: shipping,
			IsActive:        true,
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			code, err := sequence.NextCode(tx, sequence.CounterCustomer, "CUST", 4)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Customer code could not be allocated")
			}
			customer.Code = code
			if err := tx.Create(&customer).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be created")
			}
			return nil
		})
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

// GET /api/customers (active only)
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Where("is_active = ?", true)

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			dbq = dbq.Where("name ILIKE ? OR phone LIKE ? OR code ILIKE ?", like, like, like)
		}

		var customers []models.Customer
		if err := dbq.Order("code asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customers could not be listed")
		}
		return c.JSON(customers)
	}
}

// GET /api/customers/:id
func GetCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		return c.JSON(customer)
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			customer.Name = name
		}

		newPhone := customer.Phone
		if body.Phone != nil {
			newPhone = strings.TrimSpace(*body.Phone)
			if newPhone == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Phone cannot be empty")
			}
		}
		newEmail := ""
		if customer.Email != nil {
			newEmail = *customer.Email
		}
		if body.Email != nil {
			newEmail = strings.TrimSpace(strings.ToLower(*body.Email))
		}

		// uniqueness is re-checked on every phone/email change
		if err := checkUnique(newPhone, newEmail, customer.ID); err != nil {
			return err
		}
		customer.Phone = newPhone
		if newEmail == "" {
			customer.Email = nil
		} else {
			customer.Email = &newEmail
		}

		if body.Address != nil {
			customer.Address = body.Address.toModel()
		}
		if body.BillingAddress != nil {
			customer.BillingAddress = body.BillingAddress.toModel()
		}
		if body.ShippingAddress != nil {
			customer.ShippingAddress = body.ShippingAddress.toModel()
		}

		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be updated")
		}
		return c.JSON(customer)
	}
}

// DELETE /api/customers/:id (soft delete)
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		customer.IsActive = false
		if err := database.DB.Save(&customer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer could not be deactivated")
		}

		if actorID, actorName, err := events.Actor(c); err == nil {
			_ = events.Write(events.LogOptions{
				EntityType: "customer",
				EntityID:   customer.ID,
				Action:     models.EventActionUpdated,
				ActorID:    actorID,
				ActorName:  actorName,
				Remarks:    "Customer deactivated",
				After:      customer,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func checkUnique(phone, email string, excludeID uint) error {
	var existing models.Customer

	q := database.DB.Where("phone = ?", phone)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "A customer with this phone already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusInternalServerError, "Customer lookup failed")
	}

	if email != "" {
		q := database.DB.Where("email = ?", email)
		if excludeID > 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "A customer with this email already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "Customer lookup failed")
		}
	}

	return nil
}
