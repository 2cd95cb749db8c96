package models

import "time"

// Address is embedded three times on Customer (general, billing, shipping).
type Address struct {
	Street  string `gorm:"size:200" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	Pincode string `gorm:"size:20" json:"pincode"`
	Country string `gorm:"size:100" json:"country"`
}

func (a Address) IsZero() bool {
	return a.Street == "" && a.City == "" && a.State == "" && a.Pincode == "" && a.Country == ""
}

type Customer struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Code  string `gorm:"size:20;uniqueIndex;not null" json:"code"` // CUST-0001
	Name  string `gorm:"size:150;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	// Nullable so the unique index tolerates customers without an email.
	Email *string `gorm:"size:100;uniqueIndex" json:"email"`

	Address         Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	BillingAddress  Address `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
