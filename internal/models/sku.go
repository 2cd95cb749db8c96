package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SKU struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Category string `gorm:"size:100;index" json:"category"`

	// On-hand and earmarked quantities. ReservedStock must stay within
	// [0, CurrentStock]; confirm/dispatch mutate both through conditional
	// UPDATEs so the invariant holds under concurrent requests.
	CurrentStock  int `gorm:"not null;default:0" json:"current_stock"`
	ReservedStock int `gorm:"not null;default:0" json:"reserved_stock"`
	MinimumStock  int `gorm:"not null;default:0" json:"minimum_stock"` // low-stock alert threshold

	CostPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost_price"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"selling_price"`
	ProfitMargin decimal.Decimal `gorm:"type:decimal(6,2)" json:"profit_margin"` // percent, derived

	WarehouseID       uint      `gorm:"index;not null" json:"warehouse_id"`
	Warehouse         Warehouse `json:"warehouse"`
	PrimarySupplierID uint      `gorm:"index;not null" json:"primary_supplier_id"`
	PrimarySupplier   Supplier  `gorm:"foreignKey:PrimarySupplierID" json:"primary_supplier"`

	AlternateSuppliers []Supplier `gorm:"many2many:sku_alternate_suppliers" json:"alternate_suppliers,omitempty"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps ProfitMargin in sync with the price pair on every write.
func (s *SKU) BeforeSave(tx *gorm.DB) error {
	s.ProfitMargin = ComputeProfitMargin(s.CostPrice, s.SellingPrice)
	return nil
}

// ComputeProfitMargin returns (selling - cost) / selling * 100, rounded to
// two places. A zero selling price yields a zero margin rather than a
// division error.
func ComputeProfitMargin(cost, selling decimal.Decimal) decimal.Decimal {
	if selling.IsZero() {
		return decimal.Zero
	}
	return selling.Sub(cost).Div(selling).Mul(decimal.NewFromInt(100)).Round(2)
}
