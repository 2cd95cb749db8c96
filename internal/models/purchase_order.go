package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type POStatus string

const (
	POStatusPending   POStatus = "pending"
	POStatusIssued    POStatus = "issued"
	POStatusReceived  POStatus = "received"
	POStatusCancelled POStatus = "cancelled"
)

// PurchaseOrder is raised against an approved indent. Items and deletion are
// locked once the order leaves pending.
type PurchaseOrder struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	Code   string   `gorm:"size:20;uniqueIndex;not null" json:"code"` // PO-0001
	Status POStatus `gorm:"size:20;not null;default:pending" json:"status"`

	IndentID uint           `gorm:"index;not null" json:"indent_id"`
	Indent   PurchaseIndent `gorm:"foreignKey:IndentID" json:"indent"`
	VendorID uint           `gorm:"index;not null" json:"vendor_id"`
	Vendor   Supplier       `gorm:"foreignKey:VendorID" json:"vendor"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalTax    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_tax"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	CreatedByID  uint       `gorm:"not null" json:"created_by_id"`
	CreatedBy    User       `gorm:"foreignKey:CreatedByID" json:"created_by"`
	ExpectedDate *time.Time `json:"expected_date"`
	Notes        string     `gorm:"size:500" json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type PurchaseOrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint            `gorm:"index;not null" json:"purchase_order_id"`
	SKUID           uint            `gorm:"index;not null" json:"sku_id"`
	SKU             SKU             `json:"sku"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Tax             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"` // qty*unitPrice + tax
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
