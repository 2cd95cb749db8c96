package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesOrderStatus string

const (
	SOStatusDraft           SalesOrderStatus = "draft"
	SOStatusConfirmed       SalesOrderStatus = "confirmed"
	SOStatusProcessing      SalesOrderStatus = "processing"
	SOStatusPendingDispatch SalesOrderStatus = "pending_dispatch"
	SOStatusDispatched      SalesOrderStatus = "dispatched"
	SOStatusShipped         SalesOrderStatus = "shipped"
	SOStatusOutForDelivery  SalesOrderStatus = "out_for_delivery"
	SOStatusDelivered       SalesOrderStatus = "delivered"
	SOStatusCancelled       SalesOrderStatus = "cancelled"
	SOStatusReturned        SalesOrderStatus = "returned"
)

// DispatchState tracks fulfillment completeness independently of the main
// order status.
type DispatchState string

const (
	DispatchStatePending   DispatchState = "pending"
	DispatchStatePartial   DispatchState = "partial"
	DispatchStateCompleted DispatchState = "completed"
)

type SalesOrder struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	Code           string           `gorm:"size:20;uniqueIndex;not null" json:"code"` // SO-0001
	Status         SalesOrderStatus `gorm:"size:20;not null;default:draft" json:"status"`
	DispatchStatus DispatchState    `gorm:"size:20;not null;default:pending" json:"dispatch_status"`

	CustomerID uint     `gorm:"index;not null" json:"customer_id"`
	Customer   Customer `json:"customer"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TotalDiscount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_discount"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_tax"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	TotalQuantity int             `gorm:"not null" json:"total_quantity"`

	OrderDate    time.Time  `gorm:"not null" json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date"`

	ConfirmedByID *uint      `json:"confirmed_by_id"`
	ConfirmedBy   *User      `gorm:"foreignKey:ConfirmedByID" json:"confirmed_by,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at"`
	DispatchDate  *time.Time `json:"dispatch_date"`

	CreatedByID uint   `gorm:"not null" json:"created_by_id"`
	CreatedBy   User   `gorm:"foreignKey:CreatedByID" json:"created_by"`
	Notes       string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items           []SalesOrderItem  `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE" json:"items"`
	Allocations     []StockAllocation `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE" json:"allocations,omitempty"`
	DispatchedItems []DispatchedItem  `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE" json:"dispatched_items,omitempty"`
}

type SalesOrderItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SalesOrderID uint            `gorm:"index;not null" json:"sales_order_id"`
	SKUID        uint            `gorm:"index;not null" json:"sku_id"`
	SKU          SKU             `json:"sku"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	Tax          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"` // qty*unitPrice - discount + tax
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockAllocation is the reservation ledger of record: SKU.ReservedStock is
// the sum of unreleased allocation quantities for that SKU.
type StockAllocation struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SalesOrderID uint       `gorm:"index;not null" json:"sales_order_id"`
	SKUID        uint       `gorm:"index;not null" json:"sku_id"`
	SKU          SKU        `json:"-"`
	Quantity     int        `gorm:"not null" json:"quantity"`
	ReleasedAt   *time.Time `json:"released_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// DispatchedItem is the denormalized shipped-quantity snapshot kept on the
// order for quick display; DispatchLog is the audit trail of record.
type DispatchedItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SalesOrderID uint      `gorm:"index;not null" json:"sales_order_id"`
	SKUID        uint      `gorm:"index;not null" json:"sku_id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}
