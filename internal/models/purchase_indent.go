package models

import "time"

type IndentStatus string

const (
	IndentStatusPending   IndentStatus = "Pending"
	IndentStatusApproved  IndentStatus = "Approved"
	IndentStatusPOPending IndentStatus = "PO Pending"
	IndentStatusPOCreated IndentStatus = "PO Created"
	IndentStatusRejected  IndentStatus = "Rejected"
	IndentStatusDeleted   IndentStatus = "Deleted"
)

// PurchaseIndent is an internal request to purchase goods, the precursor to a
// PurchaseOrder. Transitions are one-directional; there is no path back to
// Pending.
type PurchaseIndent struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	Code   string       `gorm:"size:20;uniqueIndex;not null" json:"code"` // IND-001
	Status IndentStatus `gorm:"size:20;not null;default:Pending" json:"status"`

	RequestedByID uint  `gorm:"not null" json:"requested_by_id"`
	RequestedBy   User  `gorm:"foreignKey:RequestedByID" json:"requested_by"`
	DecidedByID   *uint `json:"decided_by_id"`
	DecidedBy     *User `gorm:"foreignKey:DecidedByID" json:"decided_by,omitempty"`
	DecidedAt     *time.Time `json:"decided_at"`
	DecisionRemarks string   `gorm:"size:500" json:"decision_remarks"`

	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PurchaseIndentItem `gorm:"foreignKey:IndentID;constraint:OnDelete:CASCADE" json:"items"`
}

type PurchaseIndentItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	IndentID   uint   `gorm:"index;not null" json:"indent_id"`
	SKUID      uint   `gorm:"index;not null" json:"sku_id"`
	SKU        SKU    `json:"sku"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Department string `gorm:"size:100;not null" json:"department"`
	VendorID   *uint  `json:"vendor_id"`
	Vendor     *Supplier `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
