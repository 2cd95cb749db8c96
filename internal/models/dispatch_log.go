package models

import "time"

type DispatchLogStatus string

const (
	DispatchLogFull      DispatchLogStatus = "full"
	DispatchLogPartially DispatchLogStatus = "partially"
	DispatchLogPending   DispatchLogStatus = "pending"
)

// DispatchLog is an immutable record of one dispatch action. It is never
// updated after creation; it is the audit trail of record for stock movement
// during dispatch.
type DispatchLog struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	SalesOrderID uint              `gorm:"index;not null" json:"sales_order_id"`
	SalesOrder   SalesOrder        `json:"-"`
	Status       DispatchLogStatus `gorm:"size:20;not null" json:"status"`

	DispatchedByID uint   `gorm:"not null" json:"dispatched_by_id"`
	DispatchedBy   User   `gorm:"foreignKey:DispatchedByID" json:"dispatched_by"`
	Note           string `gorm:"size:500" json:"note"`
	CreatedAt      time.Time `json:"created_at"`

	Items []DispatchLogItem `gorm:"foreignKey:DispatchLogID;constraint:OnDelete:CASCADE" json:"items"`
}

type DispatchLogItem struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	DispatchLogID uint   `gorm:"index;not null" json:"dispatch_log_id"`
	SKUID         uint   `gorm:"index;not null" json:"sku_id"`
	SKU           SKU    `json:"sku"`
	SKUName       string `gorm:"size:150" json:"sku_name"` // name snapshot at dispatch time
	Quantity      int    `gorm:"not null" json:"quantity"`
	StockBefore   int    `gorm:"not null" json:"stock_before"`
	StockAfter    int    `gorm:"not null" json:"stock_after"`
	CreatedAt     time.Time `json:"created_at"`
}
