package models

import "time"

type EventAction string

const (
	EventActionCreated       EventAction = "created"
	EventActionUpdated       EventAction = "updated"
	EventActionApproved      EventAction = "approved"
	EventActionRejected      EventAction = "rejected"
	EventActionConfirmed     EventAction = "confirmed"
	EventActionCancelled     EventAction = "cancelled"
	EventActionDispatched    EventAction = "dispatched"
	EventActionStockAdjusted EventAction = "stock_adjusted"
	EventActionPOCreated     EventAction = "po_created"
	EventActionGranted       EventAction = "granted"
	EventActionRevoked       EventAction = "revoked"
)

// EventLog is the single append-only audit trail for business events. One
// tagged action per entry; entries are never updated or deleted.
type EventLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EntityType string      `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint        `gorm:"index" json:"entity_id"`
	Action     EventAction `gorm:"size:20" json:"action"`

	ActorID   uint   `json:"actor_id"`
	ActorName string `gorm:"size:100" json:"actor_name"` // denormalized for display

	Remarks string `gorm:"size:500" json:"remarks"`

	// Previous and resulting state snapshots (JSON).
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
