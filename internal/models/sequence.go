package models

// Sequence backs the per-entity monotonic business-code counters
// (CUST-0001, IND-001, PO-0001, SO-0001). Incremented atomically with a
// single upsert, never read-then-written.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:50"`
	Value int64  `gorm:"not null;default:0"`
}
