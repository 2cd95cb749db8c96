package models

import "time"

type Warehouse struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:150;not null;unique" json:"name"`
	Location  string `gorm:"size:255" json:"location"`
	Phone     string `gorm:"size:20" json:"phone"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
