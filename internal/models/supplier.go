package models

import "time"

type Supplier struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:200;not null" json:"name"`
	ContactPerson string `gorm:"size:100" json:"contact_person"`
	Phone         string `gorm:"size:20" json:"phone"`
	Email         string `gorm:"size:100" json:"email"`
	Address       string `gorm:"size:500" json:"address"`
	IsActive      bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
