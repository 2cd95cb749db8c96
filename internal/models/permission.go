package models

import "time"

// Permission is the static catalog of protectable routes. Entries are seeded
// at startup; grants reference them by ID.
type Permission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Route       string `gorm:"size:100;uniqueIndex;not null" json:"route"`
	Description string `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserPermission is a per-user grant or revoke of a catalog permission.
// The latest record per (user, permission) wins.
type UserPermission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	User         User       `json:"-"`
	PermissionID uint       `gorm:"index;not null" json:"permission_id"`
	Permission   Permission `json:"permission"`
	Granted      bool       `gorm:"not null" json:"granted"`
	GrantedByID  uint       `gorm:"not null" json:"granted_by_id"`
	GrantedAt    time.Time  `gorm:"not null" json:"granted_at"`
	RevokedByID  *uint      `json:"revoked_by_id"`
	RevokedAt    *time.Time `json:"revoked_at"`
}
