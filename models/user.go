package models

import "time"

// Roles stored on the user row. Admins are managed from the backstage and
// never show up in discovery listings.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Default images assigned at sign-up until the user uploads their own.
const (
	DefaultAvatar = "https://i.imgur.com/TmLy5dw.png"
	DefaultCover  = "https://i.imgur.com/pNr8Hlb.jpeg"
)

// User represents an account in the system.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:50;not null"`
	Account      string `gorm:"uniqueIndex;size:50;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Password     string `gorm:"not null" json:"-"`
	Avatar       string
	Cover        string
	Introduction string `gorm:"type:text"`
	Role         string `gorm:"size:20;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
