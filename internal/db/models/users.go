package models

import (
	"fmt"

	"gorm.io/gorm"
)

// User represents a registered account.
//
// Emails are unique and compared case-insensitively; the repository layer
// is responsible for the lower(email) matching.
type User struct {
	gorm.Model
	Email          string `json:"email" gorm:"size:320;not null;uniqueIndex"`
	HashedPassword string `json:"-" gorm:"size:1024;not null"`
	FirstName      string `json:"first_name" gorm:"size:64;not null"`
	LastName       string `json:"last_name" gorm:"size:64;not null"`
	IsActive       bool   `json:"is_active" gorm:"not null;default:true"`
	IsSuperuser    bool   `json:"is_superuser" gorm:"not null;default:false"`
	IsVerified     bool   `json:"is_verified" gorm:"not null;default:false"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}
