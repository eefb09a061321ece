package models

import "gorm.io/gorm"

// Owner is the stall owner's sign-in account. The app serves a single
// stall, so at most one owner row ever exists; registration is a
// one-time bootstrap enforced by the auth service.
type Owner struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	gorm.Model        // CreatedAt, UpdatedAt, DeletedAt
}
