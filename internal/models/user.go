package models

import "time"

// User represents a registered account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public projection of a User returned by the API.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
}
