package models

import "time"

// Contact represents a single entry in a user's contact list.
// UserID is stamped from the authenticated identity at creation time
// and is never reassigned afterwards.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required"`
	Phone     string    `json:"phone" gorm:"type:varchar(50)" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
