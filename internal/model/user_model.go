package model

import "time"

// User is stored under its derived key, never under the raw external id.
type User struct {
	UserKey     string    `gorm:"primaryKey;size:64" json:"user_key"`
	DisplayName string    `gorm:"size:255" json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}
