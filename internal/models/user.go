// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered member of the community.
type User struct {
	ID        uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Phone     string    `gorm:"size:32" json:"phone"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the users table name.
func (User) TableName() string {
	return "it_info_users"
}

// Author is the public projection of a user attached to posts, comments and reviews.
type Author struct {
	ID   uint   `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name string `json:"name"`
}

// TableName pins the users table name.
func (Author) TableName() string {
	return "it_info_users"
}
