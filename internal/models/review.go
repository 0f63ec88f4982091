package models

import (
	"time"
)

// Rating bounds for reviews.
const (
	MinRating = 0
	MaxRating = 5
)

// Review is a user's rating and write-up of a product.
type Review struct {
	ID        uint        `gorm:"column:review_id;primaryKey" json:"review_id"`
	ProductID uint        `gorm:"not null;index" json:"product_id"`
	Product   *ProductRef `gorm:"foreignKey:ProductID;references:ID;-:migration" json:"product,omitempty"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	Author    *Author     `gorm:"foreignKey:UserID;references:ID;-:migration" json:"author,omitempty"`
	Rating    float64     `gorm:"not null" json:"rating"`
	Pros      string      `gorm:"type:text" json:"pros"`
	Cons      string      `gorm:"type:text" json:"cons"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	Likes     int         `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

// TableName pins the reviews table name.
func (Review) TableName() string {
	return "it_info_reviews"
}
