package models

import (
	"time"
)

// Product categories.
const (
	CategorySmartphone = "스마트폰"
	CategoryLaptop     = "노트북"
	CategoryWearable   = "웨어러블"
	CategoryAppliance  = "가전"
)

// CategoryAll is the "no filter" sentinel used by catalog tabs.
const CategoryAll = "전체"

// SubCategories maps each category to its sub-categories.
var SubCategories = map[string][]string{
	CategorySmartphone: {"안드로이드", "아이폰", "게이밍폰"},
	CategoryLaptop:     {"게이밍", "울트라북", "비즈니스"},
	CategoryWearable:   {"이어폰", "스마트워치"},
	CategoryAppliance:  {},
}

// ValidSubCategory reports whether sub belongs to category. An empty sub is always valid.
func ValidSubCategory(category, sub string) bool {
	if sub == "" {
		return true
	}
	subs, ok := SubCategories[category]
	if !ok {
		return false
	}
	for _, s := range subs {
		if s == sub {
			return true
		}
	}
	return false
}

// Product is a catalog entry.
type Product struct {
	ID          uint       `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Brand       string     `gorm:"size:100;not null" json:"brand"`
	Category    string     `gorm:"size:32;not null;index" json:"category"`
	SubCategory string     `gorm:"size:32;index" json:"sub_category"`
	ReleaseDate *time.Time `json:"release_date"`
	Price       int        `gorm:"not null;default:0" json:"price"`
	ImageURL    string     `gorm:"size:1024" json:"image_url"`
	Specs       string     `gorm:"type:text" json:"specs"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName pins the products table name.
func (Product) TableName() string {
	return "it_info_products"
}

// ProductRef is the minimal product projection attached to reviews.
type ProductRef struct {
	ID   uint   `gorm:"column:product_id;primaryKey" json:"product_id"`
	Name string `json:"name"`
}

// TableName pins the products table name.
func (ProductRef) TableName() string {
	return "it_info_products"
}
