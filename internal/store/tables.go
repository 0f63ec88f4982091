package store

import "itinfo/internal/models"

// Table names.
const (
	Users    = "it_info_users"
	Posts    = "it_info_posts"
	Comments = "it_info_comments"
	Products = "it_info_products"
	Reviews  = "it_info_reviews"
)

// DefaultTables returns the registrations for every application table.
// The users password column is left out, so it cannot be filtered on, ordered
// by or updated through the store.
func DefaultTables() []Table {
	return []Table{
		{
			Name: Users, Model: &models.User{}, PrimaryKey: "user_id",
			Columns: []string{"user_id", "name", "email", "phone", "is_admin", "created_at"},
		},
		{
			Name: Posts, Model: &models.Post{}, PrimaryKey: "post_id",
			Columns: []string{"post_id", "title", "content", "board_type", "user_id", "likes", "image_url", "created_at"},
		},
		{
			Name: Comments, Model: &models.Comment{}, PrimaryKey: "comment_id",
			Columns: []string{"comment_id", "content", "user_id", "post_id", "parent_comment_id", "created_at"},
		},
		{
			Name: Products, Model: &models.Product{}, PrimaryKey: "product_id",
			Columns: []string{"product_id", "name", "brand", "category", "sub_category", "release_date", "price", "image_url", "specs", "created_at"},
		},
		{
			Name: Reviews, Model: &models.Review{}, PrimaryKey: "review_id",
			Columns: []string{"review_id", "product_id", "user_id", "rating", "pros", "cons", "content", "likes", "created_at"},
		},
	}
}
