package models

import (
	"time"
)

// Comment is a comment on a post. A nil ParentCommentID marks a top-level comment;
// otherwise the comment replies to the referenced comment.
type Comment struct {
	ID              uint      `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Author          *Author   `gorm:"foreignKey:UserID;references:ID;-:migration" json:"author,omitempty"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	Post            *PostRef  `gorm:"foreignKey:PostID;references:ID;-:migration" json:"post,omitempty"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the comments table name.
func (Comment) TableName() string {
	return "it_info_comments"
}

// IsTopLevel reports whether the comment starts a thread.
func (c *Comment) IsTopLevel() bool {
	return c.ParentCommentID == nil
}
