package models

import (
	"time"
)

// BoardType is the board a post belongs to.
type BoardType string

const (
	BoardFree   BoardType = "자유게시판"
	BoardQnA    BoardType = "질문/답변"
	BoardReview BoardType = "전자기기 리뷰"
	// BoardNotice marks announcement posts. They never appear on community boards.
	BoardNotice BoardType = "공지사항"
)

// CommunityBoards lists the boards users can post to, in tab order.
func CommunityBoards() []BoardType {
	return []BoardType{BoardFree, BoardQnA, BoardReview}
}

// IsCommunity reports whether b is a user-postable board.
func (b BoardType) IsCommunity() bool {
	switch b {
	case BoardFree, BoardQnA, BoardReview:
		return true
	}
	return false
}

// Post represents a board post or a notice.
type Post struct {
	ID        uint      `gorm:"column:post_id;primaryKey" json:"post_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	BoardType BoardType `gorm:"size:32;not null;index" json:"board_type"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Author    *Author   `gorm:"foreignKey:UserID;references:ID;-:migration" json:"author,omitempty"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	ImageURL  *string   `gorm:"size:1024" json:"image_url"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->;-:migration" json:"comments_count"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the posts table name.
func (Post) TableName() string {
	return "it_info_posts"
}

// IsNotice reports whether the post is an announcement.
func (p *Post) IsNotice() bool {
	return p.BoardType == BoardNotice
}

// PostRef is the minimal post projection attached to comments on profile pages.
type PostRef struct {
	ID        uint      `gorm:"column:post_id;primaryKey" json:"post_id"`
	Title     string    `json:"title"`
	BoardType BoardType `json:"board_type"`
}

// TableName pins the posts table name.
func (PostRef) TableName() string {
	return "it_info_posts"
}
