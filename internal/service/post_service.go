package service

import (
	"context"
	"strings"

	"itinfo/internal/likes"
	"itinfo/internal/models"
	"itinfo/internal/repository"
)

// Fixed list sizes used by the home page.
const (
	NoticePreviewLimit = 3
	PopularPostsLimit  = 5
)

type PostService struct {
	postRepo repository.PostRepository
	likes    likes.Set
}

type ListCommunityInput struct {
	// Board is one of the community boards; empty or "전체" lists all of them.
	Board  string
	Search string
}

type CreatePostInput struct {
	UserID    uint
	Title     string
	Content   string
	BoardType string
	ImageURL  string
}

// ToggleLikeInput identifies the item and the viewer session flipping its like.
type ToggleLikeInput struct {
	Viewer string
	ID     uint
}

func NewPostService(postRepo repository.PostRepository, likeSet likes.Set) *PostService {
	return &PostService{postRepo: postRepo, likes: likeSet}
}

// ListNotices returns notices newest first. A non-positive limit returns all of them.
func (s *PostService) ListNotices(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, repository.PostListOptions{
		Board: models.BoardNotice,
		Limit: clampLimit(limit),
	})
}

func (s *PostService) GetNotice(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsNotice() {
		return nil, models.NewNotFoundError("Notice", id)
	}
	return post, nil
}

func (s *PostService) ListCommunity(ctx context.Context, in ListCommunityInput) ([]*models.Post, error) {
	opts := repository.PostListOptions{
		ExcludeNotices: true,
		WithComments:   true,
		Search:         in.Search,
	}
	if board := strings.TrimSpace(in.Board); board != "" && board != models.CategoryAll {
		bt := models.BoardType(board)
		if !bt.IsCommunity() {
			return nil, models.NewValidationError("Unknown board")
		}
		opts.Board = bt
	}
	return s.postRepo.List(ctx, opts)
}

// Popular returns the most-liked community posts.
func (s *PostService) Popular(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = PopularPostsLimit
	}
	return s.postRepo.List(ctx, repository.PostListOptions{
		ExcludeNotices: true,
		ByLikes:        true,
		Limit:          clampLimit(limit),
	})
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 255

	title := strings.TrimSpace(in.Title)
	if title == "" || strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if len([]rune(title)) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 255 characters)")
	}
	board := models.BoardType(in.BoardType)
	if board == "" {
		board = models.BoardFree
	}
	if !board.IsCommunity() {
		return nil, models.NewValidationError("Unknown board")
	}

	post := &models.Post{
		Title:     title,
		Content:   in.Content,
		BoardType: board,
		UserID:    in.UserID,
	}
	if url := strings.TrimSpace(in.ImageURL); url != "" {
		post.ImageURL = &url
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// ToggleLike flips the viewer's like on a post and returns the re-read post.
func (s *PostService) ToggleLike(ctx context.Context, in ToggleLikeInput) (*models.Post, bool, error) {
	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, false, err
	}
	liked, err := toggleLike(ctx, s.likes, in.Viewer, likes.KindPost, post.ID, post.Likes, func(next int) error {
		return s.postRepo.SetLikes(ctx, post.ID, next)
	})
	if err != nil {
		return nil, false, err
	}
	post, err = s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, false, err
	}
	return post, liked, nil
}
