package repository

import (
	"context"

	"itinfo/internal/models"
	"itinfo/internal/store"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListByPost returns a post's comments oldest first, ties broken by id.
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error)
	DeleteByPost(ctx context.Context, postID uint) (int64, error)
}

type commentRepository struct {
	store store.Store
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(s store.Store) CommentRepository {
	return &commentRepository{store: s}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.store.Insert(ctx, store.Comments, comment)
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := getOne(ctx, r.store, store.Comments, "Comment", "comment_id", id, &comment, "Author"); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.store.Query(ctx, store.Comments, store.Query{
		Preload: []string{"Author"},
		Filters: []store.Filter{store.Eq("post_id", postID)},
		OrderBy: []store.Order{{Column: "created_at"}, {Column: "comment_id"}},
	}, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.store.Query(ctx, store.Comments, store.Query{
		Preload: []string{"Post"},
		Filters: []store.Filter{store.Eq("user_id", userID)},
		OrderBy: newestFirst("comment_id"),
	}, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	return r.store.Delete(ctx, store.Comments, store.Eq("post_id", postID))
}
