package repository

import (
	"context"
	"strings"

	"itinfo/internal/models"
	"itinfo/internal/store"
)

// PostListOptions narrows a post listing. Zero values mean "no constraint".
type PostListOptions struct {
	Board          models.BoardType
	ExcludeNotices bool
	// Search matches title or content, case-insensitively.
	Search       string
	ByLikes      bool
	WithComments bool
	Limit        int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, opts PostListOptions) ([]*models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Post, error)
	SetLikes(ctx context.Context, id uint, likes int) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	store store.Store
}

// NewPostRepository creates a new post repository
func NewPostRepository(s store.Store) PostRepository {
	return &postRepository{store: s}
}

var commentCount = store.Count{Table: store.Comments, Column: "post_id", As: "comments_count"}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.store.Insert(ctx, store.Posts, post)
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	found, err := r.store.QueryOne(ctx, store.Posts, store.Query{
		Preload: []string{"Author"},
		Filters: []store.Filter{store.Eq("post_id", id)},
		Counts:  []store.Count{commentCount},
	}, &post)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, models.NewNotFoundError("Post", id)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, opts PostListOptions) ([]*models.Post, error) {
	q := store.Query{
		Preload: []string{"Author"},
		Limit:   opts.Limit,
	}
	if opts.Board != "" {
		q.Filters = append(q.Filters, store.Eq("board_type", opts.Board))
	}
	if opts.ExcludeNotices {
		q.Filters = append(q.Filters, store.Neq("board_type", models.BoardNotice))
	}
	if s := strings.TrimSpace(opts.Search); s != "" {
		q.Filters = append(q.Filters, store.AnyILike(store.Contains(s), "title", "content"))
	}
	if opts.WithComments {
		q.Counts = []store.Count{commentCount}
	}
	if opts.ByLikes {
		q.OrderBy = append(q.OrderBy, store.Order{Column: "likes", Desc: true})
	}
	q.OrderBy = append(q.OrderBy, newestFirst("post_id")...)

	posts := []*models.Post{}
	if err := r.store.Query(ctx, store.Posts, q, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := r.store.Query(ctx, store.Posts, store.Query{
		Filters: []store.Filter{store.Eq("user_id", userID)},
		OrderBy: newestFirst("post_id"),
	}, &posts)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) SetLikes(ctx context.Context, id uint, likes int) error {
	n, err := r.store.Update(ctx, store.Posts, map[string]any{"likes": likes}, store.Eq("post_id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	n, err := r.store.Delete(ctx, store.Posts, store.Eq("post_id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}
