package repository

import (
	"context"

	"itinfo/internal/models"
	"itinfo/internal/store"
)

// ReviewRepository defines persistence operations for product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]*models.Review, error)
	// Ratings returns only product_id and rating for the given products' reviews.
	Ratings(ctx context.Context, productIDs []uint) ([]*models.Review, error)
	Latest(ctx context.Context, limit int) ([]*models.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Review, error)
	SetLikes(ctx context.Context, id uint, likes int) error
	DeleteByProduct(ctx context.Context, productID uint) (int64, error)
}

type reviewRepository struct {
	store store.Store
}

// NewReviewRepository returns a ReviewRepository over s.
func NewReviewRepository(s store.Store) ReviewRepository {
	return &reviewRepository{store: s}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.store.Insert(ctx, store.Reviews, review)
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := getOne(ctx, r.store, store.Reviews, "Review", "review_id", id, &review, "Author"); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID uint) ([]*models.Review, error) {
	return r.list(ctx, store.Query{
		Preload: []string{"Author"},
		Filters: []store.Filter{store.Eq("product_id", productID)},
		OrderBy: newestFirst("review_id"),
	})
}

func (r *reviewRepository) Ratings(ctx context.Context, productIDs []uint) ([]*models.Review, error) {
	if len(productIDs) == 0 {
		return []*models.Review{}, nil
	}
	return r.list(ctx, store.Query{
		Select:  []string{"review_id", "product_id", "rating"},
		Filters: []store.Filter{store.In("product_id", productIDs)},
		OrderBy: []store.Order{{Column: "review_id"}},
	})
}

func (r *reviewRepository) Latest(ctx context.Context, limit int) ([]*models.Review, error) {
	return r.list(ctx, store.Query{
		Preload: []string{"Author", "Product"},
		OrderBy: newestFirst("review_id"),
		Limit:   limit,
	})
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Review, error) {
	return r.list(ctx, store.Query{
		Preload: []string{"Product"},
		Filters: []store.Filter{store.Eq("user_id", userID)},
		OrderBy: newestFirst("review_id"),
	})
}

func (r *reviewRepository) SetLikes(ctx context.Context, id uint, likes int) error {
	n, err := r.store.Update(ctx, store.Reviews, map[string]any{"likes": likes}, store.Eq("review_id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

func (r *reviewRepository) DeleteByProduct(ctx context.Context, productID uint) (int64, error) {
	return r.store.Delete(ctx, store.Reviews, store.Eq("product_id", productID))
}

func (r *reviewRepository) list(ctx context.Context, q store.Query) ([]*models.Review, error) {
	reviews := []*models.Review{}
	if err := r.store.Query(ctx, store.Reviews, q, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
