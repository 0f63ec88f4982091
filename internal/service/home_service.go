package service

import (
	"context"
	"log/slog"

	"itinfo/internal/middleware"
	"itinfo/internal/models"

	"golang.org/x/sync/errgroup"
)

// HomeFeed is the landing page payload. Every section is always a list.
type HomeFeed struct {
	Notices       []*models.Post      `json:"notices"`
	PopularPosts  []*models.Post      `json:"popular_posts"`
	TopProducts   []ProductWithRating `json:"top_products"`
	LatestReviews []*models.Review    `json:"latest_reviews"`
}

type HomeService struct {
	posts    *PostService
	products *ProductService
}

func NewHomeService(posts *PostService, products *ProductService) *HomeService {
	return &HomeService{posts: posts, products: products}
}

// Feed reads the four home sections concurrently. A failed section is logged
// and returned empty; it never fails the feed.
func (s *HomeService) Feed(ctx context.Context) *HomeFeed {
	feed := &HomeFeed{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		feed.Notices = section(gctx, "notices", func(ctx context.Context) ([]*models.Post, error) {
			return s.posts.ListNotices(ctx, NoticePreviewLimit)
		})
		return nil
	})
	g.Go(func() error {
		feed.PopularPosts = section(gctx, "popular_posts", func(ctx context.Context) ([]*models.Post, error) {
			return s.posts.Popular(ctx, PopularPostsLimit)
		})
		return nil
	})
	g.Go(func() error {
		feed.TopProducts = section(gctx, "top_products", func(ctx context.Context) ([]ProductWithRating, error) {
			return s.products.Top(ctx, TopProductsLimit)
		})
		return nil
	})
	g.Go(func() error {
		feed.LatestReviews = section(gctx, "latest_reviews", func(ctx context.Context) ([]*models.Review, error) {
			return s.products.LatestReviews(ctx, LatestReviewsLimit)
		})
		return nil
	})

	_ = g.Wait()
	return feed
}

func section[T any](ctx context.Context, name string, read func(context.Context) ([]T, error)) []T {
	items, err := read(ctx)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "home feed section failed",
			slog.String("section", name), slog.String("error", err.Error()))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
