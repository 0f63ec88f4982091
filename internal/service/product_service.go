package service

import (
	"context"
	"log/slog"
	"strings"

	"itinfo/internal/cache"
	"itinfo/internal/likes"
	"itinfo/internal/middleware"
	"itinfo/internal/models"
	"itinfo/internal/rating"
	"itinfo/internal/repository"
	"itinfo/internal/store"
	"itinfo/internal/validation"
)

// Catalog sort modes.
const (
	SortRating    = "rating"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortRelease   = "release"
)

// Fixed list sizes used by the home page.
const (
	TopProductsLimit   = 6
	LatestReviewsLimit = 3
)

type ProductService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	likes       likes.Set
	cache       *cache.Cache
}

// ProductWithRating is a catalog entry with its derived review summary.
type ProductWithRating struct {
	*models.Product
	Rating rating.Summary `json:"rating"`
}

// ProductDetail is a product with all of its reviews, newest first.
type ProductDetail struct {
	Product *models.Product  `json:"product"`
	Reviews []*models.Review `json:"reviews"`
	Rating  rating.Summary   `json:"rating"`
}

type ListProductsInput struct {
	Category    string
	SubCategory string
	Search      string
	Sort        string
}

type CreateReviewInput struct {
	UserID    uint    `json:"-"`
	ProductID uint    `json:"-"`
	Rating    float64 `json:"rating" validate:"gte=0,lte=5"`
	Pros      string  `json:"pros" validate:"max=2000"`
	Cons      string  `json:"cons" validate:"max=2000"`
	Content   string  `json:"content" validate:"required,max=5000"`
}

func NewProductService(
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	likeSet likes.Set,
	c *cache.Cache,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		likes:       likeSet,
		cache:       c,
	}
}

func normalizeCategory(v string) string {
	v = strings.TrimSpace(v)
	if v == models.CategoryAll {
		return ""
	}
	return v
}

func (s *ProductService) List(ctx context.Context, in ListProductsInput) ([]ProductWithRating, error) {
	category := normalizeCategory(in.Category)
	sub := normalizeCategory(in.SubCategory)
	if category != "" {
		if _, ok := models.SubCategories[category]; !ok {
			return nil, models.NewValidationError("Unknown category")
		}
		if !models.ValidSubCategory(category, sub) {
			return nil, models.NewValidationError("Unknown sub-category")
		}
	}

	opts := repository.ProductListOptions{
		Category:    category,
		SubCategory: sub,
		Search:      in.Search,
	}
	sortBy := in.Sort
	if sortBy == "" {
		sortBy = SortRating
	}
	switch sortBy {
	case SortRating:
	case SortPriceAsc:
		opts.OrderBy = []store.Order{{Column: "price"}}
	case SortPriceDesc:
		opts.OrderBy = []store.Order{{Column: "price", Desc: true}}
	case SortRelease:
		opts.OrderBy = []store.Order{{Column: "release_date", Desc: true}}
	default:
		return nil, models.NewValidationError("Invalid sort")
	}

	items, err := s.withRatings(ctx, opts)
	if err != nil {
		return nil, err
	}
	if sortBy == SortRating {
		rating.Rank(items, func(p ProductWithRating) float64 { return p.Rating.Average })
	}
	return items, nil
}

// Top takes the first limit products in store order and ranks that window
// by average rating.
func (s *ProductService) Top(ctx context.Context, limit int) ([]ProductWithRating, error) {
	if limit <= 0 {
		limit = TopProductsLimit
	}
	items, err := s.withRatings(ctx, repository.ProductListOptions{Limit: clampLimit(limit)})
	if err != nil {
		return nil, err
	}
	rating.Rank(items, func(p ProductWithRating) float64 { return p.Rating.Average })
	return items, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product: product,
		Reviews: reviews,
		Rating:  rating.FromReviews(reviews),
	}, nil
}

func (s *ProductService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	in.Content = strings.TrimSpace(in.Content)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.productRepo.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Rating:    in.Rating,
		Pros:      strings.TrimSpace(in.Pros),
		Cons:      strings.TrimSpace(in.Cons),
		Content:   in.Content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	s.bumpReviewEpoch(ctx, in.ProductID)
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// ToggleReviewLike flips the viewer's like on a review and returns the re-read review.
func (s *ProductService) ToggleReviewLike(ctx context.Context, in ToggleLikeInput) (*models.Review, bool, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, false, err
	}
	liked, err := toggleLike(ctx, s.likes, in.Viewer, likes.KindReview, review.ID, review.Likes, func(next int) error {
		return s.reviewRepo.SetLikes(ctx, review.ID, next)
	})
	if err != nil {
		return nil, false, err
	}
	review, err = s.reviewRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, false, err
	}
	return review, liked, nil
}

func (s *ProductService) LatestReviews(ctx context.Context, limit int) ([]*models.Review, error) {
	if limit <= 0 {
		limit = LatestReviewsLimit
	}
	return s.reviewRepo.Latest(ctx, clampLimit(limit))
}

func (s *ProductService) withRatings(ctx context.Context, opts repository.ProductListOptions) ([]ProductWithRating, error) {
	products, err := s.productRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summaries(ctx, products)
	if err != nil {
		return nil, err
	}
	items := make([]ProductWithRating, len(products))
	for i, p := range products {
		items[i] = ProductWithRating{Product: p, Rating: summaries[p.ID]}
	}
	return items, nil
}

// summaries returns the review summary of each product. Cached summaries are
// keyed by the product's review epoch; misses are computed from one ratings query.
func (s *ProductService) summaries(ctx context.Context, products []*models.Product) (map[uint]rating.Summary, error) {
	out := make(map[uint]rating.Summary, len(products))
	keys := make(map[uint]string, len(products))
	var misses []uint

	for _, p := range products {
		epoch, err := s.cache.Epoch(ctx, cache.ReviewEpochKey(p.ID))
		if err != nil {
			middleware.Logger.WarnContext(ctx, "review epoch read failed",
				slog.Uint64("product_id", uint64(p.ID)), slog.String("error", err.Error()))
			misses = append(misses, p.ID)
			continue
		}
		key := cache.RatingKey(p.ID, epoch)
		var sum rating.Summary
		if hit, err := s.cache.GetJSON(ctx, key, &sum); err == nil && hit {
			out[p.ID] = sum
			continue
		}
		keys[p.ID] = key
		misses = append(misses, p.ID)
	}
	if len(misses) == 0 {
		return out, nil
	}

	rows, err := s.reviewRepo.Ratings(ctx, misses)
	if err != nil {
		return nil, err
	}
	byProduct := make(map[uint][]float64, len(misses))
	for _, r := range rows {
		byProduct[r.ProductID] = append(byProduct[r.ProductID], r.Rating)
	}
	for _, id := range misses {
		sum := rating.Summarize(byProduct[id])
		out[id] = sum
		if key, ok := keys[id]; ok {
			if err := s.cache.SetJSON(ctx, key, sum, cache.RatingTTL); err != nil {
				middleware.Logger.WarnContext(ctx, "rating cache write failed",
					slog.String("key", key), slog.String("error", err.Error()))
			}
		}
	}
	return out, nil
}

func (s *ProductService) bumpReviewEpoch(ctx context.Context, productID uint) {
	if err := s.cache.Bump(ctx, cache.ReviewEpochKey(productID)); err != nil {
		middleware.Logger.ErrorContext(ctx, "review epoch bump failed",
			slog.Uint64("product_id", uint64(productID)), slog.String("error", err.Error()))
	}
}
