package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"itinfo/internal/cache"
	"itinfo/internal/middleware"
	"itinfo/internal/models"
	"itinfo/internal/repository"
	"itinfo/internal/storage"
	"itinfo/internal/validation"
)

// AdminService backs the admin console. Callers must have checked that the
// acting user is an admin.
type AdminService struct {
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	productRepo    repository.ProductRepository
	reviewRepo     repository.ReviewRepository
	uploader       storage.Uploader
	cache          *cache.Cache
	maxUploadBytes int64
}

type CreateNoticeInput struct {
	UserID  uint   `json:"-"`
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

type CreateProductInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Brand       string `json:"brand" validate:"max=100"`
	Category    string `json:"category" validate:"required"`
	SubCategory string `json:"sub_category"`
	Price       int    `json:"price" validate:"gte=0"`
	// ReleaseDate is YYYY-MM-DD.
	ReleaseDate string `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Specs       string `json:"specs" validate:"omitempty,json"`
}

// NewAdminService wires the admin operations. uploader may be nil, in which
// case UploadImage reports the storage as unavailable.
func NewAdminService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	uploader storage.Uploader,
	c *cache.Cache,
) *AdminService {
	return &AdminService{
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		productRepo:    productRepo,
		reviewRepo:     reviewRepo,
		uploader:       uploader,
		cache:          c,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
}

// ListPosts returns every post, notices included, newest first.
func (s *AdminService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx, repository.PostListOptions{})
}

func (s *AdminService) CreateNotice(ctx context.Context, in CreateNoticeInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		BoardType: models.BoardNotice,
		UserID:    in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post's comments and then the post. The steps are not
// transactional: if the post delete fails, the comments stay deleted.
func (s *AdminService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.postRepo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.commentRepo.DeleteByPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		middleware.Logger.ErrorContext(ctx, "post delete failed after its comments were removed",
			slog.Uint64("post_id", uint64(id)), slog.Int64("comments_deleted", n), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *AdminService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx, repository.ProductListOptions{})
}

func (s *AdminService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	if err := validation.Struct(in); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, ok := models.SubCategories[in.Category]; !ok {
		return nil, models.NewValidationError("Unknown category")
	}
	if !models.ValidSubCategory(in.Category, in.SubCategory) {
		return nil, models.NewValidationError("Unknown sub-category")
	}

	product := &models.Product{
		Name:        in.Name,
		Brand:       in.Brand,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Price:       in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Specs:       in.Specs,
	}
	if in.ReleaseDate != "" {
		d, err := time.Parse(time.DateOnly, in.ReleaseDate)
		if err != nil {
			return nil, models.NewValidationError("release_date must be YYYY-MM-DD")
		}
		product.ReleaseDate = &d
	}
	if product.Specs != "" {
		var compact bytes.Buffer
		if err := json.Compact(&compact, []byte(product.Specs)); err == nil {
			product.Specs = compact.String()
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct removes a product's reviews and then the product, with the
// same non-transactional ordering as DeletePost.
func (s *AdminService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.reviewRepo.DeleteByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		if err := s.cache.Bump(ctx, cache.ReviewEpochKey(id)); err != nil {
			middleware.Logger.ErrorContext(ctx, "review epoch bump failed",
				slog.Uint64("product_id", uint64(id)), slog.String("error", err.Error()))
		}
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		middleware.Logger.ErrorContext(ctx, "product delete failed after its reviews were removed",
			slog.Uint64("product_id", uint64(id)), slog.Int64("reviews_deleted", n), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// UploadImage validates an image and stores it, returning where it can be fetched.
func (s *AdminService) UploadImage(ctx context.Context, in UploadImageInput) (storage.Object, error) {
	if s.uploader == nil {
		return storage.Object{}, models.NewUnavailableError("Image storage is not configured")
	}
	info, err := validateImage(in, s.maxUploadBytes)
	if err != nil {
		return storage.Object{}, err
	}

	obj, err := s.uploader.Put(ctx, in.Filename, bytes.NewReader(in.Content), int64(len(in.Content)), info.mimeType)
	if err != nil {
		return storage.Object{}, models.NewInternalError(fmt.Errorf("store image: %w", err))
	}
	middleware.Logger.InfoContext(ctx, "image uploaded",
		slog.String("key", obj.Key),
		slog.Int("width", info.width),
		slog.Int("height", info.height),
	)
	return obj, nil
}
