package service

import (
	"context"

	"itinfo/internal/cache"
	"itinfo/internal/models"
	"itinfo/internal/repository"

	"golang.org/x/sync/errgroup"
)

// Profile is a user's public page: the account plus everything they wrote.
type Profile struct {
	User     *models.User      `json:"user"`
	Posts    []*models.Post    `json:"posts"`
	Comments []*models.Comment `json:"comments"`
	Reviews  []*models.Review  `json:"reviews"`
}

type ProfileService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	cache       *cache.Cache
}

func NewProfileService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	c *cache.Cache,
) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		cache:       c,
	}
}

// GetUser returns a user through the cache.
func (s *ProfileService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return cache.Aside(ctx, s.cache, cache.UserKey(id), cache.UserTTL, func(ctx context.Context) (*models.User, error) {
		return s.userRepo.GetByID(ctx, id)
	})
}

// InvalidateUser drops the cached copy of a user.
func (s *ProfileService) InvalidateUser(ctx context.Context, id uint) {
	s.cache.Invalidate(ctx, cache.UserKey(id))
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Profile{User: user}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p.Posts, err = s.postRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Comments, err = s.commentRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Reviews, err = s.reviewRepo.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}
