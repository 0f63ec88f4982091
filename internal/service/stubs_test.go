package service

import (
	"context"
	"sync"

	"itinfo/internal/models"
	"itinfo/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	setAdminFn   func(context.Context, uint, bool) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error {
	return s.createFn(ctx, u)
}
func (s *userRepoStub) SetAdmin(ctx context.Context, id uint, admin bool) error {
	return s.setAdminFn(ctx, id, admin)
}

// postRepoStub keeps posts in memory. Fn fields override the default behavior.
type postRepoStub struct {
	mu       sync.Mutex
	posts    map[uint]*models.Post
	nextID   uint
	listFn   func(context.Context, repository.PostListOptions) ([]*models.Post, error)
	deleteFn func(context.Context, uint) error
}

func newPostRepoStub(posts ...*models.Post) *postRepoStub {
	s := &postRepoStub{posts: map[uint]*models.Post{}}
	for _, p := range posts {
		s.posts[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID
		}
	}
	return s
}

func (s *postRepoStub) Create(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}
func (s *postRepoStub) GetByID(_ context.Context, id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	cp := *p
	return &cp, nil
}
func (s *postRepoStub) List(ctx context.Context, opts repository.PostListOptions) ([]*models.Post, error) {
	if s.listFn != nil {
		return s.listFn(ctx, opts)
	}
	return []*models.Post{}, nil
}
func (s *postRepoStub) ListByUser(_ context.Context, userID uint) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Post{}
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (s *postRepoStub) SetLikes(_ context.Context, id uint, likes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return models.NewNotFoundError("Post", id)
	}
	p.Likes = likes
	return nil
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return models.NewNotFoundError("Post", id)
	}
	delete(s.posts, id)
	return nil
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	comments       map[uint]*models.Comment
	created        []*models.Comment
	listByPostFn   func(context.Context, uint) ([]*models.Comment, error)
	deleteByPostFn func(context.Context, uint) (int64, error)
}

func newCommentRepoStub(comments ...*models.Comment) *commentRepoStub {
	s := &commentRepoStub{comments: map[uint]*models.Comment{}}
	for _, c := range comments {
		s.comments[c.ID] = c
	}
	return s
}

func (s *commentRepoStub) Create(_ context.Context, c *models.Comment) error {
	c.ID = uint(100 + len(s.created))
	s.created = append(s.created, c)
	s.comments[c.ID] = c
	return nil
}
func (s *commentRepoStub) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, models.NewNotFoundError("Comment", id)
	}
	return c, nil
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByUser(_ context.Context, _ uint) ([]*models.Comment, error) {
	return []*models.Comment{}, nil
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID uint) (int64, error) {
	return s.deleteByPostFn(ctx, postID)
}

// productRepoStub is a stub for repository.ProductRepository.
type productRepoStub struct {
	products []*models.Product
	listFn   func(context.Context, repository.ProductListOptions) ([]*models.Product, error)
	deleteFn func(context.Context, uint) error
}

func (s *productRepoStub) Create(_ context.Context, p *models.Product) error {
	p.ID = uint(len(s.products) + 1)
	s.products = append(s.products, p)
	return nil
}
func (s *productRepoStub) GetByID(_ context.Context, id uint) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.NewNotFoundError("Product", id)
}
func (s *productRepoStub) List(ctx context.Context, opts repository.ProductListOptions) ([]*models.Product, error) {
	if s.listFn != nil {
		return s.listFn(ctx, opts)
	}
	out := s.products
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}
func (s *productRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

// reviewRepoStub keeps reviews in memory.
type reviewRepoStub struct {
	mu                sync.Mutex
	reviews           []*models.Review
	ratingsCalls      int
	latestFn          func(context.Context, int) ([]*models.Review, error)
	deleteByProductFn func(context.Context, uint) (int64, error)
}

func (s *reviewRepoStub) Create(_ context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uint(len(s.reviews) + 1)
	s.reviews = append(s.reviews, r)
	return nil
}
func (s *reviewRepoStub) GetByID(_ context.Context, id uint) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("Review", id)
}
func (s *reviewRepoStub) ListByProduct(_ context.Context, productID uint) ([]*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Review{}
	for i := len(s.reviews) - 1; i >= 0; i-- {
		if s.reviews[i].ProductID == productID {
			out = append(out, s.reviews[i])
		}
	}
	return out, nil
}
func (s *reviewRepoStub) Ratings(_ context.Context, productIDs []uint) ([]*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratingsCalls++
	want := map[uint]bool{}
	for _, id := range productIDs {
		want[id] = true
	}
	out := []*models.Review{}
	for _, r := range s.reviews {
		if want[r.ProductID] {
			out = append(out, r)
		}
	}
	return out, nil
}
func (s *reviewRepoStub) Latest(ctx context.Context, limit int) ([]*models.Review, error) {
	if s.latestFn != nil {
		return s.latestFn(ctx, limit)
	}
	return []*models.Review{}, nil
}
func (s *reviewRepoStub) ListByUser(_ context.Context, _ uint) ([]*models.Review, error) {
	return []*models.Review{}, nil
}
func (s *reviewRepoStub) SetLikes(_ context.Context, id uint, likes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id {
			r.Likes = likes
			return nil
		}
	}
	return models.NewNotFoundError("Review", id)
}
func (s *reviewRepoStub) DeleteByProduct(ctx context.Context, productID uint) (int64, error) {
	return s.deleteByProductFn(ctx, productID)
}
