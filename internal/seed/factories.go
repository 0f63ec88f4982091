// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"itinfo/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	rng   *rand.Rand
	hash  string
}

// NewFactory creates a Factory bound to db. A zero opts.RandSeed seeds from the clock.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed), rng: rand.New(rand.NewSource(seed))}
}

func (f *Factory) passwordHash() string {
	if f.hash != "" {
		return f.hash
	}
	if f.opts.SkipBcrypt {
		f.hash = DefaultPassword
		return f.hash
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	f.hash = string(hashed)
	return f.hash
}

// createdAt spreads timestamps over the last MaxDays days.
func (f *Factory) createdAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Name:     f.faker.Name(),
		Email:    strings.ToLower(fmt.Sprintf("%s.%s@example.com", f.faker.Username(), f.faker.UUID()[:8])),
		Password: f.passwordHash(),
		Phone:    f.faker.Phone(),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved community post by user on a random board.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	boards := models.CommunityBoards()
	post := &models.Post{
		Title:     f.faker.Sentence(5),
		Content:   f.faker.Paragraph(1, 3, 8, "\n"),
		BoardType: boards[f.rng.Intn(len(boards))],
		UserID:    user.ID,
		Likes:     f.rng.Intn(40),
		CreatedAt: f.createdAt(),
	}
	if f.rng.Float32() < 0.3 {
		url := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID())
		post.ImageURL = &url
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment on post. parent may be nil.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   f.faker.Sentence(10),
		UserID:    user.ID,
		PostID:    post.ID,
		CreatedAt: post.CreatedAt.Add(time.Duration(f.rng.Intn(72)+1) * time.Hour),
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
		comment.CreatedAt = parent.CreatedAt.Add(time.Duration(f.rng.Intn(120)+1) * time.Minute)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReview persists a review of product with a rating in half-star steps.
func (f *Factory) CreateReview(user *models.User, product *models.Product, overrides ...func(*models.Review)) (*models.Review, error) {
	review := &models.Review{
		ProductID: product.ID,
		UserID:    user.ID,
		Rating:    float64(f.rng.Intn(7)+4) / 2,
		Pros:      f.faker.Sentence(6),
		Cons:      f.faker.Sentence(6),
		Content:   f.faker.Paragraph(1, 2, 10, " "),
		Likes:     f.rng.Intn(25),
		CreatedAt: f.createdAt(),
	}
	for _, override := range overrides {
		override(review)
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
