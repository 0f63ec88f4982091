package seed

import (
	"errors"
	"fmt"
	"log/slog"

	"itinfo/internal/middleware"
	"itinfo/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	NumReviews  int
	ShouldClean bool
	// SkipBcrypt stores DefaultPassword unhashed; seeded users cannot log in.
	SkipBcrypt bool
	MaxDays    int
	RandSeed   int64
}

// Result counts what Seed created.
type Result struct {
	Users    int
	Notices  int
	Posts    int
	Comments int
	Products int
	Reviews  int
}

var notices = []struct{ title, content string }{
	{"IT Info 커뮤니티 이용 규칙 안내", "서로 존중하는 커뮤니티를 위해 게시판 성격에 맞는 글을 작성해주세요."},
	{"정기 서버 점검 안내", "매주 화요일 새벽 3시부터 4시까지 서버 점검이 진행됩니다."},
	{"제품 리뷰 작성 가이드", "장점과 단점을 구체적으로 적어주시면 다른 회원들에게 큰 도움이 됩니다."},
}

// Seed populates the database with demo data. Notices are authored by the
// first existing admin, or by the first seeded user when there is none.
func Seed(db *gorm.DB, opts Options) (*Result, error) {
	if opts.NumUsers <= 0 {
		return nil, errors.New("seed needs at least one user")
	}
	middleware.Logger.Info("Starting database seeding",
		slog.Int("users", opts.NumUsers), slog.Int("posts", opts.NumPosts), slog.Int("reviews", opts.NumReviews))

	if opts.ShouldClean {
		if err := ClearAll(db); err != nil {
			return nil, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	f := NewFactory(db, opts)
	res := &Result{}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, u)
	}
	res.Users = len(users)

	author := users[0]
	var admin models.User
	if err := db.Where("is_admin = ?", true).Order("user_id").First(&admin).Error; err == nil {
		author = &admin
	}
	noticePosts := make([]*models.Post, 0, len(notices))
	for _, n := range notices {
		noticePosts = append(noticePosts, f.BuildPost(author, func(p *models.Post) {
			p.Title = n.title
			p.Content = n.content
			p.BoardType = models.BoardNotice
			p.ImageURL = nil
		}))
	}
	if err := f.CreatePostsBatch(noticePosts); err != nil {
		return nil, fmt.Errorf("failed to create notices: %w", err)
	}
	res.Notices = len(noticePosts)

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		posts = append(posts, f.BuildPost(users[f.rng.Intn(len(users))]))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	res.Posts = len(posts)

	for _, p := range posts {
		for i := f.rng.Intn(4); i > 0; i-- {
			top, err := f.CreateComment(users[f.rng.Intn(len(users))], p, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to create comments: %w", err)
			}
			res.Comments++
			if f.rng.Float32() < 0.4 {
				if _, err := f.CreateComment(users[f.rng.Intn(len(users))], p, top); err != nil {
					return nil, fmt.Errorf("failed to create replies: %w", err)
				}
				res.Comments++
			}
		}
	}

	products := make([]*models.Product, 0, len(catalog))
	for _, e := range catalog {
		p := e.product()
		p.CreatedAt = f.createdAt()
		if err := db.Create(p).Error; err != nil {
			return nil, fmt.Errorf("failed to create products: %w", err)
		}
		products = append(products, p)
	}
	res.Products = len(products)

	for i := 0; i < opts.NumReviews; i++ {
		if _, err := f.CreateReview(users[f.rng.Intn(len(users))], products[f.rng.Intn(len(products))]); err != nil {
			return nil, fmt.Errorf("failed to create reviews: %w", err)
		}
		res.Reviews++
	}

	middleware.Logger.Info("Database seeding completed",
		slog.Int("users", res.Users), slog.Int("notices", res.Notices), slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments), slog.Int("products", res.Products), slog.Int("reviews", res.Reviews))
	return res, nil
}

// ClearAll removes every row from the application tables, children first.
func ClearAll(db *gorm.DB) error {
	middleware.Logger.Info("Clearing existing data")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE it_info_reviews, it_info_comments, it_info_posts, it_info_products, it_info_users RESTART IDENTITY CASCADE`).Error
	}
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []any{&models.Review{}, &models.Comment{}, &models.Post{}, &models.Product{}, &models.User{}} {
		if err := all.Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
