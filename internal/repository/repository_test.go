package repository

import (
	"context"
	"testing"
	"time"

	"itinfo/internal/models"
	"itinfo/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Product{}, &models.Review{}))
	return store.New(db, store.DefaultTables()...)
}

func createUser(t *testing.T, repo UserRepository, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	s := setupStore(t)
	repo := NewUserRepository(s)
	ctx := context.Background()

	u := createUser(t, repo, "kim", "kim@example.com")

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "kim", got.Name)
	})

	t.Run("GetByID Missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("GetByEmail Includes Hash", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "kim@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "hash", got.Password)
	})

	t.Run("GetByEmail Missing Returns Nil", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("SetAdmin", func(t *testing.T) {
		require.NoError(t, repo.SetAdmin(ctx, u.ID, true))
		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAdmin)
		assert.True(t, models.IsNotFound(repo.SetAdmin(ctx, 999, true)))
	})
}

func TestPostRepository(t *testing.T) {
	s := setupStore(t)
	users := NewUserRepository(s)
	posts := NewPostRepository(s)
	comments := NewCommentRepository(s)
	ctx := context.Background()

	u := createUser(t, users, "lee", "lee@example.com")
	seed := []*models.Post{
		{Title: "점검 안내", Content: "notice", BoardType: models.BoardNotice, UserID: u.ID, Likes: 50, CreatedAt: base},
		{Title: "갤럭시 후기", Content: "good phone", BoardType: models.BoardReview, UserID: u.ID, Likes: 7, CreatedAt: base.Add(time.Hour)},
		{Title: "hello", Content: "first post", BoardType: models.BoardFree, UserID: u.ID, Likes: 2, CreatedAt: base.Add(2 * time.Hour)},
		{Title: "노트북 추천?", Content: "Gaming Laptop", BoardType: models.BoardQnA, UserID: u.ID, Likes: 7, CreatedAt: base.Add(3 * time.Hour)},
	}
	for _, p := range seed {
		require.NoError(t, posts.Create(ctx, p))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, comments.Create(ctx, &models.Comment{Content: "c", UserID: u.ID, PostID: seed[2].ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	t.Run("Community Excludes Notices Newest First With Counts", func(t *testing.T) {
		got, err := posts.List(ctx, PostListOptions{ExcludeNotices: true, WithComments: true})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "노트북 추천?", got[0].Title)
		assert.Equal(t, "hello", got[1].Title)
		assert.Equal(t, 2, got[1].CommentsCount)
		require.NotNil(t, got[1].Author)
		assert.Equal(t, "lee", got[1].Author.Name)
	})

	t.Run("Board Filter", func(t *testing.T) {
		got, err := posts.List(ctx, PostListOptions{Board: models.BoardNotice})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsNotice())
	})

	t.Run("Search Title Or Content", func(t *testing.T) {
		got, err := posts.List(ctx, PostListOptions{ExcludeNotices: true, Search: "laptop"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, seed[3].ID, got[0].ID)
	})

	t.Run("Popular Ties Broken By Recency", func(t *testing.T) {
		got, err := posts.List(ctx, PostListOptions{ExcludeNotices: true, ByLikes: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, seed[3].ID, got[0].ID)
		assert.Equal(t, seed[1].ID, got[1].ID)
	})

	t.Run("GetByID", func(t *testing.T) {
		got, err := posts.GetByID(ctx, seed[2].ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CommentsCount)
		_, err = posts.GetByID(ctx, 999)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("SetLikes", func(t *testing.T) {
		require.NoError(t, posts.SetLikes(ctx, seed[2].ID, 3))
		got, err := posts.GetByID(ctx, seed[2].ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Likes)
		assert.True(t, models.IsNotFound(posts.SetLikes(ctx, 999, 1)))
	})

	t.Run("ListByUser", func(t *testing.T) {
		got, err := posts.ListByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("Delete", func(t *testing.T) {
		n, err := comments.DeleteByPost(ctx, seed[2].ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		require.NoError(t, posts.Delete(ctx, seed[2].ID))
		assert.True(t, models.IsNotFound(posts.Delete(ctx, seed[2].ID)))
	})
}

func TestCommentRepository_ListByPostOrdering(t *testing.T) {
	s := setupStore(t)
	users := NewUserRepository(s)
	posts := NewPostRepository(s)
	repo := NewCommentRepository(s)
	ctx := context.Background()

	u := createUser(t, users, "park", "park@example.com")
	p := &models.Post{Title: "t", Content: "c", BoardType: models.BoardFree, UserID: u.ID}
	require.NoError(t, posts.Create(ctx, p))

	later := &models.Comment{Content: "later", UserID: u.ID, PostID: p.ID, CreatedAt: base.Add(time.Minute)}
	first := &models.Comment{Content: "first", UserID: u.ID, PostID: p.ID, CreatedAt: base}
	tie := &models.Comment{Content: "tie", UserID: u.ID, PostID: p.ID, CreatedAt: base.Add(time.Minute)}
	for _, c := range []*models.Comment{later, first, tie} {
		require.NoError(t, repo.Create(ctx, c))
	}

	got, err := repo.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"first", "later", "tie"}, []string{got[0].Content, got[1].Content, got[2].Content})
	require.NotNil(t, got[0].Author)
	assert.Equal(t, "park", got[0].Author.Name)

	mine, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	require.NotNil(t, mine[0].Post)
	assert.Equal(t, "t", mine[0].Post.Title)
}

func TestProductAndReviewRepository(t *testing.T) {
	s := setupStore(t)
	users := NewUserRepository(s)
	products := NewProductRepository(s)
	reviews := NewReviewRepository(s)
	ctx := context.Background()

	u := createUser(t, users, "choi", "choi@example.com")
	catalog := []*models.Product{
		{Name: "Galaxy S25", Brand: "Samsung", Category: models.CategorySmartphone, SubCategory: "안드로이드", Price: 1200000},
		{Name: "iPhone 16", Brand: "Apple", Category: models.CategorySmartphone, SubCategory: "아이폰", Price: 1300000},
		{Name: "Gram 16", Brand: "LG", Category: models.CategoryLaptop, SubCategory: "울트라북", Price: 1800000},
	}
	for _, p := range catalog {
		require.NoError(t, products.Create(ctx, p))
	}
	rs := []*models.Review{
		{ProductID: catalog[0].ID, UserID: u.ID, Rating: 4.5, Content: "a", CreatedAt: base},
		{ProductID: catalog[0].ID, UserID: u.ID, Rating: 3, Content: "b", CreatedAt: base.Add(time.Hour)},
		{ProductID: catalog[2].ID, UserID: u.ID, Rating: 5, Content: "c", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range rs {
		require.NoError(t, reviews.Create(ctx, r))
	}

	t.Run("Category Filter", func(t *testing.T) {
		got, err := products.List(ctx, ProductListOptions{Category: models.CategorySmartphone})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Search Matches Brand", func(t *testing.T) {
		got, err := products.List(ctx, ProductListOptions{Search: "lg"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Gram 16", got[0].Name)
	})

	t.Run("Price Descending", func(t *testing.T) {
		got, err := products.List(ctx, ProductListOptions{OrderBy: []store.Order{{Column: "price", Desc: true}}})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Gram 16", got[0].Name)
	})

	t.Run("Ratings", func(t *testing.T) {
		got, err := reviews.Ratings(ctx, []uint{catalog[0].ID, catalog[1].ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		empty, err := reviews.Ratings(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("Latest", func(t *testing.T) {
		got, err := reviews.Latest(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "c", got[0].Content)
		require.NotNil(t, got[0].Product)
		assert.Equal(t, "Gram 16", got[0].Product.Name)
		require.NotNil(t, got[0].Author)
	})

	t.Run("ListByProduct Newest First", func(t *testing.T) {
		got, err := reviews.ListByProduct(ctx, catalog[0].ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].Content)
	})

	t.Run("SetLikes", func(t *testing.T) {
		require.NoError(t, reviews.SetLikes(ctx, rs[0].ID, 4))
		got, err := reviews.GetByID(ctx, rs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Likes)
	})

	t.Run("Cascade Delete", func(t *testing.T) {
		n, err := reviews.DeleteByProduct(ctx, catalog[0].ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		require.NoError(t, products.Delete(ctx, catalog[0].ID))
		_, err = products.GetByID(ctx, catalog[0].ID)
		assert.True(t, models.IsNotFound(err))
	})
}
