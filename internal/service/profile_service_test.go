package service

import (
	"context"
	"testing"

	"itinfo/internal/cache"
	"itinfo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Get(t *testing.T) {
	calls := 0
	users := &userRepoStub{getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
		calls++
		if id != 7 {
			return nil, models.NewNotFoundError("User", id)
		}
		return &models.User{ID: 7, Name: "박민수", Email: "park@example.com"}, nil
	}}
	posts := newPostRepoStub(
		&models.Post{ID: 1, UserID: 7, Title: "mine"},
		&models.Post{ID: 2, UserID: 8, Title: "theirs"},
	)
	c, mr := newTestCache(t)
	svc := NewProfileService(users, posts, newCommentRepoStub(), &reviewRepoStub{}, c)
	ctx := context.Background()

	p, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "박민수", p.User.Name)
	require.Len(t, p.Posts, 1)
	assert.Equal(t, "mine", p.Posts[0].Title)
	assert.NotNil(t, p.Comments)
	assert.NotNil(t, p.Reviews)
	assert.True(t, mr.Exists(cache.UserKey(7)))

	_, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	svc.InvalidateUser(ctx, 7)
	_, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	_, err = svc.Get(ctx, 8)
	assert.True(t, models.IsNotFound(err))
}
