package service

import (
	"context"
	"testing"
	"time"

	"itinfo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestCommentService_CreateComment(t *testing.T) {
	posts := newPostRepoStub(
		&models.Post{ID: 1, BoardType: models.BoardFree},
		&models.Post{ID: 2, BoardType: models.BoardFree},
	)
	comments := newCommentRepoStub(
		&models.Comment{ID: 10, PostID: 1, Content: "top"},
		&models.Comment{ID: 11, PostID: 2, Content: "elsewhere"},
	)
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	t.Run("Top Level", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 3, PostID: 1, Content: "  hello "})
		require.NoError(t, err)
		assert.Equal(t, "hello", c.Content)
		assert.Nil(t, c.ParentCommentID)
	})

	t.Run("Reply", func(t *testing.T) {
		c, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 3, PostID: 1, ParentCommentID: uintPtr(10), Content: "reply"})
		require.NoError(t, err)
		require.NotNil(t, c.ParentCommentID)
		assert.Equal(t, uint(10), *c.ParentCommentID)
	})

	t.Run("Empty Content", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 3, PostID: 1, Content: "   "})
		assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	})

	t.Run("Missing Post", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 3, PostID: 9, Content: "x"})
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("Parent On Another Post", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 3, PostID: 1, ParentCommentID: uintPtr(11), Content: "x"})
		assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	})

	t.Run("Missing Parent", func(t *testing.T) {
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 3, PostID: 1, ParentCommentID: uintPtr(999), Content: "x"})
		assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	})
}

func TestCommentService_ListThread(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []*models.Comment{
		{ID: 1, PostID: 1, Content: "a", CreatedAt: base},
		{ID: 2, PostID: 1, Content: "a-reply", ParentCommentID: uintPtr(1), CreatedAt: base.Add(time.Minute)},
		{ID: 3, PostID: 1, Content: "reply-to-reply", ParentCommentID: uintPtr(2), CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, PostID: 1, Content: "b", CreatedAt: base.Add(3 * time.Minute)},
	}
	comments := newCommentRepoStub()
	comments.listByPostFn = func(context.Context, uint) ([]*models.Comment, error) { return rows, nil }
	svc := NewCommentService(comments, newPostRepoStub(&models.Post{ID: 1}))

	groups, err := svc.ListThread(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, uint(1), groups[0].Comment.ID)
	require.Len(t, groups[0].Replies, 1)
	assert.Equal(t, uint(2), groups[0].Replies[0].ID)
	assert.Equal(t, uint(4), groups[1].Comment.ID)
	assert.Empty(t, groups[1].Replies)

	_, err = svc.ListThread(context.Background(), 2)
	assert.True(t, models.IsNotFound(err))
}
