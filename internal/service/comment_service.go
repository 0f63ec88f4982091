package service

import (
	"context"
	"log/slog"
	"strings"

	"itinfo/internal/middleware"
	"itinfo/internal/models"
	"itinfo/internal/observability"
	"itinfo/internal/repository"
	"itinfo/internal/thread"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID          uint
	PostID          uint
	ParentCommentID *uint
	Content         string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// ListThread returns the post's comments as top-level groups with their replies.
func (s *CommentService) ListThread(ctx context.Context, postID uint) ([]thread.Group, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if dropped := thread.Dropped(comments); len(dropped) > 0 {
		ids := make([]uint, len(dropped))
		for i, c := range dropped {
			ids[i] = c.ID
		}
		observability.CommentsDropped.Add(float64(len(dropped)))
		middleware.Logger.WarnContext(ctx, "comments excluded from thread",
			slog.Uint64("post_id", uint64(postID)),
			slog.Any("comment_ids", ids),
		)
	}
	return thread.Assemble(comments), nil
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	const maxContentLen = 5000

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(content)) > maxContentLen {
		return nil, models.NewValidationError("Comment too long (max 5000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}
	if in.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentCommentID)
		if err != nil {
			if models.IsNotFound(err) {
				return nil, models.NewValidationError("Parent comment does not exist")
			}
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to another post")
		}
	}

	comment := &models.Comment{
		Content:         content,
		UserID:          in.UserID,
		PostID:          in.PostID,
		ParentCommentID: in.ParentCommentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}
