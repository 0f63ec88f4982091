// Package service holds the application's business operations. Handlers call
// services; services call repositories. Errors returned to handlers are
// *models.AppError values whose Code picks the HTTP status.
package service

import (
	"context"

	"itinfo/internal/likes"
	"itinfo/internal/models"
	"itinfo/internal/observability"
)

const maxListLimit = 100

func clampLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

// toggleLike flips a viewer's like and writes the new counter through write.
func toggleLike(ctx context.Context, set likes.Set, viewer string, kind likes.Kind, id uint, current int, write func(int) error) (bool, error) {
	if viewer == "" {
		return false, models.NewValidationError("Missing viewer session")
	}
	_, liked, err := likes.Flip(ctx, set, viewer, kind, id, current, write)
	if err != nil {
		if models.ErrorCode(err) != "" {
			return false, err
		}
		return false, models.NewInternalError(err)
	}

	direction := "unlike"
	if liked {
		direction = "like"
	}
	observability.LikeToggles.WithLabelValues(string(kind), direction).Inc()
	return liked, nil
}
