package repository

import (
	"context"

	"itinfo/internal/models"
	"itinfo/internal/store"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// GetByEmail returns the user with its password hash, or nil when no account uses email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetAdmin(ctx context.Context, id uint, admin bool) error
}

type userRepository struct {
	store store.Store
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := getOne(ctx, r.store, store.Users, "User", "user_id", id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	found, err := r.store.QueryOne(ctx, store.Users, store.Query{
		Filters: []store.Filter{store.Eq("email", email)},
	}, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.Insert(ctx, store.Users, user)
}

func (r *userRepository) SetAdmin(ctx context.Context, id uint, admin bool) error {
	n, err := r.store.Update(ctx, store.Users, map[string]any{"is_admin": admin}, store.Eq("user_id", id))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}
