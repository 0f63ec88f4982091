package service

import (
	"context"
	"log/slog"
	"strings"

	"itinfo/internal/middleware"
	"itinfo/internal/models"
	"itinfo/internal/repository"
	"itinfo/internal/session"
	"itinfo/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users and manages their login sessions.
type AuthService struct {
	users    repository.UserRepository
	sessions *session.Manager
}

type RegisterInput struct {
	Email           string
	Name            string
	Password        string
	PasswordConfirm string
	Phone           string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token   string         `json:"token"`
	User    *models.User   `json:"user"`
	Session session.Record `json:"session"`
}

func NewAuthService(users repository.UserRepository, sessions *session.Manager) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidateRegistration(in.Email, in.Name, in.Password, in.PasswordConfirm); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	email := validation.NormalizeEmail(in.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, registerFailed(err)
	}
	if existing != nil {
		return nil, models.NewConflictError(validation.MsgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, registerFailed(err)
	}
	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Phone:    strings.TrimSpace(in.Phone),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same address.
		if models.ErrorCode(err) == models.CodeConflict {
			return nil, models.NewConflictError(validation.MsgEmailTaken)
		}
		middleware.Logger.ErrorContext(ctx, "user registration failed",
			slog.String("email", email), slog.String("error", err.Error()))
		return nil, registerFailed(err)
	}

	return s.issue(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validation.ValidateLogin(in.Email, in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.users.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError(validation.MsgInvalidCredential)
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError(validation.MsgInvalidCredential)
	}

	return s.issue(ctx, user)
}

// Logout revokes token and clears its session record.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Current returns the session record behind token.
func (s *AuthService) Current(ctx context.Context, token string) (session.Record, error) {
	return s.sessions.Resolve(ctx, token)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, rec, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: user, Session: rec}, nil
}

func registerFailed(err error) error {
	return &models.AppError{Code: models.CodeInternal, Message: validation.MsgRegisterFailed, Err: err}
}
