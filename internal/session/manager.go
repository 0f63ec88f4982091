package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"itinfo/internal/middleware"
	"itinfo/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token claims fixed for this service.
const (
	Issuer   = "itinfo-api"
	Audience = "itinfo-client"
)

// DefaultTTL is the token and session lifetime when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

var errInvalidToken = models.NewUnauthorizedError("Invalid or expired token")

// Claims are the parts of a token the server relies on.
type Claims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

// Manager issues tokens, stores the matching session records and resolves
// tokens back to them.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager signing with secret. A non-positive ttl means DefaultTTL.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func newTokenID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}

// Issue signs a token for u and saves its session record.
func (m *Manager) Issue(ctx context.Context, u *models.User) (string, Record, error) {
	if len(m.secret) == 0 {
		return "", Record{}, errors.New("JWT secret not configured")
	}

	now := m.now()
	jti := newTokenID(now)
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(u.ID), 10),
		"iss": Issuer,
		"aud": Audience,
		"exp": now.Add(m.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": jti,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Record{}, fmt.Errorf("sign token: %w", err)
	}

	rec := FromUser(u)
	if err := m.store.Save(ctx, jti, rec, m.ttl); err != nil {
		return "", Record{}, err
	}
	return token, rec, nil
}

// Parse validates the token signature and the standard claims.
func (m *Manager) Parse(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, errInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errInvalidToken
	}
	sub, err := mc.GetSubject()
	if err != nil {
		return Claims{}, errInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Claims{}, errInvalidToken
	}
	jti, _ := mc["jti"].(string)
	if jti == "" {
		return Claims{}, errInvalidToken
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, errInvalidToken
	}

	return Claims{UserID: uint(userID), TokenID: jti, ExpiresAt: exp.Time}, nil
}

// Authenticate parses token and rejects revoked ones.
func (m *Manager) Authenticate(ctx context.Context, token string) (middleware.Identity, error) {
	c, err := m.Parse(token)
	if err != nil {
		return middleware.Identity{}, err
	}
	revoked, err := m.store.Revoked(ctx, c.TokenID)
	if err != nil {
		// Fail open on store errors: the signature is already verified.
		middleware.Logger.WarnContext(ctx, "revocation check failed", slog.String("error", err.Error()))
	} else if revoked {
		return middleware.Identity{}, models.NewUnauthorizedError("Token has been revoked")
	}
	return middleware.Identity{UserID: c.UserID, TokenID: c.TokenID}, nil
}

// Resolve returns the session record behind a live token.
func (m *Manager) Resolve(ctx context.Context, token string) (Record, error) {
	id, err := m.Authenticate(ctx, token)
	if err != nil {
		return Record{}, err
	}
	rec, ok, err := m.store.Load(ctx, id.TokenID)
	if err != nil {
		return Record{}, models.NewInternalError(err)
	}
	if !ok || rec.UserID != id.UserID {
		return Record{}, models.NewUnauthorizedError("Session not found")
	}
	return rec, nil
}

// Revoke blacklists the token for the rest of its lifetime and clears its record.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	c, err := m.Parse(token)
	if err != nil {
		return err
	}
	if err := m.store.Revoke(ctx, c.TokenID, c.ExpiresAt.Sub(m.now())); err != nil {
		return models.NewInternalError(err)
	}
	if err := m.store.Clear(ctx, c.TokenID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
