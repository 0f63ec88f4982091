package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"itinfo/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"postId", "post ID"},
		{"parentCommentId", "parent comment ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestMapServiceError(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, mapServiceError(models.NewValidationError("x")))
	assert.Equal(t, fiber.StatusConflict, mapServiceError(models.NewConflictError("x")))
	assert.Equal(t, fiber.StatusNotFound, mapServiceError(models.NewNotFoundError("Post", 1)))
	assert.Equal(t, fiber.StatusUnauthorized, mapServiceError(models.NewUnauthorizedError("x")))
	assert.Equal(t, fiber.StatusServiceUnavailable, mapServiceError(models.NewUnavailableError("x")))
	assert.Equal(t, fiber.StatusInternalServerError, mapServiceError(errors.New("boom")))
}

func TestRespondServiceError_HidesPlainErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondServiceError(c, errors.New("pq: connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body strings.Builder
	_, _ = body.ReadFrom(resp.Body)
	assert.NotContains(t, body.String(), "connection refused")
}

func TestViewerSession(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		if jti := c.Get("X-Test-Jti"); jti != "" {
			c.Locals("tokenID", jti)
		}
		return c.SendString(viewerSession(c))
	})

	get := func(headers map[string]string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		var b strings.Builder
		_, _ = b.ReadFrom(resp.Body)
		return b.String()
	}

	assert.Equal(t, "v:abc", get(map[string]string{viewerSessionHeader: "abc", "X-Test-Jti": "j1"}))
	assert.Equal(t, "t:j1", get(map[string]string{"X-Test-Jti": "j1"}))
	assert.True(t, strings.HasPrefix(get(nil), "ip:"))

	t.Run("Long Header Cut On Rune Boundary", func(t *testing.T) {
		got := get(map[string]string{viewerSessionHeader: strings.Repeat("가", 200)})
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, "v:"+strings.Repeat("가", maxViewerSessionRunes), got)
	})
}

func TestParseID_Invalid(t *testing.T) {
	app := fiber.New()
	s := &Server{}
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	for _, path := range []string{"/items/abc", "/items/0", "/items/-3"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}
