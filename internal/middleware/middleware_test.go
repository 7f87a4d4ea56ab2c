package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"Recipe-API/domain"
	"Recipe-API/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(t *testing.T, kind jwt.TokenKind) (*fiber.App, jwt.JWTService) {
	t.Helper()
	jwtService := jwt.NewJWTService(jwt.Config{
		SecretKey:  "middleware-secret",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})

	app := fiber.New()
	app.Get("/protected", NewMiddleware().AuthMiddleware(jwtService, kind), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals(LocalsUserID).(uint)})
	})
	return app, jwtService
}

func TestAuthMiddleware(t *testing.T) {
	app, jwtService := newProtectedApp(t, jwt.TokenAccess)

	access, err := jwtService.IssueAccessToken(5)
	require.NoError(t, err)
	refresh, err := jwtService.IssueRefreshToken(5)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{name: "valid access token", header: "Bearer " + access, status: fiber.StatusOK},
		{name: "lowercase scheme", header: "bearer " + access, status: fiber.StatusOK},
		{name: "missing header", header: "", status: fiber.StatusUnauthorized, message: domain.MessageMissingAuthHeader},
		{name: "wrong scheme", header: "Basic abc", status: fiber.StatusUnauthorized, message: domain.MessageInvalidAuthHeader},
		{name: "no token", header: "Bearer ", status: fiber.StatusUnauthorized, message: domain.MessageInvalidAuthHeader},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: fiber.StatusUnauthorized, message: domain.MessageFailedTokenInvalid},
		{name: "refresh token on access route", header: "Bearer " + refresh, status: fiber.StatusUnauthorized, message: domain.MessageFailedTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.status == fiber.StatusOK {
				assert.EqualValues(t, 5, body["user_id"])
				return
			}
			assert.Equal(t, domain.StatusError, body["status"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestAuthMiddleware_RefreshKind(t *testing.T) {
	app, jwtService := newProtectedApp(t, jwt.TokenRefresh)

	refresh, err := jwtService.IssueRefreshToken(8)
	require.NoError(t, err)
	access, err := jwtService.IssueAccessToken(8)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+refresh)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+access)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
