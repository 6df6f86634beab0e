package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajivgeraev/dealer-api/internal/utils"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/", handler, func(c fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(userID.String())
	})
	return app
}

func call(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := utils.NewJWTService("secret")
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	app := newTestApp(AuthMiddleware(jwtService))

	status, body := call(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID.String(), body)

	status, _ = call(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	jwtService := utils.NewJWTService("secret")
	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	app := newTestApp(OptionalAuthMiddleware(jwtService))

	status, body := call(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = call(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, userID.String(), body)

	status, _ = call(t, app, "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, status)
}
