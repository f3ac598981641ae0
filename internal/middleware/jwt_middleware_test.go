package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"kicau/internal/middleware"
	"kicau/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func setupApp() *fiber.App {
	userService := services.NewUserService(nil, testSecret, time.Hour, 4)
	app := fiber.New()
	app.Get("/whoami", middleware.AuthRequired(userService), func(c *fiber.Ctx) error {
		return c.SendString(strconv.FormatUint(uint64(c.Locals("user_id").(uint)), 10))
	})
	return app
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthRequired(t *testing.T) {
	app := setupApp()
	exp := time.Now().Add(time.Hour).Unix()

	status, body := get(t, app, "Bearer "+signed(t, testSecret, jwt.MapClaims{"user_id": 7, "exp": exp}))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", body)

	status, _ = get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = get(t, app, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, status)

	// wrong signing key
	status, body = get(t, app, "Bearer "+signed(t, "other", jwt.MapClaims{"user_id": 7, "exp": exp}))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "invalid token")

	// expired
	status, _ = get(t, app, "Bearer "+signed(t, testSecret, jwt.MapClaims{"user_id": 7, "exp": time.Now().Add(-time.Minute).Unix()}))
	assert.Equal(t, http.StatusUnauthorized, status)

	// valid signature but no user id
	status, body = get(t, app, "Bearer "+signed(t, testSecret, jwt.MapClaims{"nickname": "ghost", "exp": exp}))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "missing user_id")
}
