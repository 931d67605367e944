package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"ripple/internal/config"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a full server against an in-memory sqlite database
// and returns the Fiber app with all routes registered.
func newTestServer(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Follow{}, &models.Post{}, &models.Comment{}, &models.Like{},
	))

	cfg := &config.Config{
		JWTSecret: "test-secret-key-for-handler-tests",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

// doJSON performs a JSON request against the app, optionally with a
// bearer token, and returns the response.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// registerUser creates an account through the API and returns its view.
func registerUser(t *testing.T, app *fiber.App, username, email string) MeView {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/register", "", fiber.Map{
		"email":      email,
		"username":   username,
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view MeView
	decodeBody(t, resp, &view)
	return view
}

// tokenFor logs the user in and returns the access token.
func tokenFor(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/token", "", fiber.Map{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Access)
	return body.Access
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// signup registers a user and returns its view plus an access token.
func signup(t *testing.T, app *fiber.App, username string) (MeView, string) {
	t.Helper()
	email := username + "@example.com"
	view := registerUser(t, app, username, email)
	return view, tokenFor(t, app, email)
}
