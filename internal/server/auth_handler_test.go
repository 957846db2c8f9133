package server

import (
	"net/http"
	"testing"

	"github.com/jonathan/jobtracker/internal/server/middleware"
	"github.com/jonathan/jobtracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})

	w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Ada Lovelace",
		"email":    "Ada@Example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeBody[types.LoginResponse](t, w)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Ada Lovelace", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})
	registerUser(t, h, "dup@example.com")

	w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Someone Else",
		"email":    "DUP@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["error"], "email already registered")
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})

	w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", "invalid json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeBody[map[string]string](t, w)["error"])
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})

	tests := []struct {
		name    string
		reqBody map[string]string
		wantMsg string
	}{
		{
			name:    "missing name",
			reqBody: map[string]string{"email": "test@example.com", "password": "password123"},
			wantMsg: "Name is required",
		},
		{
			name:    "invalid email",
			reqBody: map[string]string{"name": "Test", "email": "invalid-email", "password": "password123"},
			wantMsg: "Email must be a valid email address",
		},
		{
			name:    "short password",
			reqBody: map[string]string{"name": "Test", "email": "test@example.com", "password": "short"},
			wantMsg: "Password must be at least 8 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/api/auth/register", "", tt.reqBody)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeBody[map[string]string](t, w)["error"], tt.wantMsg)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})
	_, user := registerUser(t, h, "login@example.com")

	w := doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "LOGIN@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[types.LoginResponse](t, w)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// the issued token works on protected routes
	w = doRequest(t, h, http.MethodGet, "/api/jobs", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})
	registerUser(t, h, "creds@example.com")

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{name: "wrong password", email: "creds@example.com", pass: "wrongpassword"},
		{name: "unknown email", email: "nobody@example.com", pass: "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    tt.email,
				"password": tt.pass,
			})

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "invalid email or password", decodeBody[map[string]string](t, w)["error"])
		})
	}
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})

	w := doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "test@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, http.MethodPost, "/api/auth/login", "", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})
	token, _ := registerUser(t, h, "pw@example.com")

	w := doRequest(t, h, http.MethodPut, "/api/auth/password", token, map[string]string{
		"currentPassword": "wrongpassword",
		"newPassword":     "newpassword456",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "current password is incorrect", decodeBody[map[string]string](t, w)["error"])

	w = doRequest(t, h, http.MethodPut, "/api/auth/password", token, map[string]string{
		"currentPassword": "password123",
		"newPassword":     "newpassword456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Password updated successfully", decodeBody[map[string]string](t, w)["message"])

	w = doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "pw@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "pw@example.com", "password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_UpdatePassword_RequiresToken(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})

	w := doRequest(t, h, http.MethodPut, "/api/auth/password", "", map[string]string{
		"currentPassword": "password123",
		"newPassword":     "newpassword456",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgNoToken, decodeBody[map[string]string](t, w)["error"])
}

func TestAuthHandler_UpdatePassword_ValidationErrors(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})
	token, _ := registerUser(t, h, "pwv@example.com")

	w := doRequest(t, h, http.MethodPut, "/api/auth/password", token, map[string]string{
		"currentPassword": "password123",
		"newPassword":     "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody[map[string]string](t, w)["error"], "NewPassword must be at least 8 characters")
}

func TestProtectedRoutes_RejectBadTokens(t *testing.T) {
	_, h := newTestServer(t, testServerOptions{})

	w := doRequest(t, h, http.MethodGet, "/api/analytics/velocity", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgNoToken, decodeBody[map[string]string](t, w)["error"])

	w = doRequest(t, h, http.MethodGet, "/api/jobs", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, middleware.MsgInvalidToken, decodeBody[map[string]string](t, w)["error"])
}
