package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]uuid.UUID)}
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &testClaims{userID: userID}, nil
}

type testClaims struct {
	userID uuid.UUID
}

func (c *testClaims) GetUserID() uuid.UUID {
	return c.userID
}

func serve(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	t.Helper()

	var (
		called    bool
		contextID uuid.UUID
	)
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, err := GetUserID(r)
		require.NoError(t, err)
		contextID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, contextID, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	userID := uuid.New()
	validator.validTokens["valid-test-token-123"] = userID

	for _, header := range []string{"Bearer valid-test-token-123", "bearer valid-test-token-123", "BeArEr  valid-test-token-123"} {
		t.Run(header, func(t *testing.T) {
			w, contextID, called := serve(t, validator, header)

			assert.True(t, called, "handler should be called")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, userID, contextID)
		})
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := newTestTokenValidator()
	validator.validTokens["nil-user"] = uuid.Nil

	tests := []struct {
		name       string
		authHeader string
		wantError  string
	}{
		{"missing header", "", "missing bearer token"},
		{"missing Bearer prefix", "token123", "missing bearer token"},
		{"only Bearer", "Bearer", "missing bearer token"},
		{"extra parts", "Bearer a b", "missing bearer token"},
		{"basic scheme", "Basic dXNlcjpwYXNz", "missing bearer token"},
		{"unknown token", "Bearer not.a.valid.jwt", "invalid token"},
		{"nil user", "Bearer nil-user", "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, called := serve(t, validator, tt.authHeader)

			assert.False(t, called, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tt.wantError), w.Body.String())
		})
	}
}

func TestGetUserID_Success(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))

	extractedUserID, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, extractedUserID)
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	userID, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, userID)
	assert.Contains(t, err.Error(), "user ID not found")
}

func TestGetUserID_InvalidType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

	userID, err := GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, userID)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		wantOK bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic dXNlcjpwYXNz", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := bearerToken(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
