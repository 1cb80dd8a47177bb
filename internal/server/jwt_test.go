package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/craftd/internal/config"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		Issuer:          config.DefaultJWTIssuer,
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, config.DefaultJWTIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_GenerateToken_NilUser(t *testing.T) {
	service := setupTestJWTService(t, 24)

	_, err := service.GenerateToken(uuid.Nil)
	assert.ErrorContains(t, err, "nil user ID")
}

func TestJWTService_GenerateToken_UniqueTokens(t *testing.T) {
	service := setupTestJWTService(t, 24)
	userID := uuid.New()

	token1, err := service.GenerateToken(userID)
	require.NoError(t, err)
	token2, err := service.GenerateToken(userID)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2, "each token carries its own ID")
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: "a-different-secret", ExpirationHours: 24})

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_ValidateToken_WrongIssuer(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: testJWTSecret, Issuer: "someone-else", ExpirationHours: 24})

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_MalformedToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"one part", "invalid"},
		{"two parts", "invalid.token"},
		{"four parts", "invalid.token.format.extra"},
		{"invalid base64", "invalid.base64.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_ValidateToken_RejectsUnsignedAlgorithms(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.DefaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_MissingUserID(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.DefaultJWTIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	assert.ErrorContains(t, err, "no user_id")
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	issued := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	userID := uuid.New()
	token, err := service.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time.UTC())

	service.now = func() time.Time { return issued.Add(2 * time.Hour) }
	expired, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, expired)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_ErrorHandling(t *testing.T) {
	service := setupTestJWTService(t, 24)

	claims, err := service.ValidateToken("")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "empty")
}
