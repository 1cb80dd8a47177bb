package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/craftd/internal/config"
	"github.com/jonathan/craftd/internal/db"
	"github.com/jonathan/craftd/internal/server"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	userID := uuid.New()
	out, err := execute(t, "token", "--user", userID.String())
	require.NoError(t, err)

	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtConfig).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestTokenCommand_Errors(t *testing.T) {
	t.Setenv("CRAFTD_USER_ID", "")

	t.Run("missing user", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "cli-test-secret")
		_, err := execute(t, "token")
		assert.ErrorContains(t, err, "user_id is required")
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := execute(t, "token", "--user", uuid.NewString())
		assert.ErrorContains(t, err, "JWT_SECRET is required")
	})
}

func TestImportCommand_RequiresFile(t *testing.T) {
	_, err := execute(t, "import")
	assert.ErrorContains(t, err, `required flag(s) "file" not set`)
}

func TestPrintImportSummary(t *testing.T) {
	var out bytes.Buffer
	printImportSummary(&out, "portfolio.json", &db.ImportSummary{
		WorkExperiences: 2,
		CareerEvents:    3,
		JobApplications: 4,
		Companies:       1,
	})

	assert.Equal(t, `Imported portfolio.json
  Work experiences: 2
  Career events:    3
  Job applications: 4
  Companies:        1
`, out.String())
}
