package config

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionTokens(t *testing.T) {
	userA := uuid.New()
	userB := uuid.New()

	tokens, err := parseSessionTokens("alpha:" + userA.String() + ", beta:" + userB.String())

	require.NoError(t, err)
	assert.Equal(t, userA, tokens["alpha"])
	assert.Equal(t, userB, tokens["beta"])
}

func TestParseSessionTokens_Empty(t *testing.T) {
	tokens, err := parseSessionTokens("")

	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestParseSessionTokens_Malformed(t *testing.T) {
	_, err := parseSessionTokens("missing-separator")
	assert.Error(t, err)

	_, err = parseSessionTokens("alpha:not-a-uuid")
	assert.Error(t, err)
}

func TestLoad_BuildsConnStrFromParts(t *testing.T) {
	t.Setenv("DB_CONN_STR", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "bank")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "minibank")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "host=db.internal port=5433 user=bank password=secret dbname=minibank sslmode=disable", cfg.DBConnStr)
}
