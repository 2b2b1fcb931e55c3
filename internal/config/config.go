package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration resolved from the environment
type Config struct {
	Port      string
	DBConnStr string
	RedisAddr string

	// SessionTokens maps issued bearer tokens to user IDs. Real token
	// issuance belongs to the authentication collaborator; this map is the
	// narrow interface the API consumes from it.
	SessionTokens map[string]uuid.UUID

	// SeedDemo enables demo account seeding on startup
	SeedDemo bool
}

// Load reads .env (if present) and assembles the configuration.
// DB_CONN_STR wins when set; otherwise the string is built from the discrete
// DB_* variables so Docker setups work out of the box.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on system env variables")
	}

	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "minibank"),
		)
	}

	tokens, err := parseSessionTokens(os.Getenv("SESSION_TOKENS"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBConnStr:     dbConnStr,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SessionTokens: tokens,
		SeedDemo:      getEnv("SEED_DEMO", "true") == "true",
	}, nil
}

// parseSessionTokens parses "token:userID,token:userID" pairs.
// An empty value yields an empty map; the caller decides on a fallback.
func parseSessionTokens(raw string) (map[string]uuid.UUID, error) {
	tokens := make(map[string]uuid.UUID)
	if raw == "" {
		return tokens, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		token, id, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return nil, fmt.Errorf("malformed SESSION_TOKENS entry %q", pair)
		}

		userID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("malformed user ID in SESSION_TOKENS entry %q: %w", pair, err)
		}

		tokens[token] = userID
	}

	return tokens, nil
}

// getEnv returns the env value or a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
