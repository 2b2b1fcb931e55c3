package httpapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// IdempotencyHeader is the standard HTTP header for idempotency keys
	IdempotencyHeader = "Idempotency-Key"

	// idempotencyCacheTTL defines how long cached responses live in Redis
	idempotencyCacheTTL = 24 * time.Hour

	// lockTimeout prevents indefinite locks if a request crashes mid-flight
	lockTimeout = 10 * time.Second

	cacheKeyPrefix = "idempotency:"
	lockKeyPrefix  = "lock:"
)

// responseRecorder captures the status code and body of a handler response so
// successful results can be replayed for a resubmitted key.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *responseRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// Idempotency returns middleware that replays cached responses for repeated
// Idempotency-Key submissions and rejects concurrent duplicates with 409.
//
// This is caller-side protection at the HTTP boundary only: requests without
// the header pass through untouched, and the transfer engine itself never
// deduplicates — each validated call still creates a new transaction.
func Idempotency(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			cacheKey := cacheKeyPrefix + key
			lockKey := lockKeyPrefix + key

			cached, err := rdb.Get(ctx, cacheKey).Result()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				w.Write([]byte(cached))
				return
			}

			acquired, err := rdb.SetNX(ctx, lockKey, "processing", lockTimeout).Result()
			if err != nil {
				slog.Error("idempotency lock acquisition failed", "error", err)
				respondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !acquired {
				respondError(w, http.StatusConflict, "a request with this idempotency key is currently being processed")
				return
			}

			defer func() {
				if err := rdb.Del(ctx, lockKey).Err(); err != nil {
					slog.Warn("failed to release idempotency lock", "key", key, "error", err)
				}
			}()

			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(recorder, r)

			// Only successful outcomes are worth replaying; errors should be
			// retried with fresh input.
			if recorder.statusCode >= 200 && recorder.statusCode < 300 {
				if err := rdb.Set(ctx, cacheKey, recorder.body.String(), idempotencyCacheTTL).Err(); err != nil {
					slog.Warn("failed to cache idempotent response", "key", key, "error", err)
				}
			}
		})
	}
}
