package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"scribbly/internal/httputil"
)

// RateLimit applies a process-wide fixed-window counter backed by redis:
// one shared key per window, INCR + EXPIRE. A redis outage fails open.
// Windows shorter than a second are floored to one second; EXPIRE has
// whole-second resolution.
func RateLimit(client *redis.Client, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	if window < time.Second {
		window = time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key := windowKey(time.Now(), window)

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn("rate limiter expire failed", "error", err)
				}
			}

			if count > int64(limit) {
				httputil.RespondError(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// windowKey derives the shared counter key for the window containing now.
func windowKey(now time.Time, window time.Duration) string {
	return fmt.Sprintf("ratelimit:%d", now.UnixNano()/window.Nanoseconds())
}
