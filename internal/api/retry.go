package api

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxRetryAfter caps the delay a server can ask for.
const maxRetryAfter = time.Hour

// parseRetryAfter interprets a Retry-After header value, either delay
// seconds or an HTTP-date. Missing, malformed, non-finite and past values
// yield zero, meaning retry immediately. Longer delays are capped at
// maxRetryAfter.
func parseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}

	if seconds, err := strconv.ParseFloat(header, 64); err == nil {
		if math.IsNaN(seconds) || seconds <= 0 {
			return 0
		}
		if seconds >= maxRetryAfter.Seconds() {
			return maxRetryAfter
		}
		return time.Duration(seconds * float64(time.Second))
	}

	if at, err := http.ParseTime(header); err == nil {
		if d := time.Until(at); d > 0 {
			return min(d, maxRetryAfter)
		}
	}

	return 0
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
