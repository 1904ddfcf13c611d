package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
)

// RetryConfig bounds the throttling retry loop. MaxAttempts counts the
// first try; InitialDelay doubles on each subsequent wait.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	}
}

// Retry runs op until it succeeds, fails with a non-throttling error, or
// the attempt budget is spent. Only rate-limit errors are retried; the
// backoff is deterministic with no jitter.
func Retry[T any](ctx context.Context, cfg RetryConfig, op func(context.Context) (T, error)) (T, error) {
	var result T
	var err error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err = op(ctx)
		if err == nil {
			return result, nil
		}
		if !IsThrottled(err) {
			return result, err
		}
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.InitialDelay << attempt
			slog.Warn("Request throttled, retrying with backoff",
				"attempt", attempt+1,
				"maxAttempts", cfg.MaxAttempts,
				"backoffDelay", delay,
				"error", err.Error())
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
	}
	return result, err
}

// HTTPError is a non-2xx response from a raw Graph REST call.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graph request %s failed: %s", e.URL, e.Status)
}

// IsThrottled reports whether err is a Graph rate-limit signal: an HTTP
// 429 in any of the error shapes the clients produce, or a rate-limit
// indicator in the message.
func IsThrottled(err error) bool {
	if err == nil {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) && respErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	var odataErr *odataerrors.ODataError
	if errors.As(err, &odataErr) && odataErr.ResponseStatusCode == http.StatusTooManyRequests {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "toomanyrequests")
}
