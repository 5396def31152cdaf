package carddav

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/emersion/go-webdav"
)

// do runs one DAV request with the per-call timeout and retries it once
// (MaxRetries times, strictly) when the failure looks transient. A
// non-transient error returns immediately; the caller decides whether
// it is fatal or a per-record failure.
func (c *Client) do(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !transient(err) {
			return err
		}
	}
	return lastErr
}

// transient reports whether an error is worth one more attempt:
// timeouts, dropped connections, and server-side 5xx/429 responses.
// Auth failures and 4xx responses are not; retrying won't change them.
func transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var httpErr *webdav.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code >= http.StatusInternalServerError ||
			httpErr.Code == http.StatusTooManyRequests
	}
	msg := err.Error()
	for _, fragment := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"EOF",
	} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}
