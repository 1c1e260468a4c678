// Package fetch downloads source archives to the local cache.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"hemicycle/internal/config"
	"hemicycle/internal/logger"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher downloads archives with config-driven retry logic. Redirects
// are followed by the underlying client. The pipeline core never
// retries; all retry behavior lives here.
type Fetcher struct {
	client *http.Client
	retry  *config.RetryPolicy
	log    *logger.Logger
}

// NewFetcher creates a new fetcher with the given retry policy.
func NewFetcher(retry *config.RetryPolicy, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retry.GetTimeout(),
		},
		retry: retry,
		log:   log,
	}
}

// Download fetches url into dest unless dest already exists. The body
// is streamed to a temporary file and renamed into place on success, so
// a failed transfer never leaves a truncated archive behind.
func (f *Fetcher) Download(url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		f.log.Debug("cache hit, skipping download", "path", dest)

		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	var lastErr error

	for attempt := 1; attempt <= f.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := f.retry.GetRetryDelay(attempt)
			if delay > 0 {
				time.Sleep(delay)
			}

			f.log.Warn("retrying download", "url", url, "attempt", attempt)
		}

		err := f.downloadOnce(url, dest)
		if err == nil {
			return nil
		}

		lastErr = err

		if !isRetryable(err) {
			break
		}
	}

	return fmt.Errorf("download failed after %d attempts: %w", f.retry.MaxAttempts, lastErr)
}

func (f *Fetcher) downloadOnce(url, dest string) error {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "hemicycle/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return &transferError{fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			return &transferError{err}
		}

		return err
	}

	tmp := dest + ".tmp"

	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)

	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tmp)

		return &transferError{fmt.Errorf("failed to stream body: %w", err)}
	}

	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)

		return fmt.Errorf("failed to move archive into cache: %w", err)
	}

	f.log.Info("downloaded archive", "url", url, "path", dest, "bytes", written)

	return nil
}

// transferError marks failures worth another attempt.
type transferError struct {
	err error
}

func (e *transferError) Error() string { return e.err.Error() }

func (e *transferError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	var te *transferError

	return errors.As(err, &te)
}

// isRetryableStatus reports whether the status code indicates a
// transient condition.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
