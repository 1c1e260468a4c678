package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"hemicycle/internal/config"
	"hemicycle/internal/logger"
)

func testFetcher(retry config.RetryPolicy) *Fetcher {
	return NewFetcher(&retry, logger.NewLogger("error"))
}

func quickRetry(attempts int) config.RetryPolicy {
	return config.RetryPolicy{
		MaxAttempts:       attempts,
		InitialDelayMs:    0,
		MaxDelayMs:        0,
		BackoffMultiplier: 1.0,
		TimeoutSec:        5,
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("archive-bytes"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "cache", "scrutins.zip")

	if err := testFetcher(quickRetry(1)).Download(server.URL, dest); err != nil {
		t.Fatalf("Download returned unexpected error: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}

	if string(data) != "archive-bytes" {
		t.Errorf("downloaded content = %q, want archive-bytes", data)
	}
}

func TestDownload_CacheHitSkipsNetwork(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		w.Write([]byte("fresh"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "scrutins.zip")
	if err := os.WriteFile(dest, []byte("cached"), 0o644); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	if err := testFetcher(quickRetry(1)).Download(server.URL, dest); err != nil {
		t.Fatalf("Download returned unexpected error: %v", err)
	}

	if requests != 0 {
		t.Errorf("server received %d requests, want 0 on cache hit", requests)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "cached" {
		t.Errorf("cache content = %q, want untouched cached bytes", data)
	}
}

func TestDownload_FollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("redirected"))
	}))
	defer target.Close()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "scrutins.zip")

	if err := testFetcher(quickRetry(1)).Download(server.URL, dest); err != nil {
		t.Fatalf("Download returned unexpected error: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "redirected" {
		t.Errorf("downloaded content = %q, want redirected", data)
	}
}

func TestDownload_RetriesOnServerError(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.Write([]byte("finally"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "scrutins.zip")

	if err := testFetcher(quickRetry(3)).Download(server.URL, dest); err != nil {
		t.Fatalf("Download returned unexpected error: %v", err)
	}

	if requests != 3 {
		t.Errorf("server received %d requests, want 3", requests)
	}
}

func TestDownload_DoesNotRetryClientErrors(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "scrutins.zip")

	if err := testFetcher(quickRetry(3)).Download(server.URL, dest); err == nil {
		t.Fatal("Download of missing resource did not return an error")
	}

	if requests != 1 {
		t.Errorf("server received %d requests, want 1 for a non-retryable status", requests)
	}

	if _, err := os.Stat(dest); err == nil {
		t.Error("failed download left a file behind")
	}
}

func TestDownload_FailureLeavesNoPartialFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "scrutins.zip")

	if err := testFetcher(quickRetry(2)).Download(server.URL, dest); err == nil {
		t.Fatal("Download did not return an error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list temp dir: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("download failure left %d files behind", len(entries))
	}
}
