package otp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestVerifySuccess(t *testing.T) {
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/otp/verify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	if err := client.Verify(context.Background(), 42, "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != 42 || got.Code != "123456" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestVerifyRejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusUnprocessableEntity} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client, err := NewHTTPClient(server.URL, testLogger())
		if err != nil {
			t.Fatalf("create client: %v", err)
		}
		if err := client.Verify(context.Background(), 1, "000000"); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("expected verification failure for status %d, got %v", status, err)
		}
		server.Close()
	}
}

func TestVerifyRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	err = client.Verify(context.Background(), 1, "123456")
	var tooMany TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if tooMany.RetryAfter != 30*time.Second {
		t.Fatalf("expected retry after 30s, got %s", tooMany.RetryAfter)
	}
}

func TestVerifyRateLimitedDefaultRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	err = client.Verify(context.Background(), 1, "123456")
	var tooMany TooManyRequestsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if tooMany.RetryAfter != time.Second {
		t.Fatalf("expected default retry after 1s, got %s", tooMany.RetryAfter)
	}
}

func TestVerifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	err = client.Verify(context.Background(), 1, "123456")
	if err == nil || errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("expected generic service error, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := []struct {
		header string
		want   time.Duration
	}{
		{"", time.Second},
		{"5", 5 * time.Second},
		{"0", time.Second},
		{"garbage", time.Second},
	}
	for _, tc := range cases {
		if got := parseRetryAfter(tc.header); got != tc.want {
			t.Errorf("parseRetryAfter(%q) = %s, want %s", tc.header, got, tc.want)
		}
	}
}
