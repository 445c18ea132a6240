package httputil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestRetry(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, true, 1, false},
		{"retry then success", 1, true, 2, false},
		{"exhausted", 5, true, 3, true},
		{"not retryable", 5, false, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return &RetryableError{Err: errTransient}
				}
				return errTransient
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errTransient) {
				t.Errorf("err = %v, should wrap errTransient", err)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errTransient}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFetch(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`[]`))
		case "/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	body, err := Fetch(ctx, srv.Client(), srv.URL+"/ok")
	if err != nil || string(body) != "[]" {
		t.Fatalf("Fetch ok = %q, %v", body, err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/busy")
	if !isRetryable(err) {
		t.Errorf("503 should be retryable, got %v", err)
	}
	var serr *StatusError
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("503 error = %v, want StatusError", err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/missing")
	if isRetryable(err) {
		t.Errorf("404 should not be retryable, got %v", err)
	}
	if !errors.As(err, &serr) || serr.StatusCode != http.StatusNotFound {
		t.Errorf("404 error = %v, want StatusError", err)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var body []byte
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		var err error
		body, err = Fetch(context.Background(), srv.Client(), srv.URL)
		return err
	})
	if err != nil || string(body) != "ok" {
		t.Fatalf("Retry(Fetch) = %q, %v", body, err)
	}
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", hits.Load())
	}
}

func TestPolicyMaxDelay(t *testing.T) {
	p := Policy{Attempts: 4, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	var stamps []time.Time
	err := p.Do(context.Background(), func() error {
		stamps = append(stamps, time.Now())
		return &RetryableError{Err: errTransient}
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("err = %v, want errTransient", err)
	}
	if len(stamps) != 4 {
		t.Fatalf("calls = %d, want 4", len(stamps))
	}
	if total := stamps[3].Sub(stamps[0]); total < 5*time.Millisecond {
		t.Errorf("waited %v, want at least 1+2+2ms", total)
	}
}

func TestPolicyZeroAttempts(t *testing.T) {
	calls := 0
	err := Policy{}.Do(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errTransient}
	})
	if err == nil || calls != 1 {
		t.Errorf("calls = %d, err = %v; want a single failed call", calls, err)
	}
}

func TestFetchBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := MaxBodySize
		if r.URL.Path == "/big" {
			n++
		}
		_, _ = w.Write(bytes.Repeat([]byte{' '}, n))
	}))
	defer srv.Close()
	ctx := context.Background()

	body, err := Fetch(ctx, srv.Client(), srv.URL+"/fits")
	if err != nil || len(body) != MaxBodySize {
		t.Fatalf("Fetch at the limit = %d bytes, %v", len(body), err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/big")
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if isRetryable(err) {
		t.Error("an oversized body should not be retried")
	}
}
