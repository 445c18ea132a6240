package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidFormat, "unknown format %q", "gif"), `INVALID_FORMAT: unknown format "gif"`},
		{Wrap(ErrCodeNetwork, errors.New("connection refused"), "fetch %s", "/vlog.json"),
			"NETWORK_ERROR: fetch /vlog.json: connection refused"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapChain(t *testing.T) {
	cause := errors.New("eof")
	err := fmt.Errorf("load feed: %w", Wrap(ErrCodeNetwork, cause, "fetch"))

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false through fmt wrapping")
	}
	if !Is(err, ErrCodeNetwork) || Is(err, ErrCodeTimeout) {
		t.Errorf("Is() on %v matched the wrong code", err)
	}
	if GetCode(err) != ErrCodeNetwork {
		t.Errorf("GetCode() = %q, want %q", GetCode(err), ErrCodeNetwork)
	}
}

func TestCodeOfPlainErrors(t *testing.T) {
	for _, err := range []error{nil, errors.New("plain")} {
		if Is(err, ErrCodeInternal) {
			t.Errorf("Is(%v) = true, want false", err)
		}
		if code := GetCode(err); code != "" {
			t.Errorf("GetCode(%v) = %q, want empty", err, code)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeNotFound, "no view %q", "gallery"), `no view "gallery"`},
		{fmt.Errorf("serve: %w", New(ErrCodeInvalidConfig, "server.addr is empty")), "server.addr is empty"},
		{errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidFormat, "x"), 400},
		{New(ErrCodeInvalidSize, "x"), 400},
		{Wrap(ErrCodeNotFound, errors.New("inner"), "x"), 404},
		{New(ErrCodeNetwork, "x"), 502},
		{New(ErrCodeTimeout, "x"), 504},
		{New(ErrCodeUnsupported, "x"), 501},
		{errors.New("plain"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
