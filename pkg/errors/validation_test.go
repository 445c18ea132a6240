package errors

import (
	"math"
	"testing"
	"time"
)

func TestValidateFormat(t *testing.T) {
	allowed := []string{"png", "svg", "json"}
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"", true},
		{"gif", true},
		{"PNG", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFormat) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidFormat)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"valid", 600, 100, false},
		{"max", MaxDimension, MaxDimension, false},
		{"zero width", 0, 100, true},
		{"negative height", 600, -1, true},
		{"too wide", MaxDimension + 1, 100, true},
		{"nan", math.NaN(), 100, true},
		{"inf", 600, math.Inf(1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSize(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePixels(t *testing.T) {
	tests := []struct {
		w, h, ratio float64
		wantErr     bool
	}{
		{600, 100, 2, false},
		{4096, 4096, 1, false},
		{4096, 4096, 0, false},
		{2048, 2048, 2, false},
		{4096, 4097, 1, true},
		{8192, 8192, 4, true},
	}
	for _, tt := range tests {
		err := ValidatePixels(tt.w, tt.h, tt.ratio)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePixels(%v, %v, %v) = %v, wantErr %v", tt.w, tt.h, tt.ratio, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidSize) {
			t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidSize)
		}
	}
}

func TestValidateTerminalRows(t *testing.T) {
	if err := ValidateTerminalRows(MaxTerminalRows); err != nil {
		t.Errorf("ValidateTerminalRows(max) = %v", err)
	}
	if err := ValidateTerminalRows(MaxTerminalRows + 1); !Is(err, ErrCodeInvalidSize) {
		t.Errorf("ValidateTerminalRows(max+1) = %v, want INVALID_SIZE", err)
	}
}

func TestValidatePixelRatio(t *testing.T) {
	for _, r := range []float64{0, 1, 2.5, MaxPixelRatio} {
		if err := ValidatePixelRatio(r); err != nil {
			t.Errorf("ValidatePixelRatio(%v) = %v", r, err)
		}
	}
	for _, r := range []float64{-1, MaxPixelRatio + 0.5, math.NaN()} {
		if err := ValidatePixelRatio(r); err == nil {
			t.Errorf("ValidatePixelRatio(%v) should fail", r)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"13:07:42", "13:07:42", false},
		{"130742", "13:07:42", false},
		{"00:00:00", "00:00:00", false},
		{"25:00:00", "", true},
		{"noon", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClockTime(tt.in, base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClockTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !Is(err, ErrCodeInvalidTime) {
					t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidTime)
				}
				return
			}
			if got.Format("15:04:05") != tt.want {
				t.Errorf("got %s, want %s", got.Format("15:04:05"), tt.want)
			}
			if y, m, d := got.Date(); y != 2026 || m != 3 || d != 1 {
				t.Errorf("date = %v, want base date", got)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/vlog.json", false},
		{"http://localhost:8080/feed", false},
		{"", true},
		{"ftp://example.com", true},
		{"file:///etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
