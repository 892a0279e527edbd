package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   time.Duration
	}{
		{"empty", "", 0},
		{"whitespace", "  ", 0},
		{"seconds", "3", 3 * time.Second},
		{"fractional seconds", "1.5", 1500 * time.Millisecond},
		{"zero", "0", 0},
		{"negative", "-4", 0},
		{"garbage", "soon", 0},
		{"past date", "Wed, 21 Oct 2015 07:28:00 GMT", 0},
		{"NaN", "NaN", 0},
		{"negative infinity", "-Inf", 0},
		{"infinity", "Inf", maxRetryAfter},
		{"overflowing seconds", "1e30", maxRetryAfter},
		{"just over the cap", "3601", maxRetryAfter},
		{"at the cap", "3600", maxRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.header); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestParseRetryAfter_FutureDate(t *testing.T) {
	header := time.Now().Add(10 * time.Second).UTC().Format(http.TimeFormat)
	got := parseRetryAfter(header)
	if got <= 0 || got > 10*time.Second {
		t.Errorf("parseRetryAfter(%q) = %v, want (0, 10s]", header, got)
	}
}

func TestParseRetryAfter_DistantDateCapped(t *testing.T) {
	header := time.Now().Add(48 * time.Hour).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(header); got != maxRetryAfter {
		t.Errorf("parseRetryAfter(%q) = %v, want %v", header, got, maxRetryAfter)
	}
}

func TestSleep_Elapses(t *testing.T) {
	start := time.Now()
	if err := sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("sleep() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("sleep returned after %v, want >= 20ms", elapsed)
	}
}

func TestSleep_ZeroReturnsImmediately(t *testing.T) {
	if err := sleep(context.Background(), 0); err != nil {
		t.Errorf("sleep(0) error = %v", err)
	}
}

func TestSleep_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep() error = %v, want context.Canceled", err)
	}
	if err := sleep(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("sleep(0) error = %v, want context.Canceled", err)
	}
}
