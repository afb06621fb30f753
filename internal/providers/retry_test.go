package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestStatusError_Error(t *testing.T) {
	if got := (&StatusError{StatusCode: 500}).Error(); got != "HTTP 500" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&StatusError{StatusCode: 429, Detail: "slow down"}).Error(); got != "HTTP 429: slow down" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsAuthError(t *testing.T) {
	if !IsAuthError(&StatusError{StatusCode: 401}) {
		t.Error("401 should be auth error")
	}
	if !IsAuthError(fmt.Errorf("wrapped: %w", &StatusError{StatusCode: 403})) {
		t.Error("wrapped 403 should be auth error")
	}
	if IsAuthError(&StatusError{StatusCode: 500}) {
		t.Error("500 should not be auth error")
	}
	if IsAuthError(errors.New("other")) {
		t.Error("plain error should not be auth error")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&StatusError{StatusCode: 429}, true},
		{&StatusError{StatusCode: 500}, true},
		{&StatusError{StatusCode: 503}, true},
		{&StatusError{StatusCode: 400}, false},
		{&StatusError{StatusCode: 401}, false},
		{errors.New("network"), false},
	}
	for _, tt := range tests {
		if got := isRetryable(tt.err); got != tt.want {
			t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retryWithBackoff(ctx, 3, time.Second, func() error {
		return &StatusError{StatusCode: 429}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRetryWithBackoff_NonRetryable(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("bad request")
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return &StatusError{StatusCode: 502}
	})
	if StatusCode(err) != 502 {
		t.Errorf("Expected last status error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}
