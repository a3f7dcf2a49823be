package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// newTestRetry records waits instead of sleeping.
func newTestRetry(p Provider, waits *[]time.Duration) *RetryProvider {
	return &RetryProvider{
		inner: p,
		config: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 100 * time.Millisecond,
			MaxWait:     150 * time.Millisecond,
			Multiplier:  2,
		},
		sleep: func(ctx context.Context, d time.Duration) error {
			*waits = append(*waits, d)
			return ctx.Err()
		},
	}
}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func ok() MockResponse {
	return MockResponse{Content: json.RawMessage(`{"ok":true}`)}
}

func TestRetry_FirstAttempt(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(ok())

	resp, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Errorf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
	if len(waits) != 0 {
		t.Errorf("unexpected waits %v", waits)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), ok())

	if _, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
	if len(waits) != 1 {
		t.Fatalf("expected 1 wait, got %v", waits)
	}
	if d := waits[0] - 100*time.Millisecond; d < -20*time.Millisecond || d > 20*time.Millisecond {
		t.Errorf("wait = %s, want about 100ms", waits[0])
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), down(), down(), ok())

	_, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 calls, got %d", mock.CallCount())
	}
	if len(waits) != 2 {
		t.Fatalf("expected 2 waits (none after the last attempt), got %v", waits)
	}
	if waits[1] > 180*time.Millisecond {
		t.Errorf("second wait %s exceeds MaxWait plus jitter", waits[1])
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}}, ok())

	_, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Errorf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	var waits []time.Duration
	bad := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}}
	mock := NewMockProvider(bad, bad, ok())

	if _, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{}); err == nil {
		t.Error("expected error")
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(down(), ok())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRetry(mock, &waits).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	var waits []time.Duration
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 42 * time.Millisecond}}, ok())

	if _, err := newTestRetry(mock, &waits).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(waits) != 1 || waits[0] != 42*time.Millisecond {
		t.Errorf("waits = %v, want [42ms]", waits)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{})
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}

	// Zero MaxAttempts still makes one call.
	mock := NewMockProvider(ok())
	if _, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
