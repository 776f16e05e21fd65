package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryGenerate_SelectiveRetry(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCalls int
	}{
		{
			name:      "auth failure returns after one call",
			err:       fmt.Errorf("%w: invalid key", ErrAuth),
			wantCalls: 1,
		},
		{
			name:      "empty response returns after one call",
			err:       fmt.Errorf("%w: blank reply", ErrEmptyResponse),
			wantCalls: 1,
		},
		{
			name:      "rate limit retried up to the cap",
			err:       fmt.Errorf("%w: quota exceeded", ErrRateLimit),
			wantCalls: 3,
		},
		{
			name:      "network failure retried up to the cap",
			err:       fmt.Errorf("%w: connection reset", ErrNetwork),
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			_, err := retryGenerate(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
				calls++
				return "", tt.err
			})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryGenerate_RecoversAfterTransientFailure(t *testing.T) {
	calls := 0
	result, err := retryGenerate(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", fmt.Errorf("%w: timeout", ErrNetwork)
		}
		return "Match: 82%", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Match: 82%", result)
	assert.Equal(t, 2, calls)
}

func TestRetryGenerate_CancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := retryGenerate(ctx, 3, time.Hour, func(ctx context.Context) (string, error) {
		calls++
		return "", fmt.Errorf("%w: timeout", ErrNetwork)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 1, calls)
}

func TestRetryGenerate_MinimumOneAttempt(t *testing.T) {
	calls := 0
	result, err := retryGenerate(context.Background(), 0, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
}
