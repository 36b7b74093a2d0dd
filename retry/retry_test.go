package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Orange-County-AI/clem/logging"
)

func testPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
		logger:      logging.NewLogger(logging.LogLevelError, nil),
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		attempts++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoExhaustsBudget(t *testing.T) {
	attempts := 0
	err := testPolicy().Do(context.Background(), "test", func(ctx context.Context) error {
		attempts++
		return errors.New("still broken")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoValue(t *testing.T) {
	attempts := 0
	out, err := DoValue(context.Background(), testPolicy(), "test", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("transient")
		}
		return "done", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "done", out)
	assert.Equal(t, 2, attempts)
}
