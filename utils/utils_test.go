package utils

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_Length(t *testing.T) {
	for _, n := range []int{4, 6, 8, 16} {
		code, err := GenerateCode(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
	}
}

func TestGenerateCode_Charset(t *testing.T) {
	code, err := GenerateCode(64)
	require.NoError(t, err)

	for _, r := range code {
		assert.True(t, strings.ContainsRune(codeCharset, r),
			"unexpected character %q in generated code", r)
	}
}

func TestGenerateCode_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(8)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCircuitBreaker_SuccessKeepsClosed(t *testing.T) {
	cb := NewCircuitBreaker("test")

	for i := 0; i < 20; i++ {
		result, err := cb.Execute(context.Background(), func() (any, error) {
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", result)
	}

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_TripsOnFailureRatio(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("provider down")

	// Enough consecutive failures to exceed maxRequests at a failing ratio.
	for i := 0; i < 15; i++ {
		_, err := cb.Execute(context.Background(), func() (any, error) {
			return nil, boom
		})
		if errors.Is(err, ErrCircuitOpen) {
			break
		}
	}

	assert.Equal(t, StateOpen, cb.State())

	// While open, calls are rejected without invoking the function.
	invoked := false
	_, err := cb.Execute(context.Background(), func() (any, error) {
		invoked = true
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, invoked)
}

func TestCircuitBreaker_StateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
}
