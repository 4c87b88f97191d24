package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPikarError_Error(t *testing.T) {
	err := NewError(STORE_QUERY_FAILED, "lookup failed")
	assert.Equal(t, "[STORE_QUERY_FAILED] lookup failed", err.Error())

	wrapped := WrapError(STORE_QUERY_FAILED, "lookup failed", fmt.Errorf("no such table"))
	assert.Equal(t, "[STORE_QUERY_FAILED] lookup failed: no such table", wrapped.Error())
}

func TestPikarError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := WrapError(STORE_OPEN_FAILED, "open failed", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.ErrorIs(t, err, cause)
}

func TestPikarError_Is_MatchesByCode(t *testing.T) {
	a := NewError(WORKFLOW_NOT_FOUND, "workflow missing")
	b := NewError(WORKFLOW_NOT_FOUND, "different message")
	c := NewError(WORKFLOW_INVALID, "bad workflow")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}
