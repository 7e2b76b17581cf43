package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerFromClaims(t *testing.T) {
	c, err := CallerFromClaims(map[string]any{
		"type":        "access",
		"user_id":     "u-1",
		"employee_id": "e-1",
		"is_admin":    true,
	})
	require.NoError(t, err)
	assert.Equal(t, Caller{UserID: "u-1", EmployeeID: "e-1", IsAdmin: true}, c)

	_, err = CallerFromClaims(map[string]any{"type": "refresh", "user_id": "u-1", "employee_id": "e-1"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = CallerFromClaims(map[string]any{"type": "access", "user_id": "u-1"})
	assert.ErrorIs(t, err, ErrNoEmployeeProfile)
}

func TestCallerContext(t *testing.T) {
	_, ok := CallerFrom(context.Background())
	assert.False(t, ok)

	ctx := WithCaller(context.Background(), Caller{EmployeeID: "e-1"})
	c, ok := CallerFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "e-1", c.EmployeeID)
}
