package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 400, StatusCode(InvalidInput("bad")))
	assert.Equal(t, 400, StatusCode(Conflict("dup")))
	assert.Equal(t, 401, StatusCode(Unauthenticated("no token")))
	assert.Equal(t, 403, StatusCode(Forbidden("no")))
	assert.Equal(t, 404, StatusCode(NotFound("gone")))
	assert.Equal(t, 500, StatusCode(Internal("boom", errors.New("cause"))))
	assert.Equal(t, 500, StatusCode(errors.New("plain error")))
}

func TestStatusCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("context: %w", NotFound("gone"))
	assert.Equal(t, 404, StatusCode(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindForbidden))
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Invalid credentials", PublicMessage(Unauthenticated("Invalid credentials")))

	// Internal causes must never leak to callers.
	internal := Internal("failed to fetch", errors.New("connection refused to 10.0.0.3"))
	assert.Equal(t, "Internal server error", PublicMessage(internal))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := Wrap(KindInternal, "wrapped", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "wrapped")
	assert.Contains(t, err.Error(), "cause")
}
