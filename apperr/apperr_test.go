package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessages(t *testing.T) {
	assert.EqualError(t, Validation("title"), "title is required")
	assert.EqualError(t, Validationf("dueDate", "invalid date %q", "tomorrow"), `dueDate: invalid date "tomorrow"`)
}

func TestValidationErrorCarriesField(t *testing.T) {
	var v *ValidationError
	assert.True(t, errors.As(Validation("startDate"), &v))
	assert.Equal(t, "startDate", v.Field)
}

func TestNotFoundErrorMessages(t *testing.T) {
	assert.EqualError(t, NotFound("task", 42), "task 42 not found")
	assert.EqualError(t, NotFound("user", 0), "user not found")
}

func TestIsForbiddenMatchesReason(t *testing.T) {
	err := Forbidden(ReasonNotAdmin)
	assert.True(t, IsForbidden(err, ReasonNotAdmin))
	assert.False(t, IsForbidden(err, ReasonNotOwner))
	assert.False(t, IsForbidden(errors.New("boom"), ReasonNotAdmin))
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)
	assert.EqualError(t, err, "internal error")
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, Internal(nil))
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	err := fmt.Errorf("create task: %w", Conflict("user %d is already assigned", 3))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}
