package apperror

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValidation(t *testing.T) {
	assert.Nil(t, FromValidation(nil))

	other := errors.New("plain")
	assert.Equal(t, other, FromValidation(other))

	err := FromValidation(validation.Errors{
		"mobile": errors.New("must be a valid 10-digit mobile number"),
		"email":  errors.New("cannot be blank"),
	})
	e := As(err)
	require.Equal(t, TypeValidation, e.Type)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "email", e.Fields[0].Field)
	assert.Equal(t, "mobile", e.Fields[1].Field)
}
