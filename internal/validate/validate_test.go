package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/validate"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestValidator_Struct(t *testing.T) {
	v := validate.New()

	err := v.Struct(loginRequest{Email: "demo@finchbooks.com", Password: "Password123!"})
	assert.NoError(t, err)
}

func TestValidator_Struct_ReportsWireFieldName(t *testing.T) {
	v := validate.New()

	err := v.Struct(loginRequest{Email: "demo@finchbooks.com"})

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
	assert.Equal(t, "required", verr.Msg)
}

func TestValidator_Struct_EmailFormat(t *testing.T) {
	v := validate.New()

	err := v.Struct(loginRequest{Email: "not-an-address", Password: "pw"})

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, "must be a valid email address", verr.Msg)
}

func TestValidator_Struct_OneOf(t *testing.T) {
	type req struct {
		SortOrder string `json:"sort_order" validate:"oneof=asc desc"`
	}

	v := validate.New()

	err := v.Struct(req{SortOrder: "sideways"})

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sort_order", verr.Field)
	assert.Equal(t, "must be one of: asc, desc", verr.Msg)
}
