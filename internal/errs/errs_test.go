package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation maps to 400",
			err:  Validation("email", "must not be empty"),
			want: http.StatusBadRequest,
		},
		{
			name: "line validation maps to 400",
			err:  LineValidation(2, "quantity", "must be positive"),
			want: http.StatusBadRequest,
		},
		{
			name: "not found maps to 404",
			err:  NotFound("customer", "abc"),
			want: http.StatusNotFound,
		},
		{
			name: "conflict maps to 409",
			err:  Conflict("transaction already posted"),
			want: http.StatusConflict,
		},
		{
			name: "overpayment maps to 409",
			err:  &OverpaymentError{TransactionID: "t1", BalanceDue: "270", Requested: "300"},
			want: http.StatusConflict,
		},
		{
			name: "forbidden maps to 403",
			err:  Forbidden("company access denied"),
			want: http.StatusForbidden,
		},
		{
			name: "unauthorized maps to 401",
			err:  Unauthorized("invalid credentials"),
			want: http.StatusUnauthorized,
		},
		{
			name: "rate limit maps to 429",
			err:  RateLimited("too many login attempts"),
			want: http.StatusTooManyRequests,
		},
		{
			name: "unknown maps to 500",
			err:  errors.New("connection reset"),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped taxonomy error keeps its status",
			err:  fmt.Errorf("applying payment: %w", Conflict("transaction is void")),
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field only",
			err:  Validation("currency", "unknown ISO 4217 code"),
			want: "currency: unknown ISO 4217 code",
		},
		{
			name: "line and field",
			err:  LineValidation(3, "unit_price", "must not be negative"),
			want: "line 3: unit_price: must not be negative",
		},
		{
			name: "bare message",
			err:  &ValidationError{Msg: "request body is empty"},
			want: "request body is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestExpected(t *testing.T) {
	assert.True(t, Expected(NotFound("vendor", "v1")))
	assert.False(t, Expected(errors.New("dial tcp: connection refused")))
}
