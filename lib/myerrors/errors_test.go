package myerrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	myErr := fmt.Errorf("my error")

	testCases := []struct {
		name       string
		in         error
		httpStatus int
		code       string
		errorText  string
	}{
		{
			name:       "No http error",
			in:         myErr,
			httpStatus: 500,
			code:       "INTERNAL_ERROR",
			errorText:  "my error",
		},
		{
			name:       "Invalid input error",
			in:         NewInvalidInputError(myErr),
			httpStatus: 400,
			code:       "VALIDATION_ERROR",
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid input errorf",
			in:         NewInvalidInputErrorf("%s: %d", myErr.Error(), 123),
			httpStatus: 400,
			code:       "VALIDATION_ERROR",
			errorText:  "status: 400, err: my error: 123",
		},
		{
			name:       "Invalid items error",
			in:         NewInvalidItemsError(myErr),
			httpStatus: 400,
			code:       "INVALID_ITEMS",
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Invalid payment error",
			in:         NewInvalidPaymentError(myErr),
			httpStatus: 400,
			code:       "INVALID_PAYMENT",
			errorText:  "status: 400, err: my error",
		},
		{
			name:       "Authentication error",
			in:         NewAuthenticationError(myErr),
			httpStatus: 401,
			code:       "AUTHENTICATION_ERROR",
			errorText:  "status: 401, err: my error",
		},
		{
			name:       "Not found error",
			in:         NewNotFoundError(myErr),
			httpStatus: 404,
			code:       "NOT_FOUND",
			errorText:  "status: 404, err: my error",
		},
		{
			name:       "Conflict error",
			in:         NewConflictError(CodeCartClosed, myErr),
			httpStatus: 409,
			code:       "CART_CLOSED",
			errorText:  "status: 409, err: my error",
		},
		{
			name:       "Invalid state error",
			in:         NewInvalidStateError(myErr),
			httpStatus: 409,
			code:       "INVALID_STATE",
			errorText:  "status: 409, err: my error",
		},
		{
			name:       "UnsupportedMedia error",
			in:         NewUnsupportedMediaTypeError(myErr),
			httpStatus: 415,
			code:       "UNSUPPORTED_MEDIA_TYPE",
			errorText:  "status: 415, err: my error",
		},
		{
			name:       "Internal error",
			in:         NewInternalError(myErr),
			httpStatus: 500,
			code:       "INTERNAL_ERROR",
			errorText:  "status: 500, err: my error",
		},
		{
			name:       "Not implemented error",
			in:         NewNotImplementedError(myErr),
			httpStatus: 501,
			code:       "NOT_IMPLEMENTED",
			errorText:  "status: 501, err: my error",
		},
		{
			name:       "Not available error",
			in:         NewUnavailableError(myErr),
			httpStatus: 503,
			code:       "SERVICE_UNAVAILABLE",
			errorText:  "status: 503, err: my error",
		},
		{
			name:       "Wrapped error",
			in:         fmt.Errorf("outer: %w", NewNotFoundError(myErr)),
			httpStatus: 404,
			code:       "NOT_FOUND",
			errorText:  "outer: status: 404, err: my error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.httpStatus, GetHTTPStatus(tc.in))
			assert.Equal(t, tc.code, GetCode(tc.in))
			assert.Equal(t, tc.errorText, tc.in.Error())
		})
	}
}

func TestMessageAndDetails(t *testing.T) {
	t.Run("Classified error exposes cause", func(t *testing.T) {
		err := NewValidationError(fmt.Errorf("invalid request"), []FieldError{{Path: "items", Message: "required"}})
		assert.Equal(t, "invalid request", GetMessage(err))
		assert.Equal(t, []FieldError{{Path: "items", Message: "required"}}, GetDetails(err))
	})

	t.Run("Unclassified error is hidden", func(t *testing.T) {
		err := fmt.Errorf("connection refused")
		assert.Equal(t, "Internal server error", GetMessage(err))
		assert.Nil(t, GetDetails(err))
	})
}
