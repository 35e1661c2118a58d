package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine readable codes as exposed in the error envelope
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeInvalidItems    = "INVALID_ITEMS"
	CodeNotFound        = "NOT_FOUND"
	CodeCheckoutClosed  = "CHECKOUT_CLOSED"
	CodeCartClosed      = "CART_CLOSED"
	CodeCheckoutExpired = "CHECKOUT_EXPIRED"
	CodeCartExpired     = "CART_EXPIRED"
	CodeInvalidState    = "INVALID_STATE"
	CodeInvalidPayment  = "INVALID_PAYMENT"
	CodeAuthentication  = "AUTHENTICATION_ERROR"
	CodeUnsupportedType = "UNSUPPORTED_MEDIA_TYPE"
	CodeInternal        = "INTERNAL_ERROR"
	CodeNotImplemented  = "NOT_IMPLEMENTED"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
)

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type httpError struct {
	httpCode int
	code     string
	err      error
	details  []FieldError
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) Unwrap() error {
	return e.err
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func newError(httpCode int, code string, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		code:     code,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusBadRequest, CodeValidation, err)
}

func NewInvalidInputErrorf(format string, args ...interface{}) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewValidationError(err error, details []FieldError) *httpError {
	e := newError(http.StatusBadRequest, CodeValidation, err)
	e.details = details
	return e
}

func NewInvalidItemsError(err error) *httpError {
	return newError(http.StatusBadRequest, CodeInvalidItems, err)
}

func NewInvalidPaymentError(err error) *httpError {
	return newError(http.StatusBadRequest, CodeInvalidPayment, err)
}

func NewUnsupportedMediaTypeError(err error) *httpError {
	return newError(http.StatusUnsupportedMediaType, CodeUnsupportedType, err)
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, CodeNotFound, err)
}

func NewAuthenticationError(err error) *httpError {
	return newError(http.StatusUnauthorized, CodeAuthentication, err)
}

// NewConflictError is used for state conflicts that carry their own protocol specific code
func NewConflictError(code string, err error) *httpError {
	return newError(http.StatusConflict, code, err)
}

func NewInvalidStateError(err error) *httpError {
	return newError(http.StatusConflict, CodeInvalidState, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, CodeInternal, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, CodeNotImplemented, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, CodeUnavailable, err)
}

func GetHTTPStatus(err error) int {
	var myError *httpError
	if errors.As(err, &myError) {
		return myError.httpCode
	}
	return http.StatusInternalServerError
}

func GetCode(err error) string {
	var myError *httpError
	if errors.As(err, &myError) {
		return myError.code
	}
	return CodeInternal
}

// GetMessage returns the message meant for the caller: the cause for classified errors,
// a generic text for anything unclassified so internals do not leak.
func GetMessage(err error) string {
	var myError *httpError
	if errors.As(err, &myError) {
		return myError.err.Error()
	}
	return "Internal server error"
}

func GetDetails(err error) []FieldError {
	var myError *httpError
	if errors.As(err, &myError) {
		return myError.details
	}
	return nil
}
