package myhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"

	"github.com/MarcGrol/agentcommerce/lib/myerrors"
)

const maxBodySize = 1 << 20

var (
	validate    = newValidator()
	formDecoder = form.NewDecoder()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so details match what the caller sent
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// DecodeJSONBody parses and validates the request body into req.
func DecodeJSONBody(r *http.Request, req any) error {
	if r.Body == nil {
		return myerrors.NewInvalidInputErrorf("Missing request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	err := decoder.Decode(req)
	if err != nil {
		return myerrors.NewValidationError(fmt.Errorf("Invalid request body"), []myerrors.FieldError{
			{Path: "", Message: err.Error()},
		})
	}
	return Validate(req)
}

// DecodeQuery parses and validates the query string into req.
func DecodeQuery(r *http.Request, req any) error {
	err := formDecoder.Decode(req, r.URL.Query())
	if err != nil {
		return myerrors.NewValidationError(fmt.Errorf("Invalid query parameters"), []myerrors.FieldError{
			{Path: "", Message: err.Error()},
		})
	}
	return Validate(req)
}

func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return myerrors.NewInvalidInputError(err)
	}

	details := make([]myerrors.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, myerrors.FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return myerrors.NewValidationError(fmt.Errorf("Invalid request"), details)
}

// fieldPath turns "createCheckoutRequest.items[0].quantity" into "items.0.quantity"
func fieldPath(namespace string) string {
	parts := strings.SplitN(namespace, ".", 2)
	if len(parts) < 2 {
		return namespace
	}
	path := strings.NewReplacer("[", ".", "]", "").Replace(parts[1])
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "required_without":
		return fmt.Sprintf("Required when %s is absent", strings.ToLower(fe.Param()))
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must have length %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on %s", fe.Tag())
	}
}
