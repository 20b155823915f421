package contract

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// ContactInput is the request body of SubmitContact.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace so blank values fail the required rule.
func (in *ContactInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
}

// FieldError describes the first rule a ContactInput violates.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Response converts the error into the 400 body.
func (e *FieldError) Response() ValidationErrorResponse {
	return ValidationErrorResponse{Message: e.Message, Field: e.Field}
}

// DecodeContactInput reads a JSON ContactInput from r. Unknown fields are
// ignored. Any failure is reported as a FieldError, attributed to a field when
// the JSON value had the wrong type.
func DecodeContactInput(r io.Reader) (ContactInput, *FieldError) {
	var in ContactInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		var typeErr *json.UnmarshalTypeError
		var sizeErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return in, &FieldError{
				Field:   typeErr.Field,
				Message: label(typeErr.Field) + " must be a string",
			}
		case errors.As(err, &sizeErr):
			return in, &FieldError{Message: "Request body too large"}
		default:
			return in, &FieldError{Message: "Invalid request body"}
		}
	}
	return in, nil
}

// ParseContactInput decodes, normalizes and validates a request body.
func ParseContactInput(r io.Reader) (ContactInput, *FieldError) {
	in, ferr := DecodeContactInput(r)
	if ferr != nil {
		return in, ferr
	}
	in.Normalize()
	if ferr := Validate(in); ferr != nil {
		return in, ferr
	}
	return in, nil
}
