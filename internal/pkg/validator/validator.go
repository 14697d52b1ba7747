package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate struct fields. Returns nil when v is valid, otherwise a
// field -> failed tag map suitable for an error response.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, e := range verrs {
		errs[e.Namespace()] = e.Tag()
	}
	return errs
}

// Error is a validation failure that handlers turn into a 400.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// Check is Validate returning an *Error instead of a map.
func Check(v interface{}) error {
	if fields := Validate(v); fields != nil {
		return &Error{Fields: fields}
	}
	return nil
}

// Field builds an *Error for a single field.
func Field(name, tag string) error {
	return &Error{Fields: map[string]string{name: tag}}
}
