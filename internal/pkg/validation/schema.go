package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/studentreg/internal/pkg/apperrors"
)

// Messages maps a field path to the message reported when it fails. Keys are
// either "path.tag" for a single rule or "path" for every rule on the field,
// with the first form taking precedence.
type Messages map[string]string

// Schema validates documents of type T using the struct's validate tags and
// reports failures with the schema's own messages.
type Schema[T any] struct {
	name     string
	messages Messages
	defaults []func(*T)
}

// NewSchema builds a schema. defaults run before validation, in order, and
// may fill in values the caller left empty.
func NewSchema[T any](name string, messages Messages, defaults ...func(*T)) *Schema[T] {
	return &Schema[T]{name: name, messages: messages, defaults: defaults}
}

// Name returns the entity name used in error reports.
func (s *Schema[T]) Name() string {
	return s.name
}

// Parse applies defaults and validates the result. On success the returned
// value is the document to persist. On failure the error is an
// *apperrors.ValidationError with one entry per offending field.
func (s *Schema[T]) Parse(in T) (T, error) {
	out := in
	for _, apply := range s.defaults {
		apply(&out)
	}

	err := validate.Struct(out)
	if err == nil {
		return out, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out, fmt.Errorf("%w: %s: %v", apperrors.ErrValidationFailed, s.name, err)
	}
	return out, s.toValidationError(fieldErrs)
}

func (s *Schema[T]) toValidationError(fieldErrs validator.ValidationErrors) *apperrors.ValidationError {
	verr := &apperrors.ValidationError{Entity: s.name}
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		if seen[path] {
			continue
		}
		seen[path] = true
		verr.Fields = append(verr.Fields, apperrors.FieldError{
			Field:   path,
			Message: s.message(path, fe),
		})
	}
	return verr
}

func (s *Schema[T]) message(path string, fe validator.FieldError) string {
	if msg, ok := s.messages[path+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := s.messages[path]; ok {
		return msg
	}
	return fe.Translate(translator)
}

// fieldPath drops the root struct name from a validator namespace:
// "Student.address.zipCode" becomes "address.zipCode".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
