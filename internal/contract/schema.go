package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validate is the process-wide validator instance. Field domains (ranges,
// enums, required) are declared once as struct tags on the model types, so
// documentation and runtime validation can never diverge.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Schema is a structural validator for one wire shape. Decisions are
// deterministic: the same bytes always produce the same accept/reject.
type Schema interface {
	// NewValue returns a pointer to a fresh zero value of the shape,
	// suitable for binding query parameters or JSON into.
	NewValue() any
	// Validate checks an already-decoded value against the declared
	// field domains.
	Validate(v any) error
	// Decode strictly parses JSON (unknown fields rejected, which is
	// what blocks client-supplied identity fields on insert shapes)
	// and validates the result. Returns a pointer to the shape.
	Decode(data []byte) (any, error)
}

type structSchema[T any] struct{}

// Struct builds the Schema for shape T. T is a struct or a slice of
// structs carrying `json` and `validate` tags.
func Struct[T any]() Schema { return structSchema[T]{} }

func (structSchema[T]) NewValue() any {
	var v T
	return &v
}

func (s structSchema[T]) Decode(data []byte) (any, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (structSchema[T]) Validate(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("validate: nil value")
		}
		rv = rv.Elem()
	}
	return validateValue(rv)
}

func validateValue(rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		if err := validate.Struct(rv.Interface()); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Pointer && !elem.IsNil() {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			if err := validate.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("validate: element %d: %w", i, err)
			}
		}
	}
	return nil
}
