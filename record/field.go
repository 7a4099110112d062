package record

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchField = errors.New("no such field")
	ErrFieldType   = errors.New("unexpected field type")
)

// Field returns the value of key asserted to T.
// A field holding nil yields the zero T.
func Field[T any](r *Record, key string) (T, error) {
	var zero T

	raw, ok := r.Get(key)
	if !ok {
		return zero, fmt.Errorf("%w: %s on %s", ErrNoSuchField, key, r.factory.schema.Name())
	}
	if raw == nil {
		return zero, nil
	}
	val, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrFieldType, key, raw)
	}
	return val, nil
}

// MustField is the panic-on-failure variant of Field.
// Use when the field is guaranteed by the schema.
func MustField[T any](r *Record, key string) T {
	val, err := Field[T](r, key)
	if err != nil {
		panic(err)
	}
	return val
}

// FieldOr returns the value of key asserted to T, or fallback when the field
// is missing or holds another type.
func FieldOr[T any](r *Record, key string, fallback T) T {
	if val, err := Field[T](r, key); err == nil {
		return val
	}
	return fallback
}
