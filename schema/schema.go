// Package schema declares which fields a record factory accepts.
//
// A Schema is fixed at creation: its allowed keys and display name never
// change afterwards. A nil *Schema is open and accepts every key.
package schema

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/on-the-ground/memcord/internal/keyset"
)

// DefaultName is used when a schema is declared without a display name.
const DefaultName = "<unnamed record>"

var (
	// ErrNotPermitted is matched by every *ValidationError.
	ErrNotPermitted = errors.New("key not permitted")
	// ErrEmptyKey is returned when a schema declares an empty key.
	ErrEmptyKey = errors.New("empty key declared")
	// ErrDuplicateKey is returned when a schema declares a key twice.
	ErrDuplicateKey = errors.New("duplicate key declared")
)

// ValidationError reports a key that the schema does not allow.
type ValidationError struct {
	Key  string
	Name string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("key '%s' not permitted on '%s'", e.Key, e.Name)
}

func (e *ValidationError) Unwrap() error {
	return ErrNotPermitted
}

// Schema is the set of keys a record may carry, plus a display name used in
// error messages and String output.
type Schema struct {
	name    string
	keys    []string
	allowed map[string]struct{}
}

// New declares a schema. Every empty or repeated key is reported; the errors
// are combined into one.
func New(name string, keys ...string) (*Schema, error) {
	if name == "" {
		name = DefaultName
	}
	allowed := make(map[string]struct{}, len(keys))
	var err error
	for i, k := range keys {
		if k == "" {
			err = multierr.Append(err, fmt.Errorf("%w: %s at position %d", ErrEmptyKey, name, i))
			continue
		}
		if _, dup := allowed[k]; dup {
			err = multierr.Append(err, fmt.Errorf("%w: %s.%s", ErrDuplicateKey, name, k))
			continue
		}
		allowed[k] = struct{}{}
	}
	if err != nil {
		return nil, err
	}
	return &Schema{
		name:    name,
		keys:    keyset.Sorted(allowed),
		allowed: allowed,
	}, nil
}

// MustNew is the panic-on-failure variant of New, meant for package-level
// declarations.
func MustNew(name string, keys ...string) *Schema {
	s, err := New(name, keys...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the display name. An open schema is named DefaultName.
func (s *Schema) Name() string {
	if s == nil {
		return DefaultName
	}
	return s.name
}

// Open reports whether s accepts any key.
func (s *Schema) Open() bool {
	return s == nil
}

// Keys returns the allowed keys in lexicographic order, or nil for an open schema.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.keys)
}

func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// IsAllowed reports whether key may appear on a record of this schema.
func (s *Schema) IsAllowed(key string) bool {
	if s == nil {
		return true
	}
	_, ok := s.allowed[key]
	return ok
}

// ValidateKey fails with a *ValidationError when key is not allowed.
func (s *Schema) ValidateKey(key string) error {
	if s.IsAllowed(key) {
		return nil
	}
	return &ValidationError{Key: key, Name: s.name}
}

// Validate checks every key of values and reports the first offending key in
// lexicographic order.
func (s *Schema) Validate(values map[string]any) error {
	if s == nil {
		return nil
	}
	// Sort only on failure.
	bad := false
	for k := range values {
		if !s.IsAllowed(k) {
			bad = true
			break
		}
	}
	if !bad {
		return nil
	}
	for _, k := range keyset.Sorted(values) {
		if err := s.ValidateKey(k); err != nil {
			return err
		}
	}
	return nil
}
