// Package equality defines the comparison strategy used by record factories.
//
// A strategy is a plain binary predicate. Every comparison a factory makes
// (no-op detection, memo hits, construction dedup) goes through the same
// Func, so two records derived from one another always agree on what
// "the same value" means.
package equality

import (
	"reflect"
	"unsafe"
)

// Func reports whether x and y should be treated as the same value.
type Func func(x, y any) bool

var _ Func = Identity

// Identity is the default strategy: strict identity without coercion.
//
//   - values of different dynamic types are never equal (int(1) != int64(1)),
//   - comparable values use ==, so pointers compare by address,
//   - maps compare by map header, slices by backing array, length and capacity,
//   - funcs and other non-comparable values (structs or arrays holding slices,
//     maps or funcs) are equal when both interfaces hold the same boxed
//     instance, or when both are the zero value.
//
// Identity never panics, even for interfaces holding non-comparable values.
func Identity(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	if vx.Type() != vy.Type() {
		return false
	}
	if vx.Comparable() && vy.Comparable() {
		return x == y
	}
	switch vx.Kind() {
	case reflect.Map:
		return vx.UnsafePointer() == vy.UnsafePointer()
	case reflect.Slice:
		return vx.UnsafePointer() == vy.UnsafePointer() &&
			vx.Len() == vy.Len() &&
			vx.Cap() == vy.Cap()
	default:
		return dataWord(&x) == dataWord(&y) || (vx.IsZero() && vy.IsZero())
	}
}

// eface mirrors the runtime layout of an empty interface.
type eface struct {
	typ, data unsafe.Pointer
}

// dataWord returns the data word of *v: the func value itself for funcs, the
// boxed copy for everything else that is not pointer-shaped. Reading a value
// back out of a map and storing it again keeps the same word.
func dataWord(v *any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(v)).data
}

// Or returns f, or Identity when f is nil.
func Or(f Func) Func {
	if f == nil {
		return Identity
	}
	return f
}

// ValueSets compares two field mappings without regard to order: both must
// hold the same number of keys, and every key of a must be present in b with
// an eq-equal value.
func ValueSets(eq Func, a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}
