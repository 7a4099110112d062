package record

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/on-the-ground/memcord/equality"
	"github.com/on-the-ground/memcord/internal/keyset"
	"github.com/on-the-ground/memcord/internal/logging"
	"github.com/on-the-ground/memcord/schema"
)

// ErrNoFactory is returned by Set and Merge on a record that no Factory
// produced, such as a nil *Record or a zero Record{}.
var ErrNoFactory = errors.New("record not produced by a factory")

// Record is an immutable field mapping produced by a Factory.
//
// Records expose no way to change their fields. Two records are the same
// only if they are the same pointer; equal values do not imply identity
// unless a memo produced them.
//
// Records are obtained from Factory.Construct, Create, Set, Merge and Fork.
// A zero Record{} reads as empty, but Set and Merge on it fail with
// ErrNoFactory.
type Record struct {
	seq     uint64
	factory *Factory
	values  map[string]any
	keys    []string // sorted, shared with successors that keep the key set
	fp      uint64   // keyset.Fingerprint of keys

	// memo holds, per field, the last value Set on this record and the
	// successor it produced. It is allocated on the first miss.
	memo map[string]memoEntry
}

type memoEntry struct {
	value     any
	successor *Record
}

// ID returns "<factory id>-<n>", where n counts the records built by the
// factory starting at 1. It is formatted on every call.
func (r *Record) ID() string {
	if r == nil || r.factory == nil {
		return ""
	}
	return r.factory.id + "-" + strconv.FormatUint(r.seq, 10)
}

func (r *Record) Factory() *Factory { return r.factory }
func (r *Record) Len() int          { return len(r.keys) }

// Has reports whether the record carries key, even with a nil value.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Get returns the value of key and whether the record carries it.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value of key, or nil when the record does not carry it.
func (r *Record) Value(key string) any {
	return r.values[key]
}

// Keys returns the field names in lexicographic order.
func (r *Record) Keys() []string {
	return slices.Clone(r.keys)
}

// Values returns a copy of the fields.
func (r *Record) Values() map[string]any {
	return maps.Clone(r.values)
}

// All iterates over the fields in key order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range r.keys {
			if !yield(k, r.values[k]) {
				return
			}
		}
	}
}

// SameValues reports whether other holds the same fields under r's equality
// strategy, regardless of identity.
func (r *Record) SameValues(other *Record) bool {
	if other == nil {
		return false
	}
	if r == other {
		return true
	}
	eq := equality.Identity
	if r.factory != nil {
		eq = r.factory.equals
	}
	return r.fp == other.fp && equality.ValueSets(eq, r.values, other.values)
}

// Set returns a record with key set to value.
//
// It returns r itself when value equals the current value (a missing field
// reads as nil), and the memoized successor when the last Set of key on r
// used an equal value. Otherwise it constructs a successor through the
// factory and remembers it.
func (r *Record) Set(key string, value any) (*Record, error) {
	if r == nil || r.factory == nil {
		return nil, ErrNoFactory
	}
	if err := r.factory.validateKey(key); err != nil {
		return nil, err
	}
	return r.set(key, value), nil
}

// MustSet is the panic-on-failure variant of Set.
func (r *Record) MustSet(key string, value any) *Record {
	next, err := r.Set(key, value)
	if err != nil {
		panic(err)
	}
	return next
}

func (r *Record) set(key string, value any) *Record {
	f := r.factory
	if f.equals(value, r.values[key]) {
		f.logger.Debug("set is a no-op",
			r.ref(),
			zap.String(logging.FieldKey, key),
		)
		return r
	}
	if m, ok := r.memo[key]; ok && f.equals(m.value, value) {
		f.logger.Debug("set memo hit",
			r.ref(),
			zap.String(logging.FieldKey, key),
		)
		return m.successor
	}
	next := r.with(key, value)
	if r.memo == nil {
		r.memo = make(map[string]memoEntry, 1)
	}
	r.memo[key] = memoEntry{value: value, successor: next}
	return next
}

// with builds r's values with key overwritten and passes them through the
// construction memo.
func (r *Record) with(key string, value any) *Record {
	values := maps.Clone(r.values)
	values[key] = value
	keys, fp := r.keys, r.fp
	if i, found := slices.BinarySearch(keys, key); !found {
		keys = slices.Insert(slices.Clone(keys), i, key)
		fp = keyset.Fingerprint(keys)
	}
	return r.factory.construct(values, keys, fp)
}

// Merge returns a record with every field of patch applied.
//
// All patch keys are validated first. Keys whose value already matches are
// ignored; when nothing differs r itself is returned. The changed keys are
// then applied with Set in lexicographic order, so repeating a Merge from the
// same record follows the same memoized chain and returns the same successor.
// Fields absent from patch are left untouched.
func (r *Record) Merge(patch map[string]any) (*Record, error) {
	if r == nil || r.factory == nil {
		return nil, ErrNoFactory
	}
	f := r.factory
	if err := f.validate(patch); err != nil {
		return nil, err
	}
	changed := make([]string, 0, len(patch))
	for k, v := range patch {
		if !f.equals(v, r.values[k]) {
			changed = append(changed, k)
		}
	}
	if len(changed) == 0 {
		f.logger.Debug("merge is a no-op", r.ref())
		return r, nil
	}
	slices.Sort(changed)
	next := r
	for _, k := range changed {
		next = next.set(k, patch[k])
	}
	return next, nil
}

// MustMerge is the panic-on-failure variant of Merge.
func (r *Record) MustMerge(patch map[string]any) *Record {
	next, err := r.Merge(patch)
	if err != nil {
		panic(err)
	}
	return next
}

// Fork returns a new record with r's fields and an empty memo. It bypasses
// the construction memo, so the result is always a fresh pointer.
// r must come from a Factory.
func (r *Record) Fork() *Record {
	return &Record{
		seq:     r.factory.next(),
		factory: r.factory,
		values:  r.values,
		keys:    r.keys,
		fp:      r.fp,
	}
}

// String renders the record as Name{k: v, ...} in key order.
func (r *Record) String() string {
	if r == nil {
		return "<nil>"
	}
	var b strings.Builder
	if r.factory != nil {
		b.WriteString(r.factory.schema.Name())
	} else {
		b.WriteString(schema.DefaultName)
	}
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, r.values[k])
	}
	b.WriteByte('}')
	return b.String()
}

// ref is the log field naming r. The ID is only formatted when an entry is
// written.
func (r *Record) ref() zap.Field {
	return zap.Stringer(logging.FieldRecord, recordID{r})
}

type recordID struct{ r *Record }

func (id recordID) String() string { return id.r.ID() }
