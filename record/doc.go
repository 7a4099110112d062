// Package record builds immutable, memoized records.
//
// A Factory produces *Record values. Updating a record never changes it:
// Set and Merge return a successor. What makes the package useful is that
// redundant updates return pointers that already exist:
//
//   - setting a field to its current value returns the record itself,
//   - repeating the last Set of a field on the same record returns the same
//     successor as before,
//   - repeating a Merge from the same record returns the same successor,
//   - constructing the same values twice in a row returns the same record.
//
// Consumers can therefore use pointer equality (a == b) as a cheap change
// signal.
//
// # Memos
//
// Each factory remembers only its most recent construction. Each record
// remembers, per field, the last value it was Set to and the successor that
// produced. Memos hang off the records themselves, so they become garbage
// together with their owner; nothing is ever evicted explicitly.
//
// Merge is a fold of Set over the changed keys in lexicographic order, so
// it reuses the per-field memos instead of keeping one of its own.
//
// # Equality
//
// Every comparison uses the factory's equality.Func (equality.Identity by
// default). Successors always share their ancestor's factory and therefore
// its strategy.
//
// # Validation
//
// A factory with a closed schema rejects unknown keys in Development mode
// with a *schema.ValidationError before touching any memo. Production mode
// skips the check entirely.
//
// # Concurrency
//
// Factories and records are intentionally NOT safe for concurrent use.
// Construct, Set and Merge read and then write memos without locking. If
// records are shared across goroutines, serialize access externally.
//
// Example:
//
//	bus := record.New(record.WithKeys("Bus", "route", "stop"))
//	r0, _ := bus.Construct(map[string]any{"route": "42", "stop": "A"})
//	r1, _ := r0.Set("stop", "B")
//	r2, _ := r0.Set("stop", "B") // r2 == r1
package record
