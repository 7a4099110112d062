// Package keyset holds helpers for the key sets of field mappings.
package keyset

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// separator terminates every key in the digest input.
const separator = "\x00"

// Sorted returns the keys of m in lexicographic order.
func Sorted[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Fingerprint hashes an already sorted key list.
// Equal key sets always produce equal fingerprints.
func Fingerprint(sorted []string) uint64 {
	d := xxhash.New()
	for _, k := range sorted {
		_, _ = d.WriteString(k)
		_, _ = d.WriteString(separator)
	}
	return d.Sum64()
}

// Of returns the sorted keys of m together with their fingerprint.
func Of[V any](m map[string]V) ([]string, uint64) {
	keys := Sorted(m)
	return keys, Fingerprint(keys)
}
