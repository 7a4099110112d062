package keyset_test

import (
	"testing"

	"github.com/on-the-ground/memcord/internal/keyset"
	"github.com/stretchr/testify/assert"
)

func TestSorted(t *testing.T) {
	keys := keyset.Sorted(map[string]int{"c": 3, "a": 1, "b": 2})
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	assert.Empty(t, keyset.Sorted[any](nil))
}

func TestFingerprint(t *testing.T) {
	_, fp1 := keyset.Of(map[string]any{"a": 1, "b": 2})
	_, fp2 := keyset.Of(map[string]any{"b": "x", "a": nil})
	assert.Equal(t, fp1, fp2, "fingerprint depends on keys only")

	assert.NotEqual(t,
		keyset.Fingerprint([]string{"ab"}),
		keyset.Fingerprint([]string{"a", "b"}),
	)
	assert.NotEqual(t,
		keyset.Fingerprint([]string{"a"}),
		keyset.Fingerprint([]string{"a", "b"}),
	)
}
