package record_test

import (
	"testing"

	"github.com/on-the-ground/memcord/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField(t *testing.T) {
	r := record.New(record.WithKeys("Stop", "name", "seq", "note")).
		MustConstruct(map[string]any{"name": "Main St", "seq": 3, "note": nil})

	name, err := record.Field[string](r, "name")
	require.NoError(t, err)
	assert.Equal(t, "Main St", name)

	seq, err := record.Field[int](r, "seq")
	require.NoError(t, err)
	assert.Equal(t, 3, seq)

	note, err := record.Field[*string](r, "note")
	require.NoError(t, err)
	assert.Nil(t, note)

	_, err = record.Field[string](r, "seq")
	assert.ErrorIs(t, err, record.ErrFieldType)
	assert.Contains(t, err.Error(), "seq is int")

	_, err = record.Field[string](r, "missing")
	assert.ErrorIs(t, err, record.ErrNoSuchField)
	assert.Contains(t, err.Error(), "missing on Stop")
}

func TestMustField(t *testing.T) {
	r := record.New().MustConstruct(map[string]any{"n": 1})

	assert.Equal(t, 1, record.MustField[int](r, "n"))
	assert.Panics(t, func() {
		record.MustField[string](r, "n")
	})
	assert.Panics(t, func() {
		record.MustField[int](r, "missing")
	})
}

func TestFieldOr(t *testing.T) {
	r := record.New().MustConstruct(map[string]any{"n": 1})

	assert.Equal(t, 1, record.FieldOr(r, "n", 7))
	assert.Equal(t, 7, record.FieldOr(r, "missing", 7))
	assert.Equal(t, "x", record.FieldOr(r, "n", "x"))
}
