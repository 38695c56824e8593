package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64  `json:"id"`
	Name string `json:"product_name"`
}

func TestMissingFileIsEmpty(t *testing.T) {
	items, err := Load[row](filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load[row](path)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestRoundTripKeepsOrder(t *testing.T) {
	f := NewFile[row](filepath.Join(t.TempDir(), "data", "products.json"))
	want := []row{{3, "c"}, {1, "Patatas"}, {2, "Pan"}}

	require.NoError(t, f.Write(want))
	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteOverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	f := NewFile[row](filepath.Join(dir, "orders.json"))

	require.NoError(t, f.Write([]row{{1, "a"}, {2, "b"}}))
	require.NoError(t, f.Write([]row{{2, "b"}}))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, []row{{2, "b"}}, got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteEmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, Write[row](path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
