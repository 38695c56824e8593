package entry

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndReplay(t *testing.T) {
	dir := t.TempDir()

	// --- write phase ---
	w, err := Open(Config{Dir: dir})
	require.NoError(t, err)

	const n = 100
	for i := 0; i < n; i++ {
		seq, err := w.Append(RecordOrderCreate, []byte(fmt.Sprintf("order-%d", i)))
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), seq)
	}
	require.NoError(t, w.Close())

	// --- replay phase ---
	count := 0
	last, err := Replay(dir, func(rec *Record) error {
		assert.Equal(t, RecordOrderCreate, rec.Type)
		assert.Equal(t, fmt.Sprintf("order-%d", count), string(rec.Data))
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, n, count)
	assert.Equal(t, uint64(n), last)
}

func TestReopenResumesSequence(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(Config{Dir: dir})
	require.NoError(t, err)
	_, err = w.Append(RecordProductCreate, []byte("a"))
	require.NoError(t, err)
	_, err = w.Append(RecordProductCreate, []byte("b"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = Open(Config{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), w.LastSeq())

	seq, err := w.Append(RecordOrderDelete, []byte("c"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), seq)
	require.NoError(t, w.Close())

	last, err := Replay(dir, func(*Record) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, uint64(3), last)
}

func TestRotationAndTruncate(t *testing.T) {
	dir := t.TempDir()

	// every frame overflows a tiny segment, so each append rotates
	w, err := Open(Config{Dir: dir, SegmentSize: 8})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := w.Append(RecordOrderUpdate, []byte("x"))
		require.NoError(t, err)
	}

	files, err := listSegments(dir)
	require.NoError(t, err)
	assert.Len(t, files, 6) // five full segments plus the empty current one

	removed, err := w.TruncateBefore(3)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	files, err = listSegments(dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	var seqs []uint64
	_, err = Replay(dir, func(rec *Record) error {
		seqs = append(seqs, rec.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 5}, seqs)
	require.NoError(t, w.Close())

	// reopening continues in the newest segment
	w, err = Open(Config{Dir: dir, SegmentSize: 8})
	require.NoError(t, err)
	seq, err := w.Append(RecordOrderUpdate, []byte("y"))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), seq)
	require.NoError(t, w.Close())
}

func TestTruncateKeepsNewestClosedSegment(t *testing.T) {
	dir := t.TempDir()

	w, err := Open(Config{Dir: dir, SegmentSize: 8})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := w.Append(RecordProductCreate, []byte("x"))
		require.NoError(t, err)
	}

	// everything is covered, but seq 3 has to survive for the next Open
	removed, err := w.TruncateBefore(3)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	files, err := listSegments(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	require.NoError(t, w.Close())

	w, err = Open(Config{Dir: dir, SegmentSize: 8})
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, uint64(3), w.LastSeq())

	removed, err = w.TruncateBefore(3)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCRCIntegrity(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(Config{Dir: dir})
	require.NoError(t, err)
	_, err = w.Append(RecordProductCreate, []byte("valid-record"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f, err := os.OpenFile(segmentPath(dir, 0), os.O_RDWR, 0)
	require.NoError(t, err)
	// flip payload bytes
	_, err = f.WriteAt([]byte{0xFF, 0xFF, 0xFF, 0xFF}, headerSize)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Replay(dir, func(*Record) error {
		t.Fatal("corrupt record delivered")
		return nil
	})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestTornTailIsIgnored(t *testing.T) {
	dir := t.TempDir()
	w, err := Open(Config{Dir: dir})
	require.NoError(t, err)
	_, err = w.Append(RecordProductCreate, []byte("one"))
	require.NoError(t, err)
	_, err = w.Append(RecordProductCreate, []byte("two"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := segmentPath(dir, 0)
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, st.Size()-3))

	var got []string
	last, err := Replay(dir, func(rec *Record) error {
		got = append(got, string(rec.Data))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, got)
	assert.Equal(t, uint64(1), last)
}

func TestReplayEmptyDir(t *testing.T) {
	last, err := Replay(filepath.Join(t.TempDir(), "missing"), func(*Record) error { return nil })
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestPayloadCodec(t *testing.T) {
	data, err := EncodePayload(map[string]any{
		"id":       int64(3),
		"products": map[string]any{"1": int64(2)},
	})
	require.NoError(t, err)

	m, err := DecodePayload(data)
	require.NoError(t, err)
	assert.Equal(t, 3.0, m["id"])
	assert.Equal(t, map[string]any{"1": 2.0}, m["products"])

	assert.Equal(t, "order.delete", RecordOrderDelete.String())
}
