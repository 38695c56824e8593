package entry

import (
	"encoding/binary"
	"os"
	"sync"

	"storefront/infra/memory"
	"storefront/infra/sequence"
)

const DefaultSegmentSize = 4 << 20

type Config struct {
	Dir         string
	SegmentSize int64
	// SyncEachWrite fsyncs after every append.
	SyncEachWrite bool
}

// WAL is safe for concurrent Append.
type WAL struct {
	mu sync.Mutex

	dir      string
	segSize  int64
	syncEach bool
	current  *segment
	segIndex int
	seq      *sequence.Sequencer
}

// Open resumes the newest segment in cfg.Dir and continues sequencing
// after the highest record already on disk.
func Open(cfg Config) (*WAL, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = DefaultSegmentSize
	}

	files, err := listSegments(cfg.Dir)
	if err != nil {
		return nil, err
	}

	var (
		index   int
		lastSeq uint64
	)
	for _, path := range files {
		idx, err := segmentIndex(path)
		if err != nil {
			continue
		}
		if idx > index {
			index = idx
		}
		max, err := maxSeqInSegment(path)
		if err != nil {
			return nil, err
		}
		if max > lastSeq {
			lastSeq = max
		}
	}

	seg, err := openSegment(cfg.Dir, index)
	if err != nil {
		return nil, err
	}

	return &WAL{
		dir:      cfg.Dir,
		segSize:  cfg.SegmentSize,
		syncEach: cfg.SyncEachWrite,
		current:  seg,
		segIndex: index,
		seq:      sequence.New(lastSeq),
	}, nil
}

// Append frames data under the next sequence number and returns it.
func (w *WAL) Append(t RecordType, data []byte) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec := NewRecord(t, w.seq.Current()+1, data)

	buf := memory.Buffers.Get()
	defer memory.ReleaseBuffer(buf)

	var header [headerSize]byte
	header[0] = byte(rec.Type)
	binary.BigEndian.PutUint64(header[1:9], rec.Seq)
	binary.BigEndian.PutUint64(header[9:17], uint64(rec.Time))
	binary.BigEndian.PutUint32(header[17:21], uint32(len(rec.Data)))
	buf.Write(header[:])
	buf.Write(rec.Data)

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], checksum(buf.Bytes()))
	buf.Write(crc[:])

	if err := w.current.append(buf.Bytes()); err != nil {
		return 0, err
	}
	if w.syncEach {
		if err := w.current.sync(); err != nil {
			return 0, err
		}
	}
	// only consume the sequence once the frame is on disk
	w.seq.Next()

	if w.current.offset >= w.segSize {
		if err := w.rotate(); err != nil {
			return rec.Seq, err
		}
	}
	return rec.Seq, nil
}

// LastSeq is the sequence of the newest appended record.
func (w *WAL) LastSeq() uint64 {
	return w.seq.Current()
}

func (w *WAL) Dir() string {
	return w.dir
}

func (w *WAL) rotate() error {
	_ = w.current.close()
	w.segIndex++

	seg, err := openSegment(w.dir, w.segIndex)
	if err != nil {
		return err
	}
	w.current = seg
	return nil
}

// TruncateBefore removes closed segments whose records are all <= seq.
// The newest closed segment is always kept so that Open can resume the
// sequence when the current segment is still empty.
func (w *WAL) TruncateBefore(seq uint64) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	files, err := listSegments(w.dir)
	if err != nil {
		return 0, err
	}

	current := segmentPath(w.dir, w.segIndex)
	closed := make([]string, 0, len(files))
	for _, path := range files {
		if path != current {
			closed = append(closed, path)
		}
	}
	if len(closed) < 2 {
		return 0, nil
	}

	removed := 0
	for _, path := range closed[:len(closed)-1] {
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			if err := os.Remove(path); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

func (w *WAL) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.sync()
}

func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.current.sync(); err != nil {
		_ = w.current.close()
		return err
	}
	return w.current.close()
}
