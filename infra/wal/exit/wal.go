package exit

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"storefront/infra/sequence"
)

// -------------------- State --------------------

type State uint8

const (
	StateNew State = iota
	StateSent
	StateAcked
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// -------------------- Record --------------------

type Record struct {
	Seq         uint64
	State       State
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

const recordHeader = 1 + 4 + 8

var ErrShortRecord = errors.New("outbox: record too short")

// [state:1][retries:4][lastAttempt:8][payload]
func encodeRecord(r Record) []byte {
	buf := make([]byte, recordHeader+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[recordHeader:], r.Payload)
	return buf
}

func decodeRecord(seq uint64, b []byte) (Record, error) {
	if len(b) < recordHeader {
		return Record{}, ErrShortRecord
	}
	return Record{
		Seq:         seq,
		State:       State(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     bytes.Clone(b[recordHeader:]),
	}, nil
}

// -------------------- Outbox --------------------

type Outbox struct {
	db  *pebble.DB
	seq *sequence.Sequencer
}

func Open(dir string) (*Outbox, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}

	last, err := lastSeq(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	o := &Outbox{db: db, seq: sequence.New(last)}
	if _, err := o.recoverSent(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return o, nil
}

// recoverSent turns records left SENT by an interrupted publish into
// FAILED ones, so the next flush retries them. Delivery is at least once.
func (o *Outbox) recoverSent() (int, error) {
	var stranded []Record
	err := o.ScanByState(StateSent, func(rec Record) error {
		stranded = append(stranded, rec)
		return nil
	})
	if err != nil || len(stranded) == 0 {
		return 0, err
	}

	b := o.db.NewBatch()
	defer b.Close()
	for _, rec := range stranded {
		rec.State = StateFailed
		rec.Retries++
		if err := b.Set(keyFor(rec.Seq), encodeRecord(rec), nil); err != nil {
			return 0, err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return 0, err
	}
	return len(stranded), nil
}

func (o *Outbox) Close() error {
	return o.db.Close()
}

// -------------------- API --------------------

// Enqueue stores payload as a NEW record and returns its sequence.
func (o *Outbox) Enqueue(payload []byte) (uint64, error) {
	seq := o.seq.Next()
	rec := Record{State: StateNew, Payload: payload}
	if err := o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync); err != nil {
		return 0, err
	}
	return seq, nil
}

func (o *Outbox) MarkSent(seq uint64) error {
	return o.transition(seq, StateSent, false)
}

func (o *Outbox) MarkAcked(seq uint64) error {
	return o.transition(seq, StateAcked, false)
}

// MarkFailed records a failed publish attempt and bumps the retry count.
func (o *Outbox) MarkFailed(seq uint64) error {
	return o.transition(seq, StateFailed, true)
}

func (o *Outbox) transition(seq uint64, state State, retry bool) error {
	rec, err := o.Get(seq)
	if err != nil {
		return err
	}
	rec.State = state
	rec.LastAttempt = time.Now().UnixNano()
	if retry {
		rec.Retries++
	}
	return o.db.Set(keyFor(seq), encodeRecord(rec), pebble.Sync)
}

// Get returns the record for seq, or pebble.ErrNotFound.
func (o *Outbox) Get(seq uint64) (Record, error) {
	val, closer, err := o.db.Get(keyFor(seq))
	if err != nil {
		return Record{}, err
	}
	defer closer.Close()

	return decodeRecord(seq, val)
}

// -------------------- Scan --------------------

// ScanByState visits records in the given state in sequence order.
func (o *Outbox) ScanByState(state State, fn func(Record) error) error {
	return o.scan(func(rec Record) error {
		if rec.State != state {
			return nil
		}
		return fn(rec)
	})
}

// ScanPending visits NEW and FAILED records in sequence order.
func (o *Outbox) ScanPending(fn func(Record) error) error {
	return o.scan(func(rec Record) error {
		if rec.State != StateNew && rec.State != StateFailed {
			return nil
		}
		return fn(rec)
	})
}

// TruncateAcked deletes every ACKED record and returns how many it removed.
func (o *Outbox) TruncateAcked() (int, error) {
	var acked [][]byte
	err := o.ScanByState(StateAcked, func(rec Record) error {
		acked = append(acked, keyFor(rec.Seq))
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(acked) == 0 {
		return 0, nil
	}

	b := o.db.NewBatch()
	defer b.Close()
	for _, k := range acked {
		if err := b.Delete(k, nil); err != nil {
			return 0, err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return 0, err
	}
	return len(acked), nil
}

func (o *Outbox) scan(fn func(Record) error) error {
	iter, err := o.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyUpper),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseKey(iter.Key())
		if err != nil {
			return err
		}
		rec, err := decodeRecord(seq, iter.Value())
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

// -------------------- Helpers --------------------

const (
	keyPrefix = "event/"
	keyUpper  = "event/~"
)

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, seq))
}

func parseKey(b []byte) (uint64, error) {
	var seq uint64
	_, err := fmt.Sscanf(string(bytes.TrimPrefix(b, []byte(keyPrefix))), "%d", &seq)
	return seq, err
}

func lastSeq(db *pebble.DB) (uint64, error) {
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyUpper),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return parseKey(iter.Key())
}
