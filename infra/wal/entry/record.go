package entry

import "time"

type RecordType uint8

const (
	RecordProductCreate RecordType = iota + 1
	RecordOrderCreate
	RecordOrderUpdate
	RecordOrderDelete
)

func (t RecordType) String() string {
	switch t {
	case RecordProductCreate:
		return "product.create"
	case RecordOrderCreate:
		return "order.create"
	case RecordOrderUpdate:
		return "order.update"
	case RecordOrderDelete:
		return "order.delete"
	default:
		return "unknown"
	}
}

const headerSize = 1 + 8 + 8 + 4

type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}

func NewRecord(t RecordType, seq uint64, data []byte) *Record {
	return &Record{
		Type: t,
		Seq:  seq,
		Time: time.Now().UnixNano(),
		Data: data,
	}
}

func (r *Record) Timestamp() time.Time {
	return time.Unix(0, r.Time)
}
