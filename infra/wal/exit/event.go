package exit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EventVersion is bumped when Event changes shape.
const EventVersion = 1

const (
	EventProductCreated = "product.created"
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderDeleted   = "order.deleted"
)

// Event is the payload carried by outbox records.
type Event struct {
	V    int    `json:"v"`
	Type string `json:"type"`
	ID   int64  `json:"id"`
	// Seq is the journal sequence of the mutation, 0 if journaling is off.
	Seq uint64 `json:"seq"`
}

func NewEvent(typ string, id int64, seq uint64) Event {
	return Event{V: EventVersion, Type: typ, ID: id, Seq: seq}
}

// Key groups events of one entity onto the same partition, e.g. "order/3".
func (e Event) Key() []byte {
	kind, _, _ := strings.Cut(e.Type, ".")
	return []byte(fmt.Sprintf("%s/%d", kind, e.ID))
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEvent(b []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(b, &e)
	return e, err
}
