// Package seqlist is a singly linked list that keeps entries in
// insertion order. It backs the order ledger.
package seqlist

type node[V any] struct {
	value V
	next  *node[V]
}

// List keeps no tail pointer; Append walks to the end.
// It is not safe for concurrent mutation.
type List[V any] struct {
	head *node[V]
	size int
}

func New[V any]() *List[V] {
	return &List[V]{}
}

func (l *List[V]) Append(v V) {
	n := &node[V]{value: v}
	l.size++

	if l.head == nil {
		l.head = n
		return
	}

	cur := l.head
	for cur.next != nil {
		cur = cur.next
	}
	cur.next = n
}

// Find returns the first value satisfying pred.
func (l *List[V]) Find(pred func(V) bool) (V, bool) {
	for n := l.head; n != nil; n = n.next {
		if pred(n.value) {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// DeleteFirst unlinks the first value satisfying pred and returns it.
// Remaining entries keep their relative order.
func (l *List[V]) DeleteFirst(pred func(V) bool) (V, bool) {
	var zero V
	if l.head == nil {
		return zero, false
	}

	if pred(l.head.value) {
		removed := l.head
		l.head = removed.next
		removed.next = nil
		l.size--
		return removed.value, true
	}

	prev := l.head
	for cur := prev.next; cur != nil; prev, cur = cur, cur.next {
		if pred(cur.value) {
			prev.next = cur.next
			cur.next = nil
			l.size--
			return cur.value, true
		}
	}
	return zero, false
}

// Items materializes the list head to tail.
func (l *List[V]) Items() []V {
	out := make([]V, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

func (l *List[V]) Len() int {
	return l.size
}

func (l *List[V]) Empty() bool {
	return l.head == nil
}
