package index

// ValueCompare orders two stored values. Negative means a < b.
type ValueCompare[V any] func(a, b V) int

// KeyCompare orders a lookup key against a stored value.
type KeyCompare[K, V any] func(key K, v V) int

type node[V any] struct {
	value V
	left  *node[V]
	right *node[V]
}

// Index is single-writer. Callers serialize mutation.
type Index[K, V any] struct {
	root *node[V]
	size int

	valueCmp ValueCompare[V]
	keyCmp   KeyCompare[K, V]
}

func New[K, V any](valueCmp ValueCompare[V], keyCmp KeyCompare[K, V]) *Index[K, V] {
	return &Index[K, V]{
		valueCmp: valueCmp,
		keyCmp:   keyCmp,
	}
}

// ---- public API ----

// Insert places v as a new leaf. Values comparing equal to an existing
// node go to its right subtree and are kept as distinct nodes.
func (t *Index[K, V]) Insert(v V) {
	n := &node[V]{value: v}
	t.size++

	if t.root == nil {
		t.root = n
		return
	}

	cur := t.root
	for {
		if t.valueCmp(v, cur.value) < 0 {
			if cur.left == nil {
				cur.left = n
				return
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				return
			}
			cur = cur.right
		}
	}
}

// Search returns the shallowest value on the descent path that compares
// equal to key.
func (t *Index[K, V]) Search(key K) (V, bool) {
	n := t.find(key)
	if n == nil {
		var zero V
		return zero, false
	}
	return n.value, true
}

// InOrder materializes every value in ascending value order.
func (t *Index[K, V]) InOrder() []V {
	out := make([]V, 0, t.size)
	t.Walk(func(v V) {
		out = append(out, v)
	})
	return out
}

func (t *Index[K, V]) Len() int {
	return t.size
}

// Depth is the number of nodes on the longest root-to-leaf path.
func (t *Index[K, V]) Depth() int {
	if t.root == nil {
		return 0
	}

	type frame struct {
		n     *node[V]
		depth int
	}

	max := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > max {
			max = f.depth
		}
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.depth + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.depth + 1})
		}
	}
	return max
}

// ---- walkers ----

// Walk visits values left subtree, node, right subtree. It uses an
// explicit stack so degenerate trees cannot exhaust the goroutine stack.
func (t *Index[K, V]) Walk(fn func(V)) {
	var stack []*node[V]
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(n.value)
		n = n.right
	}
}

// ---- internal helpers ----

func (t *Index[K, V]) find(key K) *node[V] {
	n := t.root
	for n != nil {
		c := t.keyCmp(key, n.value)
		switch {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}
