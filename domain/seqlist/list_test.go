package seqlist

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eq(x int) func(int) bool {
	return func(v int) bool { return v == x }
}

func fill(vals ...int) *List[int] {
	l := New[int]()
	for _, v := range vals {
		l.Append(v)
	}
	return l
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	l := fill(3, 1, 2)
	assert.Equal(t, []int{3, 1, 2}, l.Items())
	assert.Equal(t, 3, l.Len())
	assert.False(t, l.Empty())
}

func TestFind(t *testing.T) {
	l := fill(10, 20, 30, 20)

	v, ok := l.Find(func(v int) bool { return v > 15 })
	require.True(t, ok)
	assert.Equal(t, 20, v)

	_, ok = l.Find(eq(99))
	assert.False(t, ok)

	_, ok = New[int]().Find(eq(1))
	assert.False(t, ok)
}

func TestDeleteFirstHead(t *testing.T) {
	l := fill(1, 2, 3)

	v, ok := l.DeleteFirst(eq(1))
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{2, 3}, l.Items())
}

func TestDeleteFirstMiddleAndTail(t *testing.T) {
	l := fill(1, 2, 3, 4)

	_, ok := l.DeleteFirst(eq(3))
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 4}, l.Items())

	_, ok = l.DeleteFirst(eq(4))
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, l.Items())

	// append after removing the tail still lands at the end
	l.Append(5)
	assert.Equal(t, []int{1, 2, 5}, l.Items())
}

func TestDeleteFirstOnlyRemovesOne(t *testing.T) {
	l := fill(7, 7, 7)

	_, ok := l.DeleteFirst(eq(7))
	require.True(t, ok)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []int{7, 7}, l.Items())
}

func TestDeleteFirstNoMatchLeavesListUnchanged(t *testing.T) {
	empty := New[int]()
	_, ok := empty.DeleteFirst(eq(1))
	assert.False(t, ok)
	assert.Empty(t, empty.Items())

	l := fill(1, 2, 3)
	before := l.Items()
	_, ok = l.DeleteFirst(eq(9))
	assert.False(t, ok)
	assert.Equal(t, before, l.Items())
	assert.Equal(t, 3, l.Len())
}

func TestDeletePreservesRelativeOrder(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		n := 1 + r.Intn(40)
		vals := r.Perm(n)
		l := fill(vals...)

		target := vals[r.Intn(n)]
		v, ok := l.DeleteFirst(eq(target))
		require.True(t, ok)
		assert.Equal(t, target, v)

		want := make([]int, 0, n-1)
		for _, x := range vals {
			if x != target {
				want = append(want, x)
			}
		}
		assert.Equal(t, want, l.Items())
		assert.Equal(t, n-1, l.Len())
	}
}

func TestDeleteToEmpty(t *testing.T) {
	l := fill(1)
	_, ok := l.DeleteFirst(eq(1))
	require.True(t, ok)
	assert.True(t, l.Empty())
	assert.Empty(t, l.Items())

	l.Append(2)
	assert.Equal(t, []int{2}, l.Items())
}
