package sequence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstIDIsOne(t *testing.T) {
	s := New(0)
	assert.Equal(t, uint64(0), s.Current())
	assert.Equal(t, uint64(1), s.Next())
	assert.Equal(t, uint64(2), s.Next())
	assert.Equal(t, uint64(2), s.Current())
}

func TestObserveOnlyRaises(t *testing.T) {
	s := New(0)
	s.Observe(5)
	s.Observe(3)
	assert.Equal(t, uint64(5), s.Current())
	assert.Equal(t, uint64(6), s.Next())
}

func TestConcurrentNextIsUnique(t *testing.T) {
	s := New(10)

	const workers, per = 8, 500
	seen := make(chan uint64, workers*per)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				seen <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(seen)

	uniq := map[uint64]bool{}
	for v := range seen {
		assert.False(t, uniq[v], "duplicate id %d", v)
		uniq[v] = true
	}
	assert.Len(t, uniq, workers*per)
	assert.Equal(t, uint64(10+workers*per), s.Current())
}
