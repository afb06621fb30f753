package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type key struct {
	id   int
	kind string
}

func TestCache_PutGet(t *testing.T) {
	c := New[key, *string]()
	k := key{id: 1, kind: "sentiment"}

	// Miss before put
	_, ok := c.Get(k)
	assert.False(t, ok)

	v := "positive"
	stored := c.PutIfAbsent(k, &v)
	assert.Same(t, &v, stored)

	got, ok := c.Get(k)
	require.True(t, ok)
	assert.Same(t, &v, got)
}

func TestCache_KeysAreDistinctPerKind(t *testing.T) {
	c := New[key, string]()
	c.PutIfAbsent(key{1, "sentiment"}, "positive")
	c.PutIfAbsent(key{1, "nouns"}, "high")

	got, _ := c.Get(key{1, "sentiment"})
	assert.Equal(t, "positive", got)
	got, _ = c.Get(key{1, "nouns"})
	assert.Equal(t, "high", got)
	assert.Equal(t, 2, c.Len())
}

func TestCache_NeverOverwrites(t *testing.T) {
	c := New[key, string]()
	k := key{7, "sentiment"}

	first := c.PutIfAbsent(k, "negative")
	second := c.PutIfAbsent(k, "positive")

	assert.Equal(t, "negative", first)
	assert.Equal(t, "negative", second)
	got, _ := c.Get(k)
	assert.Equal(t, "negative", got)
}

func TestCache_Stats(t *testing.T) {
	c := New[key, int]()
	assert.Equal(t, Stats{}, c.Stats())

	c.Get(key{1, "sentiment"})
	c.PutIfAbsent(key{1, "sentiment"}, 1)
	c.Get(key{1, "sentiment"})
	c.Get(key{1, "sentiment"})
	c.Get(key{2, "sentiment"})

	s := c.Stats()
	assert.Equal(t, 1, s.Entries)
	assert.Equal(t, 2, s.Hits)
	assert.Equal(t, 2, s.Misses)
	assert.InDelta(t, 50.0, s.HitRate, 0.001)
}

func TestCache_ContainsDoesNotCount(t *testing.T) {
	c := New[key, int]()
	c.PutIfAbsent(key{1, "nouns"}, 3)

	assert.True(t, c.Contains(key{1, "nouns"}))
	assert.False(t, c.Contains(key{2, "nouns"}))
	assert.Equal(t, 0, c.Stats().Hits+c.Stats().Misses)
}

func TestCache_ConcurrentFill(t *testing.T) {
	c := New[key, int]()
	k := key{3, "sentiment"}

	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.PutIfAbsent(k, i)
		}(i)
	}
	wg.Wait()

	winner, ok := c.Get(k)
	require.True(t, ok)
	for _, r := range results {
		assert.Equal(t, winner, r)
	}
	assert.Equal(t, 1, c.Len())
}
