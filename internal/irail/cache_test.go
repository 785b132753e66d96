package irail

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	c := NewCache[string](1 * time.Minute)

	c.Set("key1", "value1")
	got, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", got)
}

func TestCache_Miss(t *testing.T) {
	c := NewCache[string](1 * time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := NewCache[string](50 * time.Millisecond)

	c.Set("key", "value")
	_, ok := c.Get("key")
	assert.True(t, ok, "key should be present immediately after Set")

	time.Sleep(60 * time.Millisecond)

	_, ok = c.Get("key")
	assert.False(t, ok, "key should be expired after TTL")
}

func TestCache_Overwrite(t *testing.T) {
	c := NewCache[string](1 * time.Minute)

	c.Set("key", "v1")
	c.Set("key", "v2")

	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "v2", got)
}

func TestCache_SetEvictsExpired(t *testing.T) {
	c := NewCache[int](50 * time.Millisecond)

	c.Set("a", 1)
	c.Set("b", 2)

	time.Sleep(60 * time.Millisecond)

	c.Set("c", 3)

	c.mu.RLock()
	defer c.mu.RUnlock()
	assert.NotContains(t, c.entries, "a")
	assert.NotContains(t, c.entries, "b")
	assert.Contains(t, c.entries, "c")
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache[int](1 * time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("key", n)
		}(i)
	}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get("key")
		}()
	}
	wg.Wait()

	_, ok := c.Get("key")
	assert.True(t, ok, "key should exist after concurrent writes")
}
