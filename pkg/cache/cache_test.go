package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())
}

func TestCacheExpiry(t *testing.T) {
	c := New[string, string](10 * time.Millisecond)

	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after its TTL")
	assert.Zero(t, c.Len())
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	c := New[string, string](0)

	c.Set("k", "v")
	time.Sleep(15 * time.Millisecond)

	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCacheDelete(t *testing.T) {
	c := New[int, string](time.Minute)

	c.Set(1, "one")
	c.Delete(1)

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestCacheOverwriteResetsValue(t *testing.T) {
	c := New[string, int](time.Minute)

	c.Set("k", 1)
	c.Set("k", 2)

	v, _ := c.Get("k")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())
}
