package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCache struct {
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]interface{})}
}

func (c *fakeCache) Set(key string, value interface{}, duration time.Duration) {
	c.entries[key] = value
}

func (c *fakeCache) Get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *fakeCache) Delete(key string) {
	delete(c.entries, key)
}

func (c *fakeCache) Flush() {
	c.entries = make(map[string]interface{})
}

func TestOverdueGate(t *testing.T) {
	bucket := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	nextBucket := bucket.Add(time.Hour)

	t.Run("allows first digest of a bucket", func(t *testing.T) {
		gate := NewOverdueGate(newFakeCache())
		assert.True(t, gate.Allowed(1, bucket))
	})

	t.Run("blocks a second digest in the same bucket", func(t *testing.T) {
		gate := NewOverdueGate(newFakeCache())
		gate.Record(1, bucket)
		assert.False(t, gate.Allowed(1, bucket))
	})

	t.Run("allows again in the next bucket", func(t *testing.T) {
		gate := NewOverdueGate(newFakeCache())
		gate.Record(1, bucket)
		assert.True(t, gate.Allowed(1, nextBucket))
	})

	t.Run("gates users independently", func(t *testing.T) {
		gate := NewOverdueGate(newFakeCache())
		gate.Record(1, bucket)
		assert.False(t, gate.Allowed(1, bucket))
		assert.True(t, gate.Allowed(2, bucket))
	})

	t.Run("unrecorded user is always allowed", func(t *testing.T) {
		gate := NewOverdueGate(newFakeCache())
		assert.True(t, gate.Allowed(42, bucket))
		assert.True(t, gate.Allowed(42, nextBucket))
	})
}
