// ABOUTME: Tests for the response collector
// ABOUTME: Covers ordering, reset, and concurrent appends

package acp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector_Order(t *testing.T) {
	c := NewCollector()
	c.Add("Hello")
	c.Add(", ")
	c.Add("world")

	assert.Equal(t, "Hello, world", c.String())
	assert.Equal(t, 3, c.Len())
}

func TestCollector_Empty(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, "", c.String())
	assert.Equal(t, 0, c.Len())
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Add("stale")
	c.Reset()
	c.Add("fresh")

	assert.Equal(t, "fresh", c.String())
	assert.Equal(t, 1, c.Len())
}

func TestCollector_ConcurrentAdds(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add("x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, c.Len())
	assert.Len(t, c.String(), 100)
}
