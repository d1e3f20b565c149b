// ABOUTME: Thread-safe accumulator for streamed agent response text
// ABOUTME: Chunks arrive from the protocol read loop, results are read after drain

package acp

import (
	"strings"
	"sync"
)

// Collector accumulates text chunks streamed by an agent during a
// prompt turn. The protocol read loop appends from its own goroutine
// while the orchestrator waits; the final text is read once the turn
// has drained.
type Collector struct {
	mu     sync.Mutex
	chunks []string
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends one chunk.
func (c *Collector) Add(text string) {
	c.mu.Lock()
	c.chunks = append(c.chunks, text)
	c.mu.Unlock()
}

// String concatenates all chunks in arrival order.
func (c *Collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.chunks, "")
}

// Len returns the number of chunks received.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chunks)
}

// Reset discards accumulated chunks so the collector can serve
// another turn.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.chunks = nil
	c.mu.Unlock()
}
