package diag

import (
	"fmt"
	"sync"
)

// Notice is a non-fatal diagnostic. The only producer today is the
// unknown-opcode fallback, which keeps the parse going with a placeholder.
type Notice struct {
	Target  string
	BlockID string
	Opcode  string
	Message string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: block %s (%s): %s", n.Target, n.BlockID, n.Opcode, n.Message)
}

// Collector accumulates notices from concurrent workers.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// Add records notices.
func (c *Collector) Add(n ...Notice) {
	c.mu.Lock()
	c.notices = append(c.notices, n...)
	c.mu.Unlock()
}

// Notices returns a snapshot of every notice recorded so far.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Len returns the number of recorded notices.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notices)
}
