package errors

import "sync"

// Collector accumulates errors from concurrent pipeline stages into an
// ordered list. It is safe for use from multiple goroutines; the dedicated
// collector goroutine of each pipeline phase drains an error channel into it.
type Collector struct {
	mu     sync.RWMutex
	errors []error
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{errors: make([]error, 0)}
}

// Append records a single error. Nil errors are ignored.
func (c *Collector) Append(err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, err)
}

// Drain consumes errors from ch until it is closed. It is intended to run in
// its own goroutine per pipeline phase.
func (c *Collector) Drain(ch <-chan error) {
	for err := range ch {
		c.Append(err)
	}
}

// Errors returns a copy of all collected errors in arrival order.
func (c *Collector) Errors() []error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]error, len(c.errors))
	copy(result, c.errors)
	return result
}

// HasErrors reports whether any error was collected.
func (c *Collector) HasErrors() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collector) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.errors)
}
