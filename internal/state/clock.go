package state

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Clock hands out layer numbers for the "Layer <n>" names of drawn shapes.
type Clock struct {
	counter int
	mu      sync.Mutex
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Update moves the clock forward to n if it is behind.
func (c *Clock) Update(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > c.counter {
		c.counter = n
	}
}

// Reset starts numbering from 1 again.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter = 0
}

// newID mints the layer id of a drawn shape.
func newID() string {
	return uuid.NewString()
}

func layerName(n int) string {
	return fmt.Sprintf("Layer %d", n)
}

// layerNumber parses the n out of a "Layer <n>" name.
func layerNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "Layer ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
