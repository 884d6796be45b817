package logger

import (
	"sync"
	"time"
)

// Entry is one collected log occurrence, deduplicated by level, message
// and caller.
type Entry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// Collector keeps the most recent warn/error entries in memory so they
// can be served to the dashboard. Oldest entries are evicted past
// capacity.
type Collector struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	entries  map[string]*Entry
}

// NewCollector creates a collector holding up to capacity unique entries.
func NewCollector(capacity int) *Collector {
	if capacity < 1 {
		capacity = 100
	}
	return &Collector{
		capacity: capacity,
		entries:  make(map[string]*Entry),
	}
}

// Add records one occurrence.
func (c *Collector) Add(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := level + "|" + message + "|" + caller

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.entries[key]; exists {
		entry.Count++
		entry.LastSeen = now
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, key)
	c.entries[key] = &Entry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Entries returns collected entries, oldest first.
func (c *Collector) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.entries[key])
	}
	return out
}
