// Package notifier is the process-wide channel for ephemeral
// success/error feedback. One instance is created at startup and
// shared by all handlers.
package notifier

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// DefaultDuration is applied when a notification is pushed without
// an explicit duration.
const DefaultDuration = 4000 * time.Millisecond

const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

type Notification struct {
	ID       string        `json:"id"`
	Kind     string        `json:"kind"`
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Duration time.Duration `json:"-"`
	PushedAt time.Time     `json:"pushed_at"`
}

type Center struct {
	mu sync.Mutex
	// Arrival order. Repeated pushes are not deduplicated, they stack.
	active []Notification
	timers map[string]*time.Timer
}

func NewCenter() *Center {
	return &Center{
		active: make([]Notification, 0),
		timers: make(map[string]*time.Timer),
	}
}

// Push queues a notification and schedules its expiry. Returns the
// assigned id.
func (nc *Center) Push(n Notification) string {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	n.ID = xid.New().String()
	n.PushedAt = time.Now().UTC()
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}

	nc.active = append(nc.active, n)
	nc.timers[n.ID] = time.AfterFunc(n.Duration, func() {
		nc.Dismiss(n.ID)
	})

	return n.ID
}

// Dismiss removes a notification before its expiry. Dismissing an
// unknown or already expired id is a no-op.
func (nc *Center) Dismiss(id string) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	if timer, exists := nc.timers[id]; exists {
		timer.Stop()
		delete(nc.timers, id)
	}

	for i := range nc.active {
		if nc.active[i].ID == id {
			nc.active = append(nc.active[:i], nc.active[i+1:]...)
			return
		}
	}
}

// Active returns the live notifications in arrival order.
func (nc *Center) Active() []Notification {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	out := make([]Notification, len(nc.active))
	copy(out, nc.active)
	return out
}
