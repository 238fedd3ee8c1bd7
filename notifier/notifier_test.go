package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPushAndExpiry(t *testing.T) {
	nc := NewCenter()

	id := nc.Push(Notification{Kind: KindSuccess, Title: "Lead created",
		Duration: 50 * time.Millisecond})
	assert.NotEmpty(t, id)

	// Present before the timeout.
	active := nc.Active()
	if assert.Len(t, active, 1) {
		assert.Equal(t, id, active[0].ID)
		assert.Equal(t, "Lead created", active[0].Title)
	}

	// Gone after it.
	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, nc.Active())
}

func TestPushAppliesDefaultDuration(t *testing.T) {
	nc := NewCenter()
	nc.Push(Notification{Kind: KindInfo, Title: "Heads up"})

	active := nc.Active()
	if assert.Len(t, active, 1) {
		assert.Equal(t, DefaultDuration, active[0].Duration)
	}
}

func TestDismiss(t *testing.T) {
	nc := NewCenter()
	id := nc.Push(Notification{Kind: KindError, Title: "Save failed",
		Duration: time.Minute})

	nc.Dismiss(id)
	assert.Empty(t, nc.Active())

	// Unknown and repeated ids are no-ops.
	nc.Dismiss(id)
	nc.Dismiss("nope")
	assert.Empty(t, nc.Active())
}

func TestIdenticalPushesStack(t *testing.T) {
	nc := NewCenter()

	// No dedup, same payload twice stays twice.
	first := nc.Push(Notification{Kind: KindSuccess, Title: "Saved", Duration: time.Minute})
	second := nc.Push(Notification{Kind: KindSuccess, Title: "Saved", Duration: time.Minute})
	assert.NotEqual(t, first, second)

	active := nc.Active()
	if assert.Len(t, active, 2) {
		// Arrival order.
		assert.Equal(t, first, active[0].ID)
		assert.Equal(t, second, active[1].ID)
	}
}

func TestActiveReturnsCopy(t *testing.T) {
	nc := NewCenter()
	nc.Push(Notification{Kind: KindInfo, Title: "One", Duration: time.Minute})

	active := nc.Active()
	active[0].Title = "Mutated"
	assert.Equal(t, "One", nc.Active()[0].Title)
}
