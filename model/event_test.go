package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlapsHalfOpen(t *testing.T) {
	base := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	// Plain overlap.
	assert.True(t, Overlaps(at(0), at(2), at(1), at(3)))
	assert.True(t, Overlaps(at(1), at(3), at(0), at(2)))

	// Containment.
	assert.True(t, Overlaps(at(0), at(4), at(1), at(2)))

	// Identical slots.
	assert.True(t, Overlaps(at(0), at(2), at(0), at(2)))

	// Touching boundaries do not conflict, the interval is half-open.
	assert.False(t, Overlaps(at(0), at(2), at(2), at(4)))
	assert.False(t, Overlaps(at(2), at(4), at(0), at(2)))

	// Disjoint.
	assert.False(t, Overlaps(at(0), at(1), at(3), at(4)))
}

func TestRangeWindow(t *testing.T) {
	at := time.Date(2026, 8, 26, 14, 30, 0, 0, time.UTC) // A Wednesday.

	from, to, ok := RangeWindow("today", at)
	assert.True(t, ok)
	assert.Equal(t, 26, from.Day())
	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 26, to.Day())
	assert.Equal(t, 23, to.Hour())

	from, to, ok = RangeWindow("week", at)
	assert.True(t, ok)
	assert.True(t, from.Before(at))
	assert.True(t, to.After(at))
	assert.True(t, to.Sub(from) < 8*24*time.Hour)

	_, _, ok = RangeWindow("month", at)
	assert.False(t, ok)
}

func TestValidateEvent(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	valid, _ := ValidateEvent(&Event{Title: "Viewing", StartTime: start, EndTime: end})
	assert.True(t, valid)

	valid, msg := ValidateEvent(&Event{StartTime: start, EndTime: end})
	assert.False(t, valid)
	assert.NotEmpty(t, msg)

	valid, _ = ValidateEvent(&Event{Title: "Viewing"})
	assert.False(t, valid)

	// End before start.
	valid, _ = ValidateEvent(&Event{Title: "Viewing", StartTime: end, EndTime: start})
	assert.False(t, valid)

	// Zero-length slot is rejected too.
	valid, _ = ValidateEvent(&Event{Title: "Viewing", StartTime: start, EndTime: start})
	assert.False(t, valid)

	// Bad type.
	valid, _ = ValidateEvent(&Event{Title: "Viewing", StartTime: start, EndTime: end, Type: "party"})
	assert.False(t, valid)
}
