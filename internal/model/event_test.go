package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventEnsureDefaults(t *testing.T) {
	ev := Event{Title: "Old record"}
	ev.EnsureDefaults()
	assert.Equal(t, DefaultEventType, ev.Type)
	assert.Equal(t, DefaultEventColor, ev.Color)

	ev = Event{Title: "Tagged", Type: "meeting", Color: "#28a745"}
	ev.EnsureDefaults()
	assert.Equal(t, "meeting", ev.Type)
	assert.Equal(t, "#28a745", ev.Color)
}
