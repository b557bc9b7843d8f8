package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/skybastion/event"
)

func TestEventRouter_FIFOAndDeferredPush(t *testing.T) {
	w, _, notifier := NewTestWorld()
	var trace []string
	sys := &traceSystem{name: "a", trace: &trace, types: []event.EventType{event.EventGroupRevived, event.EventTargetLost}}

	r := NewEventRouter(w)
	r.Register(sys)
	assert.True(t, r.HasHandlers(event.EventGroupRevived))
	assert.Equal(t, 0, r.HandlerCount(event.EventShotFired))

	w.PushEvent(event.EventTargetLost, nil)
	w.PushEvent(event.EventGroupRevived, nil)
	w.PushEvent(event.EventShotFired, nil)

	assert.Equal(t, 3, r.DispatchAll())
	assert.Equal(t, []string{"a:event:TargetLost", "a:event:GroupRevived"}, trace)
	assert.Len(t, notifier.Events, 3, "unhandled events still reach the notifier")
	assert.Equal(t, 0, r.DispatchAll())
}
