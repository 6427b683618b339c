// Package ecs bridges orchard lifecycle events into a Donburi world.
package ecs

import (
	"github.com/phanxgames/orchard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StageEventType is the Donburi event type for orchard lifecycle events.
// Subscribe to this in your ECS systems to receive fruit creation, relocation,
// clearing, removal and snapshot events.
var StageEventType = events.NewEventType[orchard.StageEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Lifecycle events are published to StageEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) orchard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event orchard.StageEvent) {
	StageEventType.Publish(s.world, event)
}
