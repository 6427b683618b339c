package orchard

// StageEventType identifies a lifecycle change published to the EventSink.
type StageEventType uint8

const (
	StageFruitCreated   StageEventType = iota // a fruit was added to the store
	StageFruitRemoved                         // a fruit left the store and the engine
	StageFruitRelocated                       // a fruit changed location
	StageFruitClearing                        // a fruit started its removal animation
	StageDragClaimed                          // a drag target was confirmed
	StageDragReleased                         // the drag target was released
	StageSnapshot                             // the fruit set was written to storage
)

// StageEvent carries lifecycle data for consumers outside the stage, such as
// a list view or an ECS world.
type StageEvent struct {
	Type     StageEventType
	Fruit    FruitID
	From     Location
	To       Location
	Position Vec2
	Text     string
	Count    int // StageSnapshot: number of records written
}

// EventSink is the interface for optional lifecycle forwarding. When set on a
// Stage, lifecycle events are delivered synchronously as they happen.
type EventSink interface {
	EmitEvent(event StageEvent)
}

// SetEventSink sets the optional lifecycle bridge.
func (s *Stage) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Stage) emit(ev StageEvent) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(ev)
}

// onStoreChange forwards store changes to the render order and the sink.
func (s *Stage) onStoreChange(c StoreChange) {
	switch c.Kind {
	case FruitAdded:
		s.depth.set(c.Fruit.ID, depthFruit)
	case FruitRemoved:
		s.depth.forget(c.Fruit.ID)
		s.transitions.Forget(c.Fruit.ID)
	}
	s.depth.apply(s.engine)

	if s.sink == nil {
		return
	}
	ev := StageEvent{Fruit: c.Fruit.ID, To: c.Fruit.Location, Text: c.Fruit.Text()}
	if c.Kind == FruitAdded {
		ev.Type = StageFruitCreated
		ev.Position = c.Fruit.Position()
	} else {
		ev.Type = StageFruitRemoved
		ev.From = c.Fruit.Location
	}
	s.emit(ev)
}
