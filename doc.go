// Package orchard is the state machine behind a "task tree": circular fruits
// standing for to-do items, hung in a tree, dropped on the floor, collected
// in a cart or thrown in a bin.
//
// Orchard never steps physics or draws anything itself. Bodies live in an
// [Engine] (package sim provides one), and orchard decides, for every fruit,
// whether it is static or dynamic, which collision category it belongs to,
// which zone it occupies, and how its scale, angle and position converge on
// new targets.
//
// # Quick start
//
//	engine := sim.New(sim.DefaultConfig())
//	stage := orchard.NewStage(engine, orchard.DefaultConfig())
//	stage.Init(kv.NewMemory())
//
//	// per physics step
//	engine.Step(dt)
//	stage.Tick(dt)
//
//	// per rendered frame
//	stage.Frame(dt)
//
// # Zones
//
// The world holds three named rectangles: the matrix (the tree canopy), the
// cart and the bin. A fruit inside the matrix is pinned upright and static.
// A loose fruit is re-zoned every tick as cart or floor. A fruit released
// over the bin starts clearing and is removed after a short delay.
//
// # Dragging
//
// The engine reports drag starts for any grabbable body under the pointer.
// When several overlap, each start overwrites a pending claim, and the claim
// is confirmed on the next frame only if the engine still holds that body.
// See [Stage.HandleEvent].
//
// # Persistence
//
// [Stage.Persist] writes every fruit as a JSON [Record] to a
// [KeyValueStore]. [Stage.Tick] snapshots at most once per persist interval
// and [Stage.Teardown] writes unconditionally.
//
// # Events
//
// Lifecycle changes can be forwarded to an [EventSink]; package ecs bridges
// them into a donburi world. Package view runs a stage in an Ebitengine
// window.
package orchard
