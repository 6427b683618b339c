// Package ecs provides ECS adapters for orchard's lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges orchard stage events
// (fruit created, relocated, clearing, removed, snapshot) into a [Donburi]
// world as typed events. Subscribe to [StageEventType] in your ECS systems to
// receive them, or use [NewTaskList] for a ready-made list of tasks.
//
// Usage:
//
//	world := donburi.NewWorld()
//	tasks := ecs.NewTaskList(world)
//	stage.SetEventSink(ecs.NewDonburiSink(world))
//	// once per update
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
