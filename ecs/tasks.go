package ecs

import (
	"github.com/phanxgames/orchard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Task is the list-view record of one fruit.
type Task struct {
	Fruit    orchard.FruitID
	Text     string
	Location orchard.Location
	Clearing bool
}

// TaskComponent holds a Task on an entity.
var TaskComponent = donburi.NewComponentType[Task]()

var taskQuery = donburi.NewQuery(filter.Contains(TaskComponent))

// TaskList mirrors the fruit set as Donburi entities, one per fruit. It is
// fed by StageEventType and is up to date after events are processed.
type TaskList struct {
	world    donburi.World
	entities map[orchard.FruitID]donburi.Entity
}

// NewTaskList subscribes a mirror to StageEventType on world.
func NewTaskList(world donburi.World) *TaskList {
	l := &TaskList{
		world:    world,
		entities: make(map[orchard.FruitID]donburi.Entity),
	}
	StageEventType.Subscribe(world, l.onEvent)
	return l
}

func (l *TaskList) onEvent(w donburi.World, e orchard.StageEvent) {
	switch e.Type {
	case orchard.StageFruitCreated:
		if _, ok := l.entities[e.Fruit]; ok {
			return
		}
		entity := w.Create(TaskComponent)
		TaskComponent.SetValue(w.Entry(entity), Task{
			Fruit:    e.Fruit,
			Text:     e.Text,
			Location: e.To,
		})
		l.entities[e.Fruit] = entity
	case orchard.StageFruitRelocated:
		if task := l.task(w, e.Fruit); task != nil {
			task.Location = e.To
		}
	case orchard.StageFruitClearing:
		if task := l.task(w, e.Fruit); task != nil {
			task.Location = orchard.LocationClearing
			task.Clearing = true
			task.Text = e.Text
		}
	case orchard.StageFruitRemoved:
		entity, ok := l.entities[e.Fruit]
		if !ok {
			return
		}
		delete(l.entities, e.Fruit)
		if w.Valid(entity) {
			w.Remove(entity)
		}
	}
}

func (l *TaskList) task(w donburi.World, id orchard.FruitID) *Task {
	entity, ok := l.entities[id]
	if !ok || !w.Valid(entity) {
		return nil
	}
	return TaskComponent.Get(w.Entry(entity))
}

// Get returns the task of a fruit.
func (l *TaskList) Get(id orchard.FruitID) (Task, bool) {
	task := l.task(l.world, id)
	if task == nil {
		return Task{}, false
	}
	return *task, true
}

// Len returns the number of mirrored tasks.
func (l *TaskList) Len() int {
	return taskQuery.Count(l.world)
}

// CountIn returns the number of tasks in loc.
func (l *TaskList) CountIn(loc orchard.Location) int {
	n := 0
	taskQuery.Each(l.world, func(entry *donburi.Entry) {
		if TaskComponent.Get(entry).Location == loc {
			n++
		}
	})
	return n
}

// Sync refreshes task texts from the live fruits; labels are edited in place
// and do not publish events.
func (l *TaskList) Sync(fruits []*orchard.Fruit) {
	for _, f := range fruits {
		if task := l.task(l.world, f.ID); task != nil {
			task.Text = f.Text()
		}
	}
}
