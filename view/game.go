// Package view is the Ebitengine front end for an orchard stage running on a
// sim world. It samples the pointer and keyboard, steps the world and the
// stage, and draws bodies, labels and an optional HUD.
//
// Input can be scripted for automated runs: InjectPress, InjectMove,
// InjectRelease, InjectClick and InjectDrag queue synthetic pointer events
// that replace real input while the queue is non-empty, and LoadTestScript
// sequences them with stage operations and screenshots.
package view

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/orchard"
	"github.com/phanxgames/orchard/ecs"
	"github.com/phanxgames/orchard/sim"
)

// Game implements ebiten.Game.
type Game struct {
	stage *orchard.Stage
	world *sim.World

	input       inputState
	injectQueue []syntheticPointerEvent
	runes       []rune
	runner      *TestRunner

	// ShowHUD draws the FPS/TPS and fruit counters in the top-left corner.
	ShowHUD bool
	// ExitWhenDone ends the game once an attached test script has finished.
	ExitWhenDone bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ClearColor fills the screen before the bodies are drawn.
	ClearColor color.RGBA

	ecsWorld donburi.World
	tasks    *ecs.TaskList

	hud             hud
	pixel           *ebiten.Image
	labelBuf        *ebiten.Image
	screenshotQueue []string
	closed          bool
}

// New creates a game drawing stage over world. The stage must already be
// initialized against world.
func New(stage *orchard.Stage, world *sim.World) *Game {
	if stage == nil || world == nil {
		panic("view: game needs a stage and a world")
	}
	return &Game{
		stage:         stage,
		world:         world,
		ScreenshotDir: "screenshots",
		ClearColor:    color.RGBA{R: 0xf4, G: 0xf1, B: 0xe8, A: 0xff},
	}
}

// Stage returns the stage the game drives.
func (g *Game) Stage() *orchard.Stage {
	return g.stage
}

// SetTaskList attaches a task list fed from world. Queued stage events are
// processed once per frame, after the stage has run.
func (g *Game) SetTaskList(world donburi.World, tasks *ecs.TaskList) {
	g.ecsWorld = world
	g.tasks = tasks
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return g.shutdown()
	}
	dt := 1.0 / float64(ebiten.TPS())

	if g.runner != nil {
		g.runner.step(g)
	}
	if !g.processInjectedInput() {
		g.processInput()
	}
	g.processKeys()
	g.simulate(dt)
	ebiten.SetCursorShape(cursorShape(g.stage.Cursor().Style))

	if g.ExitWhenDone && g.runner != nil && g.runner.Done() && len(g.screenshotQueue) == 0 {
		return g.shutdown()
	}
	return nil
}

// Advance runs one frame of dt seconds using only injected input. It is the
// headless counterpart of Update.
func (g *Game) Advance(dt float64) {
	if g.runner != nil {
		g.runner.step(g)
	}
	g.processInjectedInput()
	g.simulate(dt)
}

func (g *Game) simulate(dt float64) {
	g.world.Step(dt)
	g.stage.Tick(dt)
	g.stage.Frame(dt)
	if g.tasks != nil {
		events.ProcessAllEvents(g.ecsWorld)
		g.tasks.Sync(g.stage.Fruits())
	}
	g.hud.update(dt)
}

// ClearAll clears every fruit with the configured animation.
func (g *Game) ClearAll() {
	g.stage.ClearAll(g.stage.Config().ClearDelay)
	g.hud.notify("Cleared", 2*g.stage.Config().ClearDelay)
}

// EmptyCart shoves the cart's fruits out of the scene. It reports whether
// the operation started.
func (g *Game) EmptyCart() bool {
	if !g.stage.EmptyContainer(orchard.ZoneCart) {
		return false
	}
	g.hud.notify("Cart emptied", 2*g.stage.Config().ClearDelay)
	return true
}

// shutdown writes the final snapshot once and ends the run loop.
func (g *Game) shutdown() error {
	if !g.closed {
		g.closed = true
		if err := g.stage.Teardown(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[orchard] teardown: %v\n", err)
		}
	}
	return ebiten.Termination
}

// Layout implements ebiten.Game. The logical screen is the world, so
// screen and world coordinates coincide.
func (g *Game) Layout(_, _ int) (int, int) {
	cfg := g.stage.Config()
	return int(cfg.WorldWidth), int(cfg.WorldHeight)
}

func cursorShape(style orchard.CursorStyle) ebiten.CursorShapeType {
	switch style {
	case orchard.CursorGrab:
		return ebiten.CursorShapeMove
	case orchard.CursorPointer:
		return ebiten.CursorShapePointer
	}
	return ebiten.CursorShapeDefault
}
