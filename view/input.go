package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/orchard"
)

// PointerSink receives raw pointer input. sim.World implements it.
type PointerSink interface {
	PointerDown(p orchard.Vec2)
	PointerMove(p orchard.Vec2)
	PointerUp(p orchard.Vec2)
	PointerLeave()
}

// inputState turns per-frame pointer samples into edge events.
type inputState struct {
	inside  bool
	pressed bool

	touchIDs []ebiten.TouchID
}

// feed compares one sample with the previous frame and forwards the
// difference. A sample outside the canvas ends any press with a leave.
func (in *inputState) feed(dst PointerSink, p orchard.Vec2, pressed, inside bool) {
	if !inside {
		if in.inside {
			dst.PointerLeave()
		}
		in.inside = false
		in.pressed = false
		return
	}
	in.inside = true

	switch {
	case pressed && !in.pressed:
		dst.PointerMove(p)
		dst.PointerDown(p)
	case !pressed && in.pressed:
		dst.PointerMove(p)
		dst.PointerUp(p)
	default:
		dst.PointerMove(p)
	}
	in.pressed = pressed
}

// processInput samples the mouse, or the first touch when one is active,
// and feeds it through the pointer state machine.
func (g *Game) processInput() {
	w, h := g.Layout(0, 0)

	var x, y int
	var pressed bool
	g.input.touchIDs = ebiten.AppendTouchIDs(g.input.touchIDs[:0])
	if len(g.input.touchIDs) > 0 {
		x, y = ebiten.TouchPosition(g.input.touchIDs[0])
		pressed = true
	} else {
		x, y = ebiten.CursorPosition()
		pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	inside := ebiten.IsFocused() && x >= 0 && y >= 0 && x < w && y < h
	// Keep a drag alive when the pointer is pressed and momentarily
	// outside; the release will land wherever it is.
	if !inside && pressed && g.input.pressed {
		inside = true
	}
	g.input.feed(g.world, orchard.Vec2{X: float64(x), Y: float64(y)}, pressed, inside)
}

// repeatKey reports whether a held key should fire this frame: once on
// press, then every third frame after half a second.
func repeatKey(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// processKeys handles label editing and the stage shortcuts.
func (g *Game) processKeys() {
	if runes := ebiten.AppendInputChars(g.runes[:0]); len(runes) > 0 {
		g.runes = runes
		g.stage.TypeText(runes)
	}
	if repeatKey(ebiten.KeyBackspace) {
		g.stage.Backspace()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		g.ClearAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		g.EmptyCart()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.ShowHUD = !g.ShowHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		g.Screenshot("manual")
	}
}
