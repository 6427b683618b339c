package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/orchard"
)

// palette colors the stage decorations by body label.
var palette = map[string]color.RGBA{
	"ground":  rgba("#8fbc6a"),
	"cart":    rgba("#b07d48"),
	"bin":     rgba("#5f6b73"),
	"bin-lid": rgba("#47525a"),
	"flower":  rgba("#f49ac1"),
}

var defaultBodyColor = rgba("#9aa5ad")

// rgba parses a palette literal. The palette is fixed at compile time, so a
// malformed entry panics.
func rgba(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("view: bad palette color %q: %v", hex, err))
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// bodyColor returns the fill for a drawn body: fruits by ripeness,
// decorations by label.
func (g *Game) bodyColor(id orchard.BodyID, def orchard.BodyDef) color.RGBA {
	if f, ok := g.stage.Fruit(id); ok {
		return orchard.RipeColor(f.Ripeness)
	}
	if c, ok := palette[def.Label]; ok {
		return c
	}
	return defaultBodyColor
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.ClearColor)

	for _, id := range g.world.DrawOrder() {
		def, ok := g.world.Def(id)
		if !ok || def.Hidden {
			continue
		}
		scale := g.world.Scale(id)
		if scale <= 0 {
			continue
		}
		pos := g.world.Position(id)
		if !pos.Finite() {
			continue
		}
		clr := g.bodyColor(id, def)
		switch def.Shape {
		case orchard.ShapeCircle:
			vector.DrawFilledCircle(screen, float32(pos.X), float32(pos.Y), float32(def.Radius*scale), clr, true)
		case orchard.ShapeRect:
			g.drawRect(screen, pos, def.Width*scale, def.Height*scale, g.world.Angle(id), clr)
		}
	}

	g.drawLabels(screen)
	if g.ShowHUD {
		g.hud.draw(screen, g.stage)
	}
	g.flushScreenshots(screen)
}

// drawRect draws a filled rectangle centered on pos and rotated by angle
// radians, stretching a single white pixel.
func (g *Game) drawRect(screen *ebiten.Image, pos orchard.Vec2, w, h, angle float64, clr color.RGBA) {
	if g.pixel == nil {
		g.pixel = ebiten.NewImage(1, 1)
		g.pixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(g.pixel, op)
}

const (
	labelWidth  = 240
	labelHeight = 16
)

// drawLabels prints the text of every visible field over its fruit. A
// clearing field fades with its alpha.
func (g *Game) drawLabels(screen *ebiten.Image) {
	if g.labelBuf == nil {
		g.labelBuf = ebiten.NewImage(labelWidth, labelHeight)
	}
	cfg := g.stage.Config()
	cursor := g.stage.Cursor()

	for _, f := range g.stage.Fruits() {
		field := f.Field
		if !field.Visible && !field.Clearing {
			continue
		}
		if field.Alpha <= 0 {
			continue
		}
		text := labelText(field, f.ID == cursor.Hovered)
		if text == "" {
			continue
		}

		g.labelBuf.Clear()
		ebitenutil.DebugPrint(g.labelBuf, text)

		op := &ebiten.DrawImageOptions{}
		x := field.X / 100 * cfg.WorldWidth
		y := field.Y / 100 * cfg.WorldHeight
		op.GeoM.Translate(x-float64(len(text))*3, y-float64(labelHeight)/2)
		op.ColorScale.ScaleAlpha(float32(field.Alpha))
		screen.DrawImage(g.labelBuf, op)
	}
}

// labelText is what a field shows. An editable field under the pointer
// gets a caret.
func labelText(field *orchard.Field, hovered bool) string {
	if hovered && field.Interactive {
		return field.Value + "_"
	}
	return field.Value
}
