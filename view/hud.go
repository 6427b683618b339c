package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/orchard"
)

// hudRefresh is how often the counters are redrawn, in seconds.
const hudRefresh = 0.5

// hud displays FPS, TPS and fruit counts, redrawn every half second, and a
// short notice that fades out after a stage operation.
type hud struct {
	img   *ebiten.Image
	since float64
	stale bool

	notice      string
	noticeAlpha float32
	noticeFade  *gween.Tween
	noticeImg   *ebiten.Image
	noticeShown string // text currently rendered into noticeImg
}

func (h *hud) update(dt float64) {
	h.since += dt
	if h.since >= hudRefresh {
		h.since = 0
		h.stale = true
	}
	if h.noticeFade == nil {
		return
	}
	alpha, done := h.noticeFade.Update(float32(dt))
	h.noticeAlpha = alpha
	if done {
		h.noticeFade = nil
		h.notice = ""
		h.noticeAlpha = 0
	}
}

// notify shows msg and fades it out over seconds.
func (h *hud) notify(msg string, seconds float64) {
	if seconds <= 0 {
		seconds = 1
	}
	h.notice = msg
	h.noticeAlpha = 1
	h.noticeFade = gween.New(1, 0, float32(seconds), ease.InQuad)
}

func (h *hud) draw(screen *ebiten.Image, s *orchard.Stage) {
	if h.img == nil {
		// Enough for four short lines of debug text.
		h.img = ebiten.NewImage(160, 68)
		h.stale = true
	}
	if h.stale {
		h.stale = false
		h.img.Clear()
		// Semi-transparent background for readability
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), s.Fruits()))
	}
	screen.DrawImage(h.img, nil)

	if h.notice != "" && h.noticeAlpha > 0 {
		if h.noticeImg == nil {
			h.noticeImg = ebiten.NewImage(160, 16)
		}
		if h.noticeShown != h.notice {
			h.noticeShown = h.notice
			h.noticeImg.Clear()
			ebitenutil.DebugPrint(h.noticeImg, h.notice)
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, 72)
		op.ColorScale.ScaleAlpha(h.noticeAlpha)
		screen.DrawImage(h.noticeImg, op)
	}
}

// hudText formats the counters.
func hudText(fps, tps float64, fruits []*orchard.Fruit) string {
	var tree, cart int
	for _, f := range fruits {
		switch f.Location {
		case orchard.LocationMatrix:
			tree++
		case orchard.LocationCart:
			cart++
		}
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTree: %d\nCart: %d", fps, tps, tree, cart)
}
