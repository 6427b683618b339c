package orchard

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	unripe = mustHex("#20b2aa") // lightseagreen
	ripe   = mustHex("#ff6347") // tomato
)

// mustHex parses a #rrggbb or #rgb literal and panics if it is malformed.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("orchard: bad color %q: %v", s, err))
	}
	return c
}

// RipeColor returns the fruit tint for a ripeness in [0, 100], blended in
// HCL space so the midpoint stays saturated.
func RipeColor(ripeness float64) color.RGBA {
	t := clamp(ripeness, 0, 100) / 100
	if math.IsNaN(t) {
		t = 0
	}
	r, g, b := unripe.BlendHcl(ripe, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
