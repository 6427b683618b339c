package orchard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Field is the text label attached to a fruit. The front end renders it and
// writes Value; orchard owns the state flags.
type Field struct {
	Value string

	// Position of the label as a percentage of the world size.
	X, Y float64

	Visible      bool
	Interactive  bool
	TargetingBin bool
	Clearing     bool

	// Alpha fades to zero while the fruit is clearing.
	Alpha float64

	fade     *gween.Tween
	detached bool
}

func newField(text string) *Field {
	return &Field{Value: text, Alpha: 1}
}

// Detached reports whether the field was removed together with its fruit.
func (f *Field) Detached() bool {
	return f.detached
}

// beginClearing marks the field as leaving and fades it out over duration
// seconds. A non-positive duration hides it at once.
func (f *Field) beginClearing(duration float64) {
	f.Clearing = true
	f.Interactive = false
	f.TargetingBin = false
	if duration <= 0 {
		f.Alpha = 0
		f.fade = nil
		return
	}
	f.fade = gween.New(float32(f.Alpha), 0, float32(duration), ease.OutQuad)
}

// update advances the fade tween by dt seconds.
func (f *Field) update(dt float64) {
	if f.fade == nil {
		return
	}
	val, finished := f.fade.Update(float32(dt))
	f.Alpha = float64(val)
	if finished {
		f.Alpha = 0
		f.fade = nil
	}
}

func (f *Field) detach() {
	f.detached = true
	f.Visible = false
	f.Interactive = false
	f.fade = nil
}
