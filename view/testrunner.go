package view

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Text   string  `json:"text,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, stage operations and screenshots
// across frames for scripted runs. Attach to a Game via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Game via SetTestRunner.
//
// Supported actions: click, drag, hover, leave, type, backspace, clear,
// empty, wait and screenshot.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func knownAction(action string) bool {
	switch action {
	case "click", "drag", "hover", "leave", "type", "backspace",
		"clear", "empty", "wait", "screenshot":
		return true
	}
	return false
}

// SetTestRunner attaches a TestRunner to the game. The runner's step method
// is called from Update before input is processed each frame.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "hover":
		g.InjectHover(st.X, st.Y)
	case "leave":
		g.InjectLeave()
	case "type":
		g.stage.TypeText([]rune(st.Text))
	case "backspace":
		n := max(st.Frames, 1)
		for range n {
			g.stage.Backspace()
		}
	case "clear":
		g.ClearAll()
	case "empty":
		g.EmptyCart()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
