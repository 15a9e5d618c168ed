package parallax

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`

	// tilt
	Alpha       float64 `json:"alpha,omitempty"`
	Beta        float64 `json:"beta,omitempty"`
	Gamma       float64 `json:"gamma,omitempty"`
	Orientation int     `json:"orientation,omitempty"`

	// fade
	In bool `json:"in,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"pointer": true, "sweep": true, "tilt": true, "shift": true,
	"fade": true, "resize": true, "wait": true, "screenshot": true,
	"start": true, "stop": true,
}

// TestRunner sequences input, resizes and screenshots across ticks for
// automated visual testing. Attach to an Engine via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the engine. The runner steps once
// per tick, before input is polled.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one tick.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
	case "pointer":
		e.InjectPointer(st.X, st.Y)
	case "sweep":
		e.InjectPointerPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "tilt":
		e.Tilt(TiltSample{Alpha: st.Alpha, Beta: st.Beta, Gamma: st.Gamma, Orientation: Orientation(st.Orientation)})
	case "shift":
		e.SetShift(Vec2{st.X, st.Y})
	case "fade":
		e.FadeItems(st.In)
	case "resize":
		e.Resize(Vec2{st.X, st.Y})
	case "start":
		e.StartAnimating()
	case "stop":
		e.StopAnimating()
	case "screenshot":
		e.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
