package cadence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrEmptyScript is returned by LoadScript for a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Target string  `json:"target,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	MS     int     `json:"ms,omitempty"`
}

// script is the top-level JSON structure for a script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input across frames for headless runs and
// automated checks. Attach it to a Scene with SetScript.
//
// Supported actions: "hover" (a "target" node name, or x/y), "leave",
// "confirm", "next", "prev" and "wait" (frames, or ms of scene time).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	waitUntil time.Duration
	done      bool

	// OnStep, when set, is called with each action as it executes.
	OnStep func(action, target string)
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "hover", "leave", "confirm", "next", "prev", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a ScriptRunner to the scene. The runner's step method
// is called at the start of every Update or Step.
func (s *Scene) SetScript(r *ScriptRunner) {
	s.script = r
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if s.ticker.Now() < r.waitUntil {
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if r.OnStep != nil {
		r.OnStep(st.Action, st.Target)
	}

	switch st.Action {
	case "hover":
		if st.Target != "" {
			n := s.root.Query("#" + st.Target)
			if !s.InjectHover(n) {
				log.Printf("cadence: script hover target %q not found", st.Target)
			}
		} else {
			s.InjectMove(st.X, st.Y)
		}
	case "leave":
		s.InjectLeave()
	case "confirm":
		s.InjectKey(KeyConfirm)
	case "next":
		s.InjectKey(KeyNext)
	case "prev":
		s.InjectKey(KeyPrev)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
		if st.MS > 0 {
			r.waitUntil = s.ticker.Now() + time.Duration(st.MS)*time.Millisecond
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.waitUntil <= s.ticker.Now() && len(s.injectQueue) == 0 {
		r.done = true
	}
}
