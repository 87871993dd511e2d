package main

import (
	"image"
	"sync"
	"time"

	"github.com/taigrr/painter/pkg/pipeline"
)

// holdTimeout is how long a key counts as held after its last press or
// repeat. Many terminals never report key releases.
const holdTimeout = 150 * time.Millisecond

type key int

const (
	keyForward key = iota
	keyBack
	keyLeft
	keyRight
	keyUp
	keyDown
	numKeys
)

// input collects terminal events for the frame loop. The event goroutine
// writes it and the frame loop drains it once per frame.
type input struct {
	mu        sync.Mutex
	pressed   [numKeys]time.Time
	modeSteps int
	toggleHUD bool
	resize    *image.Point
}

func (in *input) press(k key, now time.Time) {
	in.mu.Lock()
	in.pressed[k] = now
	in.mu.Unlock()
}

func (in *input) release(k key) {
	in.mu.Lock()
	in.pressed[k] = time.Time{}
	in.mu.Unlock()
}

func (in *input) cycleMode() {
	in.mu.Lock()
	in.modeSteps++
	in.mu.Unlock()
}

func (in *input) flipHUD() {
	in.mu.Lock()
	in.toggleHUD = !in.toggleHUD
	in.mu.Unlock()
}

func (in *input) requestResize(width, height int) {
	in.mu.Lock()
	in.resize = &image.Point{X: width, Y: height}
	in.mu.Unlock()
}

// frameInput is what the frame loop consumes from one drain.
type frameInput struct {
	controls  pipeline.Controls
	modeSteps int
	toggleHUD bool
	resize    *image.Point
}

// drain returns the keys held at now along with the one-shot requests
// queued since the last drain, and clears those requests.
func (in *input) drain(now time.Time) frameInput {
	in.mu.Lock()
	defer in.mu.Unlock()

	held := func(k key) bool {
		t := in.pressed[k]
		return !t.IsZero() && now.Sub(t) < holdTimeout
	}
	out := frameInput{
		controls: pipeline.Controls{
			Forward: held(keyForward),
			Back:    held(keyBack),
			Left:    held(keyLeft),
			Right:   held(keyRight),
			Up:      held(keyUp),
			Down:    held(keyDown),
		},
		modeSteps: in.modeSteps,
		toggleHUD: in.toggleHUD,
		resize:    in.resize,
	}
	in.modeSteps = 0
	in.toggleHUD = false
	in.resize = nil
	return out
}
