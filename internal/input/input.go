// Package input turns toolkit specific key names and wheel deltas into
// scroll steps.
package input

import (
	"runtime"
	"strings"
)

// Axis is the direction a step scrolls along.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Step is a normalized scroll request. Positive units scroll down or right.
type Step struct {
	Axis  Axis
	Units int
}

// IsZero reports whether the step scrolls nowhere
func (s Step) IsZero() bool {
	return s.Units == 0
}

// WheelNotch is the raw delta one wheel notch reports outside macOS.
const WheelNotch = 120

// Normalizer maps raw input to steps for one platform.
type Normalizer struct {
	GOOS string
}

// New returns a normalizer for the running platform.
func New() Normalizer {
	return Normalizer{GOOS: runtime.GOOS}
}

// Key maps an arrow key name to a one unit step. Names are matched
// case-insensitively and may carry a "Key" prefix; vi keys hjkl are
// accepted too. Unknown names return false.
func (n Normalizer) Key(name string) (Step, bool) {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.TrimPrefix(k, "key")
	switch k {
	case "up", "k":
		return Step{Axis: Vertical, Units: -1}, true
	case "down", "j":
		return Step{Axis: Vertical, Units: 1}, true
	case "left", "h":
		return Step{Axis: Horizontal, Units: -1}, true
	case "right", "l":
		return Step{Axis: Horizontal, Units: 1}, true
	}
	return Step{}, false
}

// Wheel maps a raw vertical wheel delta to a step. macOS reports deltas in
// notches already; other platforms report multiples of WheelNotch. Wheel
// up is a positive delta and scrolls up. The boolean is false when the
// delta amounts to no movement.
func (n Normalizer) Wheel(delta int) (Step, bool) {
	var units int
	if n.GOOS == "darwin" {
		units = -delta
	} else {
		units = -(delta / WheelNotch)
	}
	if units == 0 {
		return Step{}, false
	}
	return Step{Axis: Vertical, Units: units}, true
}
