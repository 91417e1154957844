package input

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	n := Normalizer{GOOS: "linux"}

	tests := []struct {
		name string
		want Step
	}{
		{"Up", Step{Vertical, -1}},
		{"down", Step{Vertical, 1}},
		{"Left", Step{Horizontal, -1}},
		{"RIGHT", Step{Horizontal, 1}},
		{"KeyUp", Step{Vertical, -1}},
		{"k", Step{Vertical, -1}},
		{"j", Step{Vertical, 1}},
		{"h", Step{Horizontal, -1}},
		{"l", Step{Horizontal, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Key(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, name := range []string{"", "Return", "space", "x"} {
		_, ok := n.Key(name)
		assert.False(t, ok, name)
	}
}

func TestWheel(t *testing.T) {
	tests := []struct {
		goos  string
		delta int
		units int
		ok    bool
	}{
		{"darwin", 1, -1, true},
		{"darwin", -3, 3, true},
		{"darwin", 0, 0, false},
		{"windows", 120, -1, true},
		{"windows", -240, 2, true},
		{"linux", -120, 1, true},
		{"linux", 60, 0, false},
		{"linux", -119, 0, false},
		{"linux", 250, -2, true},
	}
	for _, tt := range tests {
		got, ok := Normalizer{GOOS: tt.goos}.Wheel(tt.delta)
		assert.Equal(t, tt.ok, ok, "%s %d", tt.goos, tt.delta)
		assert.Equal(t, tt.units, got.Units, "%s %d", tt.goos, tt.delta)
		if ok {
			assert.Equal(t, Vertical, got.Axis)
		}
	}
}

func TestWheelSymmetric(t *testing.T) {
	for _, goos := range []string{"darwin", "linux", "windows"} {
		n := Normalizer{GOOS: goos}
		up, _ := n.Wheel(WheelNotch)
		down, _ := n.Wheel(-WheelNotch)
		assert.Equal(t, -up.Units, down.Units, goos)
	}
}

func TestNew(t *testing.T) {
	assert.Equal(t, runtime.GOOS, New().GOOS)
	assert.Equal(t, "vertical", Vertical.String())
	assert.Equal(t, "horizontal", Horizontal.String())
	assert.True(t, Step{}.IsZero())
}
