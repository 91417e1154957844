package view

import (
	"testing"

	"mapgallery/internal/input"
	"mapgallery/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestViewportScroll(t *testing.T) {
	v := NewViewport(10)
	v.SetVisible(types.Size{W: 100, H: 100})
	v.SetExtent(types.Size{W: 150, H: 300})

	assert.True(t, v.Scroll(input.Step{Axis: input.Vertical, Units: 3}))
	assert.Equal(t, types.Point{Y: 30}, v.Offset)

	v.Scroll(input.Step{Axis: input.Vertical, Units: 100})
	assert.Equal(t, 200, v.Offset.Y)
	assert.False(t, v.Scroll(input.Step{Axis: input.Vertical, Units: 1}))

	v.Scroll(input.Step{Axis: input.Horizontal, Units: 2})
	assert.Equal(t, 20, v.Offset.X)
	v.Scroll(input.Step{Axis: input.Horizontal, Units: -10})
	assert.Equal(t, 0, v.Offset.X)
}

func TestViewportExtentClamps(t *testing.T) {
	v := NewViewport(0)
	assert.Equal(t, DefaultScrollUnit, v.Unit)

	v.SetVisible(types.Size{W: 100, H: 100})
	v.SetExtent(types.Size{W: 1000, H: 1000})
	v.Offset = types.Point{X: 800, Y: 900}

	v.SetExtent(types.Size{W: 300, H: 50})
	assert.Equal(t, types.Point{X: 200, Y: 0}, v.Offset)
	assert.Equal(t, types.Point{X: 200, Y: 0}, v.MaxOffset())

	v.SetExtent(types.Size{})
	assert.Equal(t, types.Point{}, v.Offset)
}
