package view

import (
	"mapgallery/internal/input"
	"mapgallery/pkg/types"
)

// DefaultScrollUnit is the pixel distance of one scroll step.
const DefaultScrollUnit = 20

// Viewport tracks the visible window over the gallery grid.
type Viewport struct {
	Offset  types.Point // Top-left corner of the visible window
	Extent  types.Size  // Scrollable area, always the current grid bounds
	Visible types.Size  // Size of the visible window
	Unit    int         // Pixels per scroll unit
}

// NewViewport returns a viewport at the origin.
func NewViewport(unit int) Viewport {
	if unit < 1 {
		unit = DefaultScrollUnit
	}
	return Viewport{Unit: unit}
}

// SetExtent replaces the scrollable area and clamps the offset into it.
func (v *Viewport) SetExtent(bounds types.Size) {
	v.Extent = bounds
	v.clamp()
}

// SetVisible records the window size and clamps the offset.
func (v *Viewport) SetVisible(size types.Size) {
	v.Visible = size
	v.clamp()
}

// Scroll moves the offset by step and reports whether it changed.
func (v *Viewport) Scroll(step input.Step) bool {
	before := v.Offset
	d := step.Units * v.Unit
	if step.Axis == input.Horizontal {
		v.Offset.X += d
	} else {
		v.Offset.Y += d
	}
	v.clamp()
	return v.Offset != before
}

// MaxOffset is the furthest the window can move on each axis.
func (v Viewport) MaxOffset() types.Point {
	return types.Point{
		X: max(0, v.Extent.W-v.Visible.W),
		Y: max(0, v.Extent.H-v.Visible.H),
	}
}

func (v *Viewport) clamp() {
	m := v.MaxOffset()
	v.Offset.X = min(max(v.Offset.X, 0), m.X)
	v.Offset.Y = min(max(v.Offset.Y, 0), m.Y)
}
