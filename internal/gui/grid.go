//go:build !nogui

package gui

import (
	"math"

	"mapgallery/internal/gallery"
	"mapgallery/internal/input"
	"mapgallery/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// pixelsPerNotch is the scroll distance desktop drivers report for one
// wheel notch.
const pixelsPerNotch = 10

// wheelDelta converts a fyne scroll distance into the raw delta the platform
// wheel would have reported.
func wheelDelta(goos string, dy float32) int {
	if dy == 0 {
		return 0
	}
	notches := int(math.Round(float64(dy / pixelsPerNotch)))
	if notches == 0 {
		notches = 1
		if dy < 0 {
			notches = -1
		}
	}
	if goos == "darwin" {
		return notches
	}
	return notches * input.WheelNotch
}

// gridLayout places each object at the pixel position of its cell.
type gridLayout struct {
	cells   []types.Cell
	size    int
	spacing gallery.Spacing
	bounds  types.Size
}

func (l *gridLayout) Layout(objects []fyne.CanvasObject, _ fyne.Size) {
	edge := fyne.NewSize(float32(l.size), float32(l.size))
	for i, o := range objects {
		if i >= len(l.cells) {
			break
		}
		c := l.cells[i]
		p := gallery.CellOrigin(c.Row, c.Col, l.size, l.spacing)
		o.Move(fyne.NewPos(float32(p.X), float32(p.Y)))
		o.Resize(edge)
	}
}

// MinSize is the grid bounds so the enclosing scroll covers exactly the grid.
func (l *gridLayout) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(float32(l.bounds.W), float32(l.bounds.H))
}

// thumbGrid hosts the thumbnails and takes over wheel events from the
// enclosing scroll container.
type thumbGrid struct {
	widget.BaseWidget
	layout  *gridLayout
	content *fyne.Container
	onWheel func(dy float32)
}

func newThumbGrid(onWheel func(dy float32)) *thumbGrid {
	g := &thumbGrid{layout: &gridLayout{}, onWheel: onWheel}
	g.content = container.New(g.layout)
	g.ExtendBaseWidget(g)
	return g
}

func (g *thumbGrid) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(g.content)
}

// Scrolled implements fyne.Scrollable.
func (g *thumbGrid) Scrolled(ev *fyne.ScrollEvent) {
	if g.onWheel != nil {
		g.onWheel(ev.Scrolled.DY)
	}
}

// SetCells replaces every thumbnail.
func (g *thumbGrid) SetCells(cells []types.Cell, size int, sp gallery.Spacing, bounds types.Size, objects []fyne.CanvasObject) {
	g.layout.cells = cells
	g.layout.size = size
	g.layout.spacing = sp
	g.layout.bounds = bounds
	g.content.Objects = objects
	g.content.Refresh()
	g.Refresh()
}

// Objects returns the thumbnails in cell order
func (g *thumbGrid) Objects() []fyne.CanvasObject {
	return g.content.Objects
}
