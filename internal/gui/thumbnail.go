//go:build !nogui

package gui

import (
	"image/color"

	"mapgallery/internal/gallery"
	"mapgallery/internal/log"
	"mapgallery/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var likedColor = color.NRGBA{R: 220, G: 40, B: 60, A: 255}

// thumbnail shows one map preview and selects it when tapped.
type thumbnail struct {
	widget.BaseWidget
	cell     types.Cell
	image    *canvas.Image
	frame    *canvas.Rectangle
	accent   color.Color
	selected bool
	onTapped func(types.Cell)
}

func newThumbnail(cell types.Cell, size int, accent color.Color, onTapped func(types.Cell)) *thumbnail {
	var img *canvas.Image
	if src, err := gallery.Thumbnail(cell.Entry.Path, size); err != nil {
		log.LogWithError(err).Warn("Cannot load thumbnail")
		img = canvas.NewImageFromResource(theme.BrokenImageIcon())
	} else {
		img = canvas.NewImageFromImage(src)
	}
	img.FillMode = canvas.ImageFillContain

	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeWidth = 3

	t := &thumbnail{
		cell:     cell,
		image:    img,
		frame:    frame,
		accent:   accent,
		onTapped: onTapped,
	}
	t.updateFrame()
	t.ExtendBaseWidget(t)
	return t
}

func (t *thumbnail) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(t.image, t.frame))
}

// Tapped implements fyne.Tappable.
func (t *thumbnail) Tapped(_ *fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped(t.cell)
	}
}

// SetSelected toggles the selection frame.
func (t *thumbnail) SetSelected(selected bool) {
	if t.selected == selected {
		return
	}
	t.selected = selected
	t.updateFrame()
	t.frame.Refresh()
}

func (t *thumbnail) updateFrame() {
	switch {
	case t.selected:
		t.frame.StrokeColor = t.accent
	case t.cell.Entry.Liked:
		t.frame.StrokeColor = likedColor
	default:
		t.frame.StrokeColor = color.Transparent
	}
}
