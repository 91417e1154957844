//go:build !nogui

package gui

import (
	"fmt"

	"mapgallery/internal/view"
	"mapgallery/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Button captions
const (
	hideSettings = "Hide settings"
	showSettings = "Show settings"
)

// panel is the settings column on the right of the window.
type panel struct {
	root     *fyne.Container
	settings *container.Scroll

	toggle *widget.Button
	like   *widget.Button
	play   *widget.Button
	rescan *widget.Button
	reset  *widget.Button

	checks map[types.Filter]*widget.Check

	columns      *widget.Slider
	columnsLabel *widget.Label
	size         *widget.Slider
	sizeLabel    *widget.Label

	progress *widget.Label
	mapName  *widget.Label
}

func (a *App) newPanel() *panel {
	p := &panel{checks: make(map[types.Filter]*widget.Check)}

	p.toggle = widget.NewButton(hideSettings, a.ctrl.TogglePanel)
	p.like = widget.NewButton("Like", func() {
		if err := a.ctrl.ToggleLike(); err != nil {
			a.ShowError("Like", err)
		}
	})
	p.play = widget.NewButton("Play map", func() {
		if err := a.ctrl.Play(); err != nil {
			a.ShowError("Play map", err)
		}
	})
	p.rescan = widget.NewButton("Rescan Images", a.rescan)
	p.reset = widget.NewButton("Reset settings", a.ctrl.Reset)

	groups := make(map[types.FilterCategory]*fyne.Container)
	for _, cat := range types.FilterCategories {
		groups[cat] = container.NewVBox()
	}
	for _, opt := range types.FilterOptions {
		flag := opt.Flag
		check := widget.NewCheck(opt.Label, func(on bool) {
			if a.syncing || a.inputBlocked() || on == a.ctrl.State().Filters.Active(flag) {
				return
			}
			if err := a.ctrl.ToggleFilter(flag); err != nil {
				a.ShowError("Filter", err)
			}
		})
		p.checks[flag] = check
		groups[opt.Category].Add(check)
	}
	filters := widget.NewAccordion()
	for _, cat := range types.FilterCategories {
		filters.Append(widget.NewAccordionItem(string(cat), groups[cat]))
	}

	p.columnsLabel = widget.NewLabel("")
	p.columns = widget.NewSlider(types.MinColumns, types.MaxColumns)
	p.columns.Step = 1
	p.columns.OnChanged = func(v float64) {
		if a.inputBlocked() {
			return
		}
		p.columnsLabel.SetText(columnsText(int(v)))
		if a.syncing || int(v) == a.ctrl.State().Columns {
			return
		}
		a.ctrl.SetColumns(int(v))
	}

	p.sizeLabel = widget.NewLabel("")
	p.size = widget.NewSlider(types.MinThumbnailSize, types.MaxThumbnailSize)
	p.size.Step = 10
	p.size.OnChanged = func(v float64) {
		if a.inputBlocked() {
			return
		}
		p.sizeLabel.SetText(sizeText(int(v)))
		if a.syncing || int(v) == a.ctrl.State().Width {
			return
		}
		a.ctrl.SetThumbnailSize(int(v))
	}

	p.progress = widget.NewLabel("")
	p.progress.Wrapping = fyne.TextWrapWord
	p.mapName = widget.NewLabel("")
	p.mapName.Wrapping = fyne.TextWrapWord

	p.settings = container.NewVScroll(container.NewVBox(
		container.NewGridWithColumns(2, p.like, p.play),
		p.rescan,
		filters,
		p.columnsLabel,
		p.columns,
		p.sizeLabel,
		p.size,
		p.reset,
		p.progress,
		p.mapName,
	))
	p.settings.SetMinSize(fyne.NewSize(260, 0))

	p.root = container.NewBorder(p.toggle, nil, nil, nil, p.settings)
	return p
}

// sync copies a snapshot into the widgets. Callers suppress change callbacks.
func (p *panel) sync(s view.Snapshot) {
	if s.State.PanelVisible {
		p.toggle.SetText(hideSettings)
		p.settings.Show()
	} else {
		p.toggle.SetText(showSettings)
		p.settings.Hide()
	}

	if int(p.columns.Value) != s.State.Columns {
		p.columns.SetValue(float64(s.State.Columns))
	}
	p.columnsLabel.SetText(columnsText(s.State.Columns))
	if int(p.size.Value) != s.State.Width {
		p.size.SetValue(float64(s.State.Width))
	}
	p.sizeLabel.SetText(fmt.Sprintf("Image size: %dx%d", s.State.Width, s.State.Height))

	for flag, check := range p.checks {
		if on := s.State.Filters.Active(flag); check.Checked != on {
			check.SetChecked(on)
		}
	}

	p.progress.SetText(s.Status)

	// everything stays disabled until a running rescan has finished
	idle := !s.Rescanning
	for _, w := range []fyne.Disableable{p.toggle, p.rescan, p.reset, p.columns, p.size} {
		setEnabled(w, idle)
	}
	for _, check := range p.checks {
		setEnabled(check, idle)
	}

	if s.Selected == nil {
		p.mapName.SetText("")
		p.like.SetText("Like")
		p.like.Disable()
		p.play.Disable()
		return
	}
	p.mapName.SetText("Map: " + s.Selected.Name)
	if s.Selected.Liked {
		p.like.SetText("Unlike")
	} else {
		p.like.SetText("Like")
	}
	setEnabled(p.like, idle)
	setEnabled(p.play, idle)
}

func setEnabled(w fyne.Disableable, on bool) {
	if on == !w.Disabled() {
		return
	}
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func columnsText(n int) string {
	return fmt.Sprintf("Columns: %d", n)
}

func sizeText(n int) string {
	return fmt.Sprintf("Image size: %dx%d", n, n)
}
