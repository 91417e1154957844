//go:build !nogui

package gui

import (
	"context"
	"fmt"
	"image/color"

	"mapgallery/internal/config"
	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/internal/input"
	"mapgallery/internal/log"
	"mapgallery/internal/view"
	"mapgallery/internal/watch"
	"mapgallery/pkg/types"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	ctrl       *view.Controller
	norm       input.Normalizer
	watcher    *watch.Watcher

	grid   *thumbGrid
	scroll *container.Scroll
	panel  *panel
	thumbs []*thumbnail

	// Grid currently shown, used to skip redundant thumbnail decoding
	shownGrid *gallery.Result
	selected  string

	// Set while widgets are updated from a snapshot so their change
	// callbacks do not feed back into the controller
	syncing bool

	// Theme settings
	accentColor color.NRGBA
	bgColor     color.NRGBA
}

// NewApp creates a new GUI application
func NewApp(cfg *config.Config, ctrl *view.Controller) *App {
	return newApp(app.NewWithID("io.github.mapgallery"), cfg, ctrl)
}

func newApp(fyneApp fyne.App, cfg *config.Config, ctrl *view.Controller) *App {
	a := &App{
		fyneApp:     fyneApp,
		cfg:         cfg,
		ctrl:        ctrl,
		norm:        input.New(),
		accentColor: color.NRGBA{R: 255, G: 165, B: 0, A: 255},
		bgColor:     color.NRGBA{R: 16, G: 16, B: 16, A: 255},
	}

	a.mainWindow = a.fyneApp.NewWindow("Map Gallery")
	a.mainWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	a.setupMainWindow()

	ctrl.OnChange(func(s view.Snapshot) {
		fyne.Do(func() { a.applySnapshot(s) })
	})
	ctrl.OnStatus(func(msg string) {
		fyne.Do(func() { a.panel.progress.SetText(msg) })
	})

	a.applySnapshot(ctrl.Snapshot())
	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run loads the gallery, starts the folder watcher when enabled and blocks
// until the window is closed.
func (a *App) Run() {
	a.ctrl.Refresh()
	a.startWatcher()
	defer a.stopWatcher()

	a.mainWindow.ShowAndRun()
}

func (a *App) setupMainWindow() {
	background := canvas.NewRectangle(a.bgColor)

	a.grid = newThumbGrid(a.wheel)
	a.scroll = container.NewScroll(a.grid)
	a.scroll.OnScrolled = func(p fyne.Position) {
		a.ctrl.SetOffset(types.Point{X: int(p.X), Y: int(p.Y)})
	}
	a.panel = a.newPanel()

	content := container.NewBorder(
		nil,
		nil,
		nil,
		a.panel.root,
		a.scroll,
	)
	a.mainWindow.SetContent(container.NewStack(background, content))
	a.mainWindow.Canvas().SetOnTypedKey(a.typedKey)
}

// applySnapshot brings every widget in line with the controller state.
func (a *App) applySnapshot(s view.Snapshot) {
	a.syncing = true
	defer func() { a.syncing = false }()

	a.panel.sync(s)

	if s.Grid != a.shownGrid {
		a.showGrid(s.Grid)
	}

	selected := ""
	if s.Selected != nil {
		selected = s.Selected.Path
	}
	if selected != a.selected {
		a.selected = selected
		for _, th := range a.thumbs {
			th.SetSelected(th.cell.Entry.Path == selected)
		}
	}

	a.scroll.Offset = fyne.NewPos(float32(s.Viewport.Offset.X), float32(s.Viewport.Offset.Y))
	a.scroll.Refresh()
}

func (a *App) showGrid(res *gallery.Result) {
	a.shownGrid = res
	a.thumbs = a.thumbs[:0]
	if res == nil {
		a.grid.SetCells(nil, 0, gallery.Spacing{}, types.Size{}, nil)
		return
	}

	spacing := gallery.Spacing{X: a.cfg.View.SpacingX, Y: a.cfg.View.SpacingY}
	objects := make([]fyne.CanvasObject, 0, len(res.Cells))
	for _, cell := range res.Cells {
		th := newThumbnail(cell, res.Size, a.accentColor, a.selectCell)
		th.SetSelected(cell.Entry.Path == a.selected)
		a.thumbs = append(a.thumbs, th)
		objects = append(objects, th)
	}
	a.grid.SetCells(res.Cells, res.Size, spacing, res.Bounds, objects)
}

// inputBlocked reports whether user input is ignored because a rescan runs.
// Updates coming from a snapshot are never blocked.
func (a *App) inputBlocked() bool {
	return !a.syncing && a.ctrl.Rescanning()
}

func (a *App) selectCell(cell types.Cell) {
	if a.inputBlocked() {
		return
	}
	a.ctrl.Select(cell)
}

func (a *App) syncVisible() {
	size := a.scroll.Size()
	a.ctrl.SetVisible(types.Size{W: int(size.Width), H: int(size.Height)})
}

func (a *App) wheel(dy float32) {
	if a.inputBlocked() {
		return
	}
	step, ok := a.norm.Wheel(wheelDelta(a.norm.GOOS, dy))
	if !ok {
		return
	}
	a.syncVisible()
	a.ctrl.Scroll(step)
}

func (a *App) typedKey(ev *fyne.KeyEvent) {
	if a.inputBlocked() {
		return
	}
	step, ok := a.norm.Key(string(ev.Name))
	if !ok {
		return
	}
	a.syncVisible()
	a.ctrl.Scroll(step)
}

func (a *App) rescan() {
	a.panel.rescan.Disable()
	go func() {
		err := a.ctrl.RequestRescan(context.Background())
		if err != nil && !errors.IsBusy(err) {
			fyne.Do(func() { a.ShowError("Rescan failed", err) })
		}
	}()
}

func (a *App) startWatcher() {
	if !a.cfg.Watch.Enabled {
		return
	}
	m, err := gallery.NewMatcher(a.cfg.Gallery.Extensions)
	if err != nil {
		log.LogWithError(err).Warn("Folder watching disabled")
		return
	}
	w, err := watch.WatchFolders(a.ctrl.Folders(), m.Match, a.cfg.Watch.Debounce, func(changes []watch.Change) {
		fyne.Do(a.ctrl.Refresh)
	})
	if err != nil {
		log.LogWithError(err).Warn("Folder watching disabled")
		return
	}
	a.watcher = w
}

func (a *App) stopWatcher() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
}

// ShowError displays an error dialog
func (a *App) ShowError(title string, err error) {
	if err == nil {
		return
	}
	log.LogWithError(err).Error(title)
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.mainWindow)
}

// ShowInfo displays an information dialog
func (a *App) ShowInfo(message string) {
	dialog.ShowInformation("Information", message, a.mainWindow)
}
