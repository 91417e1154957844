// Package view owns the gallery view state and turns user actions into
// grid rebuilds.
package view

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"mapgallery/internal/download"
	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/internal/input"
	"mapgallery/internal/log"
	"mapgallery/internal/store"
	"mapgallery/pkg/types"
)

// Status texts shown by front ends
const (
	StatusRescanning = "Rescanning images..."
	StatusReady      = "Ready"
)

// Renderer rebuilds the grid for a set of folders.
type Renderer interface {
	Rebuild(folders []string, state types.ViewState) *gallery.Result
}

// Snapshot is the state handed to change listeners.
type Snapshot struct {
	State    types.ViewState
	Grid     *gallery.Result
	Viewport Viewport
	Status   string
	Selected *types.ImageEntry
	// Rescanning is set while a rescan runs; front ends block input then
	Rescanning bool
}

// Controller holds the view state and runs every operation that changes it.
// Operations are expected on the interface thread; the mutex makes calls
// marshalled from watcher goroutines safe as well.
type Controller struct {
	mu sync.Mutex

	renderer   Renderer
	downloader download.Downloader
	likes      store.Likes

	folders []string
	source  string
	dest    string

	state      types.ViewState
	grid       *gallery.Result
	viewport   Viewport
	status     string
	selected   string
	rescanning bool

	changeListeners []func(Snapshot)
	statusListeners []func(string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithFolders sets the folders scanned on every rebuild.
func WithFolders(folders ...string) Option {
	return func(c *Controller) { c.folders = append([]string(nil), folders...) }
}

// WithDownloader sets the collaborator used by RequestRescan to fetch
// previews from source into dest.
func WithDownloader(d download.Downloader, source, dest string) Option {
	return func(c *Controller) {
		c.downloader = d
		c.source = source
		c.dest = dest
	}
}

// WithLikes sets the likes store.
func WithLikes(l store.Likes) Option {
	return func(c *Controller) { c.likes = l }
}

// WithState sets the initial view state.
func WithState(s types.ViewState) Option {
	return func(c *Controller) { c.state = s.Clone() }
}

// WithScrollUnit sets the pixel size of a scroll step.
func WithScrollUnit(unit int) Option {
	return func(c *Controller) { c.viewport = NewViewport(unit) }
}

// NewController creates a controller. The grid stays empty until the first
// Refresh.
func NewController(r Renderer, opts ...Option) *Controller {
	c := &Controller{
		renderer: r,
		likes:    store.NewMemory(),
		state:    types.DefaultViewState(),
		grid:     &gallery.Result{},
		viewport: NewViewport(DefaultScrollUnit),
		status:   StatusReady,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.Columns = types.ClampColumns(c.state.Columns)
	c.state.Width = types.ClampThumbnailSize(c.state.Width)
	c.state.Height = c.state.Width
	if c.state.Filters == nil {
		c.state.Filters = types.Filters{}
	}
	return c
}

// OnChange registers a listener called after every state or grid change.
func (c *Controller) OnChange(fn func(Snapshot)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.changeListeners = append(c.changeListeners, fn)
}

// OnStatus registers a listener for status text.
func (c *Controller) OnStatus(fn func(string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusListeners = append(c.statusListeners, fn)
}

// State returns a copy of the current view state
func (c *Controller) State() types.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Grid returns the current grid
func (c *Controller) Grid() *gallery.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// Viewport returns the current viewport
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// Status returns the current status text
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Rescanning reports whether a rescan is in progress
func (c *Controller) Rescanning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rescanning
}

// Selected returns the selected entry, if any.
func (c *Controller) Selected() (types.ImageEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedEntry()
}

// Folders returns the scanned folders
func (c *Controller) Folders() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.folders...)
}

// Snapshot returns the full current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// SetColumns changes the column count, clamped to the allowed range.
func (c *Controller) SetColumns(n int) {
	c.mu.Lock()
	c.state.Columns = types.ClampColumns(n)
	c.rebuildLocked()
	c.mu.Unlock()
	c.notifyChange()
}

// SetThumbnailSize changes the square thumbnail edge, clamped to the
// allowed range.
func (c *Controller) SetThumbnailSize(size int) {
	c.mu.Lock()
	size = types.ClampThumbnailSize(size)
	c.state.Width = size
	c.state.Height = size
	c.rebuildLocked()
	c.mu.Unlock()
	c.notifyChange()
}

// ToggleFilter flips one filter flag. Unknown flags are rejected.
func (c *Controller) ToggleFilter(flag types.Filter) error {
	if _, ok := types.LookupFilter(flag); !ok {
		return errors.NewInvalidInputError("unknown filter", nil).WithContext("filter", string(flag))
	}

	c.mu.Lock()
	c.state.Filters[flag] = !c.state.Filters[flag]
	log.LogWithFields(log.F("filter", flag), log.F("active", c.state.Filters[flag])).Debug("Filter toggled")
	c.rebuildLocked()
	c.mu.Unlock()
	c.notifyChange()
	return nil
}

// Reset restores the default column count and thumbnail size.
func (c *Controller) Reset() {
	def := types.DefaultViewState()

	c.mu.Lock()
	c.state.Columns = def.Columns
	c.state.Width = def.Width
	c.state.Height = def.Height
	c.rebuildLocked()
	c.mu.Unlock()
	c.notifyChange()
}

// TogglePanel shows or hides the settings panel.
func (c *Controller) TogglePanel() {
	c.mu.Lock()
	c.state.PanelVisible = !c.state.PanelVisible
	c.mu.Unlock()
	c.notifyChange()
}

// Refresh rebuilds the grid with the unchanged state.
func (c *Controller) Refresh() {
	c.mu.Lock()
	c.rebuildLocked()
	c.mu.Unlock()
	c.notifyChange()
}

// RequestRescan downloads missing previews and rebuilds the grid. It blocks
// until both are done. When the download fails the previous grid is kept
// and the error is returned. A second call while one is running fails with
// a Busy error.
func (c *Controller) RequestRescan(ctx context.Context) error {
	c.mu.Lock()
	if c.rescanning {
		c.mu.Unlock()
		return errors.ErrBusy
	}
	c.rescanning = true
	downloader, source, dest := c.downloader, c.source, c.dest
	c.mu.Unlock()
	c.notifyChange()

	defer func() {
		c.mu.Lock()
		c.rescanning = false
		c.mu.Unlock()
		c.notifyChange()
	}()

	c.setStatus(StatusRescanning)

	if downloader != nil {
		if err := downloader.Download(ctx, source, dest, c.setStatus); err != nil {
			if !errors.IsDownloadError(err) {
				err = errors.NewDownloadError("rescan failed", "", err)
			}
			log.LogWithError(err).Error("Rescan failed")
			c.setStatus("Rescan failed: " + err.Error())
			return err
		}
	}

	c.Refresh()
	return nil
}

// Select marks the entry of cell as the current map.
func (c *Controller) Select(cell types.Cell) {
	c.mu.Lock()
	c.selected = cell.Entry.Path
	c.mu.Unlock()
	c.setStatus("Map: " + cell.Entry.Name)
	c.notifyChange()
}

// ToggleLike flips the liked flag of the selected map.
func (c *Controller) ToggleLike() error {
	c.mu.Lock()
	entry, ok := c.selectedEntry()
	if !ok {
		c.mu.Unlock()
		return errors.NewInvalidInputError("no map selected", nil)
	}
	liked, err := c.likes.Toggle(entry.Path)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.rebuildLocked()
	c.mu.Unlock()

	if liked {
		c.setStatus("Liked " + entry.Name)
	} else {
		c.setStatus("Unliked " + entry.Name)
	}
	c.notifyChange()
	return nil
}

// Play launches the selected map. Launching the game itself is not
// supported yet; the request is reported and logged.
func (c *Controller) Play() error {
	entry, ok := c.Selected()
	if !ok {
		return errors.NewInvalidInputError("no map selected", nil)
	}
	msg := fmt.Sprintf("Starting map: %s", entry.Name)
	log.LogWithFields(log.F("path", entry.Path)).Info(msg)
	c.setStatus(msg)
	return nil
}

// Scroll moves the viewport by a normalized step.
func (c *Controller) Scroll(step input.Step) {
	c.mu.Lock()
	moved := c.viewport.Scroll(step)
	c.mu.Unlock()
	if moved {
		c.notifyChange()
	}
}

// SetVisible records the size of the visible window.
func (c *Controller) SetVisible(size types.Size) {
	c.mu.Lock()
	c.viewport.SetVisible(size)
	c.mu.Unlock()
}

// SetOffset records an offset changed by the front end itself, such as a
// dragged scrollbar.
func (c *Controller) SetOffset(p types.Point) {
	c.mu.Lock()
	c.viewport.Offset = p
	c.viewport.clamp()
	c.mu.Unlock()
}

func (c *Controller) rebuildLocked() {
	c.grid = c.renderer.Rebuild(c.folders, c.state)
	c.viewport.SetExtent(c.grid.Bounds)
	if _, ok := c.selectedEntry(); !ok {
		c.selected = ""
	}
}

func (c *Controller) selectedEntry() (types.ImageEntry, bool) {
	if c.selected == "" || c.grid == nil {
		return types.ImageEntry{}, false
	}
	for _, cell := range c.grid.Cells {
		if cell.Entry.Path == c.selected {
			return cell.Entry, true
		}
	}
	return types.ImageEntry{}, false
}

func (c *Controller) snapshot() Snapshot {
	s := Snapshot{
		State:      c.state.Clone(),
		Grid:       c.grid,
		Viewport:   c.viewport,
		Status:     c.status,
		Rescanning: c.rescanning,
	}
	if e, ok := c.selectedEntry(); ok {
		s.Selected = &e
	}
	return s
}

func (c *Controller) setStatus(msg string) {
	c.mu.Lock()
	c.status = msg
	listeners := slices.Clone(c.statusListeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(msg)
	}
}

func (c *Controller) notifyChange() {
	c.mu.Lock()
	snap := c.snapshot()
	listeners := slices.Clone(c.changeListeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
