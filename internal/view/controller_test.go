package view

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/internal/input"
	"mapgallery/internal/store"
	"mapgallery/pkg/testutils"
	"mapgallery/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer lays out a fixed number of entries and records every call.
type fakeRenderer struct {
	mu    sync.Mutex
	n     int
	calls []types.ViewState
	likes store.Likes
}

func (f *fakeRenderer) Rebuild(folders []string, state types.ViewState) *gallery.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, state.Clone())

	entries := make([]types.ImageEntry, f.n)
	for i := range entries {
		path := fmt.Sprintf("/maps/m%d.png", i)
		entries[i] = types.ImageEntry{Path: path, Name: fmt.Sprintf("Map %d", i)}
		if f.likes != nil {
			entries[i].Liked, _ = f.likes.IsLiked(path)
		}
	}
	cells := gallery.Layout(entries, state.Columns)
	return &gallery.Result{
		Cells:   cells,
		Columns: state.Columns,
		Size:    state.Width,
		Bounds:  gallery.Bounds(len(cells), state.Columns, state.Width, gallery.Spacing{}),
	}
}

func (f *fakeRenderer) rebuilds() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeDownloader struct {
	fn func(ctx context.Context, progress func(string)) error
}

func (f *fakeDownloader) Download(ctx context.Context, src, dst string, progress func(string)) error {
	return f.fn(ctx, progress)
}

func newTestController(n int, opts ...Option) (*Controller, *fakeRenderer) {
	r := &fakeRenderer{n: n}
	c := NewController(r, opts...)
	c.Refresh()
	return c, r
}

func TestNewControllerDefaults(t *testing.T) {
	c := NewController(&fakeRenderer{}, WithState(types.ViewState{Columns: 40, Width: 10, Height: 700}))

	s := c.State()
	assert.Equal(t, types.MaxColumns, s.Columns)
	assert.Equal(t, types.MinThumbnailSize, s.Width)
	assert.Equal(t, s.Width, s.Height)
	assert.NotNil(t, s.Filters)
	assert.Equal(t, StatusReady, c.Status())
	assert.Equal(t, 0, c.Grid().Len())
}

func TestSetColumns(t *testing.T) {
	c, r := newTestController(5)

	c.SetColumns(2)
	assert.Equal(t, 2, c.State().Columns)
	assert.Equal(t, 2, r.rebuilds())

	last := c.Grid().Cells[4]
	assert.Equal(t, 2, last.Row)
	assert.Equal(t, 0, last.Col)

	c.SetColumns(0)
	assert.Equal(t, types.MinColumns, c.State().Columns)
	c.SetColumns(11)
	assert.Equal(t, types.MaxColumns, c.State().Columns)
}

func TestSetThumbnailSize(t *testing.T) {
	c, _ := newTestController(3)

	c.SetThumbnailSize(250)
	s := c.State()
	assert.Equal(t, 250, s.Width)
	assert.Equal(t, 250, s.Height)
	assert.Equal(t, types.Size{W: 250, H: 750}, c.Grid().Bounds)
	assert.Equal(t, c.Grid().Bounds, c.Viewport().Extent)

	c.SetThumbnailSize(5000)
	assert.Equal(t, types.MaxThumbnailSize, c.State().Width)
	c.SetThumbnailSize(-1)
	assert.Equal(t, types.MinThumbnailSize, c.State().Height)
}

func TestReset(t *testing.T) {
	c, _ := newTestController(2, WithState(types.ViewState{Columns: 4, Width: 200, Height: 200}))
	require.NoError(t, c.ToggleFilter(types.FilterLiked))

	var got []Snapshot
	c.OnChange(func(s Snapshot) { got = append(got, s) })

	c.Reset()
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].State.Columns)
	assert.Equal(t, 300, got[0].State.Width)
	assert.Equal(t, 300, got[0].State.Height)
	assert.True(t, got[0].State.Filters.Active(types.FilterLiked))
	assert.Equal(t, 2, got[0].Grid.Len())
}

func TestToggleFilter(t *testing.T) {
	c, r := newTestController(1)

	require.NoError(t, c.ToggleFilter(types.FilterNameAscending))
	assert.True(t, c.State().Filters.Active(types.FilterNameAscending))
	assert.True(t, r.calls[len(r.calls)-1].Filters.Active(types.FilterNameAscending))

	require.NoError(t, c.ToggleFilter(types.FilterNameAscending))
	assert.False(t, c.State().Filters.Active(types.FilterNameAscending))

	before := r.rebuilds()
	err := c.ToggleFilter("bogus")
	assert.True(t, errors.IsInvalidInputError(err))
	assert.Equal(t, before, r.rebuilds())
}

func TestTogglePanel(t *testing.T) {
	c, r := newTestController(1)
	assert.True(t, c.State().PanelVisible)

	before := r.rebuilds()
	c.TogglePanel()
	assert.False(t, c.State().PanelVisible)
	assert.Equal(t, before, r.rebuilds())
}

func TestStateIsACopy(t *testing.T) {
	c, _ := newTestController(1)
	s := c.State()
	s.Filters[types.FilterLiked] = true
	s.Columns = 9
	assert.False(t, c.State().Filters.Active(types.FilterLiked))
	assert.NotEqual(t, 9, c.State().Columns)
}

func TestRequestRescan(t *testing.T) {
	var statuses []string
	dl := &fakeDownloader{fn: func(ctx context.Context, progress func(string)) error {
		progress("Downloading 1/1: Isle")
		return nil
	}}
	c, r := newTestController(2, WithDownloader(dl, "src", "dst"))
	c.OnStatus(func(s string) { statuses = append(statuses, s) })

	before := r.rebuilds()
	require.NoError(t, c.RequestRescan(context.Background()))
	assert.Equal(t, before+1, r.rebuilds())
	assert.Equal(t, []string{StatusRescanning, "Downloading 1/1: Isle"}, statuses)
	assert.False(t, c.Rescanning())
}

func TestRequestRescanFailureKeepsGrid(t *testing.T) {
	dl := &fakeDownloader{fn: func(ctx context.Context, progress func(string)) error {
		return errors.NewDownloadError("unexpected status 500", "http://x/a.png", nil)
	}}
	c, r := newTestController(3, WithDownloader(dl, "src", "dst"))
	grid := c.Grid()

	before := r.rebuilds()
	err := c.RequestRescan(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.DownloadFailed))
	assert.Same(t, grid, c.Grid())
	assert.Equal(t, before, r.rebuilds())
	assert.Contains(t, c.Status(), "Rescan failed")
	assert.False(t, c.Rescanning())
}

func TestRequestRescanWrapsPlainErrors(t *testing.T) {
	dl := &fakeDownloader{fn: func(ctx context.Context, progress func(string)) error {
		return context.Canceled
	}}
	c, _ := newTestController(0, WithDownloader(dl, "src", "dst"))

	err := c.RequestRescan(context.Background())
	assert.True(t, errors.IsDownloadError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRequestRescanBusy(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	dl := &fakeDownloader{fn: func(ctx context.Context, progress func(string)) error {
		close(entered)
		<-release
		return nil
	}}
	c, _ := newTestController(1, WithDownloader(dl, "src", "dst"))

	done := make(chan error)
	go func() { done <- c.RequestRescan(context.Background()) }()
	<-entered

	assert.True(t, c.Rescanning())
	err := c.RequestRescan(context.Background())
	assert.True(t, errors.IsBusy(err))

	close(release)
	assert.NoError(t, <-done)
	assert.False(t, c.Rescanning())
}

func TestRequestRescanPublishesRescanning(t *testing.T) {
	var seen []bool
	dl := &fakeDownloader{fn: func(ctx context.Context, progress func(string)) error {
		return nil
	}}
	c, _ := newTestController(1, WithDownloader(dl, "src", "dst"))
	c.OnChange(func(s Snapshot) { seen = append(seen, s.Rescanning) })

	require.NoError(t, c.RequestRescan(context.Background()))
	require.GreaterOrEqual(t, len(seen), 2)
	assert.True(t, seen[0])
	assert.False(t, seen[len(seen)-1])
	assert.False(t, c.Snapshot().Rescanning)
}

func TestRequestRescanWithoutDownloader(t *testing.T) {
	c, r := newTestController(1)
	before := r.rebuilds()
	require.NoError(t, c.RequestRescan(context.Background()))
	assert.Equal(t, before+1, r.rebuilds())
}

func TestSelectLikeAndPlay(t *testing.T) {
	likes := store.NewMemory()
	r := &fakeRenderer{n: 3, likes: likes}
	c := NewController(r, WithLikes(likes))
	c.Refresh()

	assert.True(t, errors.IsInvalidInputError(c.ToggleLike()))
	assert.True(t, errors.IsInvalidInputError(c.Play()))

	c.Select(c.Grid().Cells[1])
	assert.Equal(t, "Map: Map 1", c.Status())
	sel, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "/maps/m1.png", sel.Path)

	require.NoError(t, c.ToggleLike())
	assert.True(t, c.Grid().Cells[1].Entry.Liked)
	liked, _ := likes.IsLiked("/maps/m1.png")
	assert.True(t, liked)

	snap := c.Snapshot()
	require.NotNil(t, snap.Selected)
	assert.True(t, snap.Selected.Liked)

	require.NoError(t, c.ToggleLike())
	assert.False(t, c.Grid().Cells[1].Entry.Liked)

	require.NoError(t, c.Play())
	assert.Equal(t, "Starting map: Map 1", c.Status())
}

func TestSelectionDroppedWhenEntryDisappears(t *testing.T) {
	c, r := newTestController(3)
	c.Select(c.Grid().Cells[2])

	r.mu.Lock()
	r.n = 1
	r.mu.Unlock()
	c.Refresh()

	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestScroll(t *testing.T) {
	c, _ := newTestController(10, WithScrollUnit(50), WithState(types.ViewState{Columns: 1, Width: 100}))
	c.SetVisible(types.Size{W: 100, H: 200})

	changes := 0
	c.OnChange(func(Snapshot) { changes++ })

	c.Scroll(input.Step{Axis: input.Vertical, Units: 2})
	assert.Equal(t, 100, c.Viewport().Offset.Y)
	c.Scroll(input.Step{Axis: input.Vertical, Units: -5})
	assert.Equal(t, 0, c.Viewport().Offset.Y)
	c.Scroll(input.Step{Axis: input.Vertical, Units: -1})
	assert.Equal(t, 2, changes)

	c.SetOffset(types.Point{Y: 5000})
	assert.Equal(t, 800, c.Viewport().Offset.Y)

	// shrinking the grid pulls the offset back inside the new extent
	c.SetColumns(5)
	assert.Equal(t, 0, c.Viewport().Offset.Y)
}

func TestListenersMayReadState(t *testing.T) {
	c, _ := newTestController(1)
	var cols int
	c.OnChange(func(Snapshot) { cols = c.State().Columns })
	c.OnStatus(func(string) { _ = c.Status() })

	c.SetColumns(3)
	c.Select(c.Grid().Cells[0])
	assert.Equal(t, 3, cols)
}

func TestControllerWithGalleryRenderer(t *testing.T) {
	dir := testutils.CreateGalleryFolder(t, "Alpha_map_auto.png", "Beta.png", "Gamma.png")
	r, err := gallery.NewRenderer("*.png", gallery.WithSpacing(gallery.Spacing{X: 5, Y: 5}))
	require.NoError(t, err)

	c := NewController(r, WithFolders(dir), WithState(types.ViewState{Columns: 2, Width: 100, Height: 100}))
	c.Refresh()

	grid := c.Grid()
	require.Equal(t, 3, grid.Len())
	assert.Equal(t, "Alpha", grid.Cells[0].Entry.Name)
	assert.Equal(t, types.Size{W: 220, H: 220}, c.Viewport().Extent)
	assert.Equal(t, []string{dir}, c.Folders())
}
