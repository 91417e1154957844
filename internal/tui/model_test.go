package tui

import (
	"context"
	"strings"
	"testing"

	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/internal/store"
	"mapgallery/internal/view"
	"mapgallery/pkg/testutils"
	"mapgallery/pkg/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDownloader struct {
	err error
}

func (s *stubDownloader) Download(ctx context.Context, src, dst string, progress func(string)) error {
	progress("Downloaded 0 new images (0 total)")
	return s.err
}

func newTestModel(t *testing.T, opts ...view.Option) *Model {
	t.Helper()
	dir := testutils.CreateGalleryFolder(t,
		"Alpha_map_auto.png", "Bravo.png", "Charlie.png", "Delta.png", "Echo.png")
	r, err := gallery.NewRenderer("*.png")
	require.NoError(t, err)

	likes := store.NewMemory()
	base := []view.Option{
		view.WithFolders(dir),
		view.WithLikes(likes),
		view.WithState(types.ViewState{Columns: 2, Width: 200, Height: 200, PanelVisible: true}),
	}
	ctrl := view.NewController(r, append(base, opts...)...)

	m := New(ctrl)
	m.Update(m.Init()())
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestInitLoadsGrid(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 5, m.ctrl.Grid().Len())

	out := testutils.StripANSI(m.View())
	assert.Contains(t, out, "Map Gallery  5 maps")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Columns: 2")
	assert.Contains(t, out, "Image size: 200x200")
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Cursor())
	sel, ok := m.ctrl.Selected()
	require.True(t, ok)
	assert.Equal(t, "Bravo", sel.Name)

	press(m, runes("j"))
	assert.Equal(t, 3, m.Cursor())
	press(m, runes("j"))
	assert.Equal(t, 3, m.Cursor(), "no cell below")

	press(m, tea.KeyMsg{Type: tea.KeyUp}, runes("h"))
	assert.Equal(t, 0, m.Cursor())
	press(m, runes("h"))
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, "Map: Alpha", m.ctrl.Status())
}

func TestViewSettingKeys(t *testing.T) {
	m := newTestModel(t)

	press(m, runes("+"))
	assert.Equal(t, 3, m.ctrl.State().Columns)
	press(m, runes("-"), runes("-"), runes("-"))
	assert.Equal(t, 1, m.ctrl.State().Columns)

	press(m, runes("]"))
	assert.Equal(t, 300, m.ctrl.State().Width)
	press(m, runes("["), runes("["), runes("["))
	assert.Equal(t, types.MinThumbnailSize, m.ctrl.State().Width)

	press(m, runes("+"), runes("0"))
	s := m.ctrl.State()
	assert.Equal(t, types.DefaultColumns, s.Columns)
	assert.Equal(t, types.DefaultThumbnailSize, s.Width)

	press(m, runes("p"))
	assert.False(t, m.ctrl.State().PanelVisible)
	assert.NotContains(t, testutils.StripANSI(m.View()), "Columns:")
}

func TestLikeAndPlay(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, errors.IsInvalidInputError(m.Err()))

	press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeySpace})
	require.NoError(t, m.Err())
	assert.True(t, m.ctrl.Grid().Cells[1].Entry.Liked)
	assert.Contains(t, m.View(), "♥")

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, m.Err())
	assert.Equal(t, "Starting map: Bravo", m.ctrl.Status())
}

func TestRescan(t *testing.T) {
	m := newTestModel(t, view.WithDownloader(&stubDownloader{}, "src", "dst"))

	_, cmd := m.Update(runes("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.rescanning)

	// keys other than quit are ignored while rescanning
	press(m, runes("+"))
	assert.Equal(t, 2, m.ctrl.State().Columns)

	press(m, m.rescanCmd()())
	assert.False(t, m.rescanning)
	assert.NoError(t, m.Err())
	assert.Equal(t, "Downloaded 0 new images (0 total)", m.ctrl.Status())
}

func TestRescanFailure(t *testing.T) {
	failure := errors.NewDownloadError("unexpected status 500", "http://example.org/a.png", nil)
	m := newTestModel(t, view.WithDownloader(&stubDownloader{err: failure}, "src", "dst"))

	press(m, runes("r"), m.rescanCmd()())
	assert.True(t, errors.IsDownloadError(m.Err()))
	assert.Equal(t, 5, m.ctrl.Grid().Len())
	assert.Contains(t, testutils.StripANSI(m.View()), "Error:")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestWindowSizeScrollsToCursor(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.WindowSizeMsg{Width: 60, Height: 12})
	assert.Equal(t, 1, m.gridRows())
	// the terminal scrolls by rows, the pixel viewport is left alone
	assert.Equal(t, types.Size{}, m.ctrl.Viewport().Visible)
	assert.Equal(t, types.Point{}, m.ctrl.Viewport().Offset)

	press(m, runes("j"), runes("j"))
	assert.Equal(t, 4, m.Cursor())
	assert.Equal(t, 2, m.top)

	out := testutils.StripANSI(m.View())
	assert.Contains(t, out, "Echo")
	assert.False(t, strings.Contains(out, "Alpha"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "…", truncate("abcdef", 1))
	assert.Equal(t, "", truncate("abc", 0))
}
