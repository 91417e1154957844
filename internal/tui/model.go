// Package tui is a terminal front end for the map gallery.
package tui

import (
	"context"

	"mapgallery/internal/view"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Size step of the ] and [ keys
const sizeStep = 100

// rescanDoneMsg reports the end of a rescan started with the r key.
type rescanDoneMsg struct {
	err error
}

// RefreshMsg asks the model to rebuild the grid, sent by the folder watcher.
type RefreshMsg struct{}

// Model is the Bubble Tea model of the gallery browser.
type Model struct {
	ctrl *view.Controller
	keys KeyMap
	help help.Model

	spinner    spinner.Model
	rescanning bool
	err        error

	cursor int
	top    int
	width  int
	height int
}

// New creates a model driving ctrl
func New(ctrl *view.Controller) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StatusStyle

	return &Model{
		ctrl:    ctrl,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: s,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg { return RefreshMsg{} }
}

// Cursor returns the index of the highlighted cell
func (m *Model) Cursor() int {
	return m.cursor
}

// Err returns the error of the last failed action
func (m *Model) Err() error {
	return m.err
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.follow()
		return m, nil

	case RefreshMsg:
		m.ctrl.Refresh()
		m.clampCursor()
		return m, nil

	case rescanDoneMsg:
		m.rescanning = false
		m.err = msg.err
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		if !m.rescanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.rescanning {
		// input is blocked until the rescan finishes
		return m, nil
	}

	cols := m.ctrl.State().Columns
	switch {
	case key.Matches(msg, m.keys.Up):
		m.move(-cols)
	case key.Matches(msg, m.keys.Down):
		m.move(cols)
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)

	case key.Matches(msg, m.keys.MoreColumns):
		m.ctrl.SetColumns(cols + 1)
	case key.Matches(msg, m.keys.FewerColumns):
		m.ctrl.SetColumns(cols - 1)
	case key.Matches(msg, m.keys.Bigger):
		m.ctrl.SetThumbnailSize(m.ctrl.State().Width + sizeStep)
	case key.Matches(msg, m.keys.Smaller):
		m.ctrl.SetThumbnailSize(m.ctrl.State().Width - sizeStep)
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.TogglePanel):
		m.ctrl.TogglePanel()

	case key.Matches(msg, m.keys.Rescan):
		m.rescanning = true
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, m.rescanCmd())
	case key.Matches(msg, m.keys.Like):
		m.err = m.ctrl.ToggleLike()
	case key.Matches(msg, m.keys.Play):
		m.err = m.ctrl.Play()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursor()
	m.follow()
	return m, nil
}

func (m *Model) rescanCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return rescanDoneMsg{err: ctrl.RequestRescan(context.Background())}
	}
}

// move shifts the cursor and selects the map under it.
func (m *Model) move(delta int) {
	grid := m.ctrl.Grid()
	n := grid.Len()
	if n == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= n {
		return
	}
	m.cursor = next
	m.ctrl.Select(grid.Cells[next])
}

func (m *Model) clampCursor() {
	n := m.ctrl.Grid().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// follow keeps the cursor row inside the visible rows.
func (m *Model) follow() {
	cols := m.ctrl.State().Columns
	row := m.cursor / cols
	rows := m.gridRows()
	if row < m.top {
		m.top = row
	}
	if row >= m.top+rows {
		m.top = row - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

// gridRows is the number of grid rows that fit the terminal.
func (m *Model) gridRows() int {
	chrome := 6
	if m.ctrl.State().PanelVisible {
		chrome += 5
	}
	return max(1, m.height-chrome)
}
