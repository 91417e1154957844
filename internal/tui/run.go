package tui

import (
	"mapgallery/internal/config"
	"mapgallery/internal/gallery"
	"mapgallery/internal/log"
	"mapgallery/internal/view"
	"mapgallery/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal interface and blocks until the user quits.
func Run(cfg *config.Config, ctrl *view.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())

	if cfg.Watch.Enabled {
		if m, err := gallery.NewMatcher(cfg.Gallery.Extensions); err == nil {
			w, err := watch.WatchFolders(ctrl.Folders(), m.Match, cfg.Watch.Debounce, func([]watch.Change) {
				p.Send(RefreshMsg{})
			})
			if err != nil {
				log.LogWithError(err).Warn("Folder watching disabled")
			} else {
				defer w.Stop()
			}
		}
	}

	_, err := p.Run()
	return err
}
