package gui

import (
	"mapgallery/internal/config"
	"mapgallery/internal/view"
)

// Interface defines the contract for GUI operations
type Interface interface {
	Run()
	ShowError(title string, err error)
	ShowInfo(message string)
}

// Factory creates GUI instances
type Factory struct {
	config     *config.Config
	controller *view.Controller
}

// NewFactory creates a new GUI factory
func NewFactory(cfg *config.Config, ctrl *view.Controller) *Factory {
	return &Factory{
		config:     cfg,
		controller: ctrl,
	}
}
