//go:build nogui

package gui

import (
	"fmt"

	"mapgallery/internal/errors"
)

// Create is a stub implementation for builds with GUI disabled
func (f *Factory) Create() (Interface, error) {
	fmt.Println("GUI is disabled in this build. Please use the tui command.")
	return nil, errors.New("GUI not available in this build")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
