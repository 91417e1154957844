//go:build !nogui

package gui

// Create returns a new GUI instance
func (f *Factory) Create() (Interface, error) {
	return NewApp(f.config, f.controller), nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
