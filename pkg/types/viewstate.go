package types

// View parameter bounds and reset defaults
const (
	MinColumns = 1
	MaxColumns = 10

	MinThumbnailSize = 100
	MaxThumbnailSize = 1000

	DefaultColumns       = 1
	DefaultThumbnailSize = 300
)

// ViewState holds every user adjustable display parameter.
type ViewState struct {
	Columns      int     // Grid columns, 1..10
	Width        int     // Thumbnail width, always equal to Height
	Height       int     // Thumbnail height
	Filters      Filters // Active filter and sort flags
	PanelVisible bool    // Whether the settings panel is shown
}

// DefaultViewState returns the state Reset returns to.
func DefaultViewState() ViewState {
	return ViewState{
		Columns:      DefaultColumns,
		Width:        DefaultThumbnailSize,
		Height:       DefaultThumbnailSize,
		Filters:      Filters{},
		PanelVisible: true,
	}
}

// Clone returns a copy that shares no maps with the receiver
func (v ViewState) Clone() ViewState {
	out := v
	out.Filters = v.Filters.Clone()
	return out
}

// ClampColumns bounds n to the supported column range.
func ClampColumns(n int) int {
	return clamp(n, MinColumns, MaxColumns)
}

// ClampThumbnailSize bounds s to the supported thumbnail range.
func ClampThumbnailSize(s int) int {
	return clamp(s, MinThumbnailSize, MaxThumbnailSize)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
