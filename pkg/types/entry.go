package types

import (
	"fmt"
	"path/filepath"
)

// ImageEntry is one scanned preview image. Entries are rebuilt from disk on
// every gallery refresh and carry no identity across refreshes.
type ImageEntry struct {
	Path  string  `json:"path"`  // Absolute or folder-relative file path
	Name  string  `json:"name"`  // Human readable map name
	Liked bool    `json:"liked"` // Marked as liked in the likes store
	Meta  MapMeta `json:"meta"`  // Optional manifest metadata
}

// FileName returns the base name of the image file
func (e ImageEntry) FileName() string {
	return filepath.Base(e.Path)
}

// Cell is an entry placed on the gallery grid.
type Cell struct {
	Entry ImageEntry
	Row   int
	Col   int
}

// String returns a short representation used in logs and tests
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d) %s", c.Row, c.Col, c.Entry.Name)
}

// Size is a width/height pair in pixels.
type Size struct {
	W int
	H int
}

// Point is an x/y pair in pixels.
type Point struct {
	X int
	Y int
}
