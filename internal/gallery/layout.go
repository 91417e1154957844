package gallery

import "mapgallery/pkg/types"

// Layout places entries row by row: entry i goes to row i/columns, column
// i%columns. Column counts below one are treated as one.
func Layout(entries []types.ImageEntry, columns int) []types.Cell {
	if columns < 1 {
		columns = 1
	}
	cells := make([]types.Cell, len(entries))
	for i, e := range entries {
		cells[i] = types.Cell{Entry: e, Row: i / columns, Col: i % columns}
	}
	return cells
}

// Rows returns the number of rows n entries occupy in a grid of the given width.
func Rows(n, columns int) int {
	if n <= 0 {
		return 0
	}
	if columns < 1 {
		columns = 1
	}
	return (n + columns - 1) / columns
}

// Spacing is the padding placed on each side of a thumbnail.
type Spacing struct {
	X int
	Y int
}

// CellOrigin returns the top-left pixel of a thumbnail.
func CellOrigin(row, col, size int, sp Spacing) types.Point {
	return types.Point{
		X: col*(size+2*sp.X) + sp.X,
		Y: row*(size+2*sp.Y) + sp.Y,
	}
}

// Bounds returns the pixel size of a grid with n square thumbnails.
func Bounds(n, columns, size int, sp Spacing) types.Size {
	if n <= 0 {
		return types.Size{}
	}
	if columns < 1 {
		columns = 1
	}
	used := columns
	if n < columns {
		used = n
	}
	return types.Size{
		W: used * (size + 2*sp.X),
		H: Rows(n, columns) * (size + 2*sp.Y),
	}
}
