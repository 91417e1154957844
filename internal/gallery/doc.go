// Package gallery turns folders of map preview images into a positioned
// thumbnail grid. Every rebuild rescans the folders and recomputes the grid
// from scratch; nothing is carried over between rebuilds.
package gallery
