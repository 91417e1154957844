package gallery

import (
	"mapgallery/internal/config"
	"mapgallery/internal/log"
	"mapgallery/pkg/types"
)

// LikeSource reports which image paths are liked.
type LikeSource interface {
	Liked() (map[string]bool, error)
}

// Result is one rebuilt grid.
type Result struct {
	Cells    []types.Cell
	Columns  int
	Size     int
	Bounds   types.Size
	Warnings []error
}

// Len returns the number of cells
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Cells)
}

// Rows returns the number of grid rows
func (r *Result) Rows() int {
	if r == nil {
		return 0
	}
	return Rows(len(r.Cells), r.Columns)
}

// Renderer scans image folders and lays the found images out on a grid.
type Renderer struct {
	matcher      *Matcher
	likes        LikeSource
	spacing      Spacing
	applyFilters bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLikes sets the source of liked flags.
func WithLikes(src LikeSource) Option {
	return func(r *Renderer) { r.likes = src }
}

// WithSpacing sets the per-side thumbnail padding.
func WithSpacing(sp Spacing) Option {
	return func(r *Renderer) { r.spacing = sp }
}

// WithFilters makes Rebuild apply the active filter flags.
func WithFilters(enabled bool) Option {
	return func(r *Renderer) { r.applyFilters = enabled }
}

// NewRenderer creates a renderer recognizing files that match pattern.
func NewRenderer(pattern string, opts ...Option) (*Renderer, error) {
	m, err := NewMatcher(pattern)
	if err != nil {
		return nil, err
	}
	r := &Renderer{matcher: m}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewRendererFromConfig builds a renderer from the gallery and view sections.
func NewRendererFromConfig(cfg *config.Config, likes LikeSource) (*Renderer, error) {
	return NewRenderer(cfg.Gallery.Extensions,
		WithLikes(likes),
		WithSpacing(Spacing{X: cfg.View.SpacingX, Y: cfg.View.SpacingY}),
		WithFilters(cfg.Gallery.ApplyFilters),
	)
}

// Spacing returns the configured thumbnail padding
func (r *Renderer) Spacing() Spacing {
	return r.spacing
}

// Rebuild scans folders in order and produces a fresh grid for state.
// Folder problems are collected as warnings and never abort the rebuild.
func (r *Renderer) Rebuild(folders []string, state types.ViewState) *Result {
	res := &Result{
		Columns: types.ClampColumns(state.Columns),
		Size:    types.ClampThumbnailSize(state.Width),
	}

	var entries []types.ImageEntry
	for _, folder := range folders {
		found, warnings := ScanFolder(folder, r.matcher)
		for _, w := range warnings {
			log.LogWithError(w).Warn("Skipping folder content")
		}
		res.Warnings = append(res.Warnings, warnings...)
		entries = append(entries, found...)
	}

	if r.likes != nil {
		liked, err := r.likes.Liked()
		if err != nil {
			log.LogWithError(err).Warn("Could not load liked maps")
			res.Warnings = append(res.Warnings, err)
		}
		for i := range entries {
			entries[i].Liked = liked[entries[i].Path]
		}
	}

	if r.applyFilters {
		entries = ApplyFilters(entries, state.Filters)
	}

	res.Cells = Layout(entries, res.Columns)
	res.Bounds = Bounds(len(res.Cells), res.Columns, res.Size, r.spacing)

	log.LogWithFields(
		log.F("folders", len(folders)),
		log.F("images", len(res.Cells)),
		log.F("columns", res.Columns),
		log.F("size", res.Size),
	).Debug("Gallery rebuilt")
	return res
}
