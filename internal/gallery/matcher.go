package gallery

import (
	"strings"

	"mapgallery/internal/errors"

	"github.com/gobwas/glob"
)

// Matcher decides which file names are gallery images.
type Matcher struct {
	pattern string
	g       glob.Glob
}

// NewMatcher compiles a file name glob such as "*.{png,jpg}". Matching is
// case-insensitive.
func NewMatcher(pattern string) (*Matcher, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, errors.NewConfigError("invalid image pattern", pattern, errors.InvalidConfig, err)
	}
	return &Matcher{pattern: pattern, g: g}, nil
}

// Match reports whether name is a recognized image file name.
func (m *Matcher) Match(name string) bool {
	return m.g.Match(strings.ToLower(name))
}

// Pattern returns the source glob
func (m *Matcher) Pattern() string {
	return m.pattern
}
