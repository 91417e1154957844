package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mapgallery/internal/errors"
	"mapgallery/pkg/types"

	"gopkg.in/yaml.v3"
)

// AppName is used for the config and data directory names.
const AppName = "mapgallery"

// Config represents the application configuration structure.
type Config struct {
	Folders struct {
		Source string   `yaml:"source"` // Folder holding maps.yaml and bundled previews
		Dest   string   `yaml:"dest"`   // Folder downloaded previews are written to
		Extra  []string `yaml:"extra"`  // Additional folders shown in the gallery
	} `yaml:"folders"`
	Window struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"window"`
	View struct {
		Columns    int `yaml:"columns"`     // Initial column count
		Size       int `yaml:"size"`        // Initial thumbnail edge in pixels
		SpacingX   int `yaml:"spacing_x"`   // Horizontal padding around each thumbnail
		SpacingY   int `yaml:"spacing_y"`   // Vertical padding around each thumbnail
		ScrollUnit int `yaml:"scroll_unit"` // Pixels per scroll unit
	} `yaml:"view"`
	Gallery struct {
		Extensions   string `yaml:"extensions"`    // Glob of recognized image file names
		ApplyFilters bool   `yaml:"apply_filters"` // Apply filter flags during rebuild
	} `yaml:"gallery"`
	Download struct {
		Manifest  string        `yaml:"manifest"`   // Manifest file name inside the source folder
		Timeout   time.Duration `yaml:"timeout"`    // Per request timeout
		UserAgent string        `yaml:"user_agent"` // User-Agent header sent with requests
	} `yaml:"download"`
	Store struct {
		Path string `yaml:"path"` // SQLite database holding liked maps
	} `yaml:"store"`
	Watch struct {
		Enabled  bool          `yaml:"enabled"`  // Rebuild when image files change on disk
		Debounce time.Duration `yaml:"debounce"` // Quiet period before a rebuild
	} `yaml:"watch"`
}

// Dir returns the directory holding the configuration file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}

// DefaultPath returns the default location of config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (<user config dir>/mapgallery/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal over the defaults so unset keys keep their default value
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", path, errors.InvalidConfig, err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Folders.Source = filepath.Join("images", "source")
	cfg.Folders.Dest = filepath.Join("images", "downloaded")
	cfg.Folders.Extra = []string{}

	cfg.Window.Width = 1280
	cfg.Window.Height = 800

	// Initial layout intentionally differs from the Reset defaults (1 column, 300px)
	cfg.View.Columns = 4
	cfg.View.Size = 200
	cfg.View.SpacingX = 5
	cfg.View.SpacingY = 5
	cfg.View.ScrollUnit = 20

	cfg.Gallery.Extensions = "*.{png,jpg,jpeg,gif,bmp,webp}"
	cfg.Gallery.ApplyFilters = false

	cfg.Download.Manifest = types.ManifestFileName
	cfg.Download.Timeout = 30 * time.Second
	cfg.Download.UserAgent = AppName + "/1.0"

	if dir, err := Dir(); err == nil {
		cfg.Store.Path = filepath.Join(dir, "likes.db")
	} else {
		cfg.Store.Path = "likes.db"
	}

	cfg.Watch.Enabled = false
	cfg.Watch.Debounce = 500 * time.Millisecond

	return cfg
}

// New returns a configuration populated with defaults.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(c.Folders.Source) == "" && strings.TrimSpace(c.Folders.Dest) == "" && len(c.Folders.Extra) == 0 {
		return fmt.Errorf("at least one gallery folder is required")
	}
	for i, dir := range c.Folders.Extra {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("folders.extra %d: path cannot be empty", i)
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.View.Columns < types.MinColumns || c.View.Columns > types.MaxColumns {
		return fmt.Errorf("view.columns must be between %d and %d, got %d", types.MinColumns, types.MaxColumns, c.View.Columns)
	}
	if c.View.Size < types.MinThumbnailSize || c.View.Size > types.MaxThumbnailSize {
		return fmt.Errorf("view.size must be between %d and %d, got %d", types.MinThumbnailSize, types.MaxThumbnailSize, c.View.Size)
	}
	if c.View.SpacingX < 0 || c.View.SpacingY < 0 {
		return fmt.Errorf("view spacing must be >= 0")
	}
	if c.View.ScrollUnit <= 0 {
		return fmt.Errorf("view.scroll_unit must be > 0")
	}

	if strings.TrimSpace(c.Gallery.Extensions) == "" {
		return fmt.Errorf("gallery.extensions is required")
	}

	if strings.TrimSpace(c.Download.Manifest) == "" {
		return fmt.Errorf("download.manifest is required")
	}
	if c.Download.Timeout <= 0 {
		return fmt.Errorf("download.timeout must be > 0")
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0")
	}

	return nil
}

// GalleryFolders returns the folders shown in the gallery, in display order,
// skipping empty entries and duplicates.
func (c *Config) GalleryFolders() []string {
	seen := make(map[string]bool)
	var out []string
	for _, dir := range append([]string{c.Folders.Source, c.Folders.Dest}, c.Folders.Extra...) {
		dir = strings.TrimSpace(dir)
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

// NewTestConfig creates a configuration rooted at dir for tests.
func NewTestConfig(dir string) *Config {
	cfg := defaultConfig()
	cfg.Folders.Source = filepath.Join(dir, "source")
	cfg.Folders.Dest = filepath.Join(dir, "downloaded")
	cfg.Store.Path = filepath.Join(dir, "likes.db")
	cfg.Download.Timeout = 5 * time.Second
	cfg.Watch.Debounce = 50 * time.Millisecond
	return cfg
}
