package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mapgallery/internal/config"
	"mapgallery/internal/download"
	"mapgallery/internal/errors"
	"mapgallery/internal/gallery"
	"mapgallery/internal/log"
	"mapgallery/internal/store"
	"mapgallery/internal/view"
	"mapgallery/pkg/types"

	"github.com/spf13/cobra"
)

// options holds the persistent flags and the configuration they resolve to.
type options struct {
	cfgFile string
	debug   bool
	jsonLog bool
	logFile string
	cfg     *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "mapgallery",
		Short:   "Browse map preview images",
		Long:    `Mapgallery shows map preview images as a thumbnail grid with filters, likes and preview downloads.`,
		Version: version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.setupLogging()
			opts.loadConfig(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts, nil)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is <user config dir>/mapgallery/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also append logs to this file (the tui logs only there, default <user config dir>/mapgallery/tui.log)")

	// Add subcommands
	rootCmd.AddCommand(NewGUICmd(opts))
	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewScanCmd(opts))
	rootCmd.AddCommand(NewDownloadCmd(opts))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func (o *options) setupLogging() {
	var logOpts []log.Option
	if o.jsonLog {
		logOpts = append(logOpts, log.WithJSON())
	}
	if o.logFile != "" {
		logOpts = append(logOpts, log.WithFile(o.logFile))
	}
	if len(logOpts) > 0 {
		log.Configure(logOpts...)
	}
	log.SetDebug(o.debug)
}

// logToFile sends log lines to a file only. Front ends that draw on the
// terminal use it so log output does not land on top of their screen.
func (o *options) logToFile() (string, error) {
	path := o.logFile
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			dir = os.TempDir()
		}
		path = filepath.Join(dir, "tui.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.NewFileError("cannot create log directory", filepath.Dir(path), errors.FileCreateFailed, err)
	}

	logOpts := []log.Option{log.WithOutput(io.Discard), log.WithFile(path)}
	if o.jsonLog {
		logOpts = append(logOpts, log.WithJSON())
	}
	log.Configure(logOpts...)
	return path, nil
}

// loadConfig resolves the configuration, falling back to defaults with a
// warning when the file cannot be used.
func (o *options) loadConfig(cmd *cobra.Command) {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}

	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warnText(fmt.Sprintf("Warning: %v", err)))
		fmt.Fprintln(cmd.ErrOrStderr(), "Using default settings.")
		o.cfg = config.New()
	}
	log.Debugf("Configuration loaded, folders: %v", o.cfg.GalleryFolders())
}

// session wires the gallery, the likes store and the downloader behind one
// controller shared by every front end.
type session struct {
	ctrl  *view.Controller
	likes store.Likes
}

func newSession(cfg *config.Config, folders []string) (*session, error) {
	likes := store.OpenOrMemory(cfg.Store.Path)

	renderer, err := gallery.NewRendererFromConfig(cfg, likes)
	if err != nil {
		likes.Close()
		return nil, err
	}

	if len(folders) == 0 {
		folders = cfg.GalleryFolders()
	}

	ctrl := view.NewController(renderer,
		view.WithFolders(folders...),
		view.WithDownloader(download.NewServiceFromConfig(cfg), cfg.Folders.Source, cfg.Folders.Dest),
		view.WithLikes(likes),
		view.WithState(initialState(cfg)),
		view.WithScrollUnit(cfg.View.ScrollUnit),
	)

	return &session{ctrl: ctrl, likes: likes}, nil
}

func (s *session) Close() {
	if err := s.likes.Close(); err != nil {
		log.LogWithError(err).Warn("Failed to close likes store")
	}
}

// initialState is the view state a session starts in. It differs from the
// Reset defaults.
func initialState(cfg *config.Config) types.ViewState {
	return types.ViewState{
		Columns:      cfg.View.Columns,
		Width:        cfg.View.Size,
		Height:       cfg.View.Size,
		Filters:      types.Filters{},
		PanelVisible: true,
	}
}
