package main

import (
	"mapgallery/internal/errors"
	"mapgallery/internal/gui"

	"github.com/spf13/cobra"
)

// runGUI opens the gallery window and blocks until it is closed
func runGUI(opts *options, folders []string) error {
	if !gui.IsGUIAvailable() {
		return errors.New("GUI not available in this build, use the tui command")
	}

	sess, err := newSession(opts.cfg, folders)
	if err != nil {
		return err
	}
	defer sess.Close()

	app, err := gui.NewFactory(opts.cfg, sess.ctrl).Create()
	if err != nil {
		return errors.Wrap(err, "error launching GUI")
	}
	app.Run()
	return nil
}

// NewGUICmd creates the GUI command for the CLI
func NewGUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui [folder...]",
		Short: "Launch the graphical gallery",
		Long:  `Open the gallery window. Folders given as arguments replace the configured ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(opts, args)
		},
	}
}
