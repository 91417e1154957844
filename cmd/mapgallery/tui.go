package main

import (
	"mapgallery/internal/errors"
	"mapgallery/internal/log"
	"mapgallery/internal/tui"

	"github.com/spf13/cobra"
)

// NewTUICmd creates the terminal interface command
func NewTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [folder...]",
		Short: "Start the terminal gallery",
		Long:  `Browse the gallery in the terminal. Folders given as arguments replace the configured ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logPath, err := opts.logToFile()
			if err != nil {
				return err
			}
			defer log.Configure()

			sess, err := newSession(opts.cfg, args)
			if err != nil {
				return err
			}
			defer sess.Close()

			log.Infof("Terminal gallery started, logging to %s", logPath)
			if err := tui.Run(opts.cfg, sess.ctrl); err != nil {
				return errors.Wrap(err, "error running TUI")
			}
			return nil
		},
	}
}
