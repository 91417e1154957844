package main

import (
	"fmt"

	"mapgallery/internal/download"

	"github.com/spf13/cobra"
)

// NewDownloadCmd creates the command fetching previews listed in a manifest
func NewDownloadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "download <source> <dest>",
		Short: "Download map previews",
		Long:  `Read the manifest in the source folder and download every missing preview image into dest.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := download.NewServiceFromConfig(opts.cfg)
			out := cmd.OutOrStdout()

			err := svc.Download(cmd.Context(), args[0], args[1], func(line string) {
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out, successText("Done"))
			return nil
		},
	}
}
