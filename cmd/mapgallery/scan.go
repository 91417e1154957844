package main

import (
	"fmt"
	"strings"

	"mapgallery/internal/errors"

	"github.com/spf13/cobra"
)

// NewScanCmd creates the command printing the gallery grid as text
func NewScanCmd(opts *options) *cobra.Command {
	var columns int

	cmd := &cobra.Command{
		Use:   "scan [folder...]",
		Short: "Print the gallery grid",
		Long:  `Scan the gallery folders and print one line per grid row with the map names of that row.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(opts.cfg, args)
			if err != nil {
				return err
			}
			defer sess.Close()

			if cmd.Flags().Changed("columns") {
				if columns <= 0 {
					return errors.NewInvalidInputError("columns must be positive", nil).WithContext("columns", columns)
				}
				sess.ctrl.SetColumns(columns)
			} else {
				sess.ctrl.Refresh()
			}

			res := sess.ctrl.Grid()
			out := cmd.OutOrStdout()

			for _, w := range res.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), warnText(w.Error()))
			}

			rows := make([][]string, res.Rows())
			for _, cell := range res.Cells {
				name := cell.Entry.Name
				if cell.Entry.Liked {
					name += " *"
				}
				rows[cell.Row] = append(rows[cell.Row], name)
			}
			for _, row := range rows {
				fmt.Fprintln(out, strings.Join(row, " | "))
			}

			fmt.Fprintln(out, headerText(fmt.Sprintf("%d maps in %d columns", res.Len(), res.Columns)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&columns, "columns", "c", 0, "Number of grid columns (default from config)")

	return cmd
}
