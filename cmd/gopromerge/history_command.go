package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dallagrana/gopromerge/internal/display"
	"github.com/dallagrana/gopromerge/internal/history"
)

// newHistoryCommand builds the `history` subcommand: list recent merge runs
// from the journal.
func newHistoryCommand(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent merge runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.historyPath
			if path == "" {
				path = defaultHistoryPath()
			}
			if path == "" || path == "none" {
				return errors.New("merge history is disabled")
			}

			store, err := history.Open(path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No merge runs recorded yet.")
				return nil
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"When", "Output", "Codec", "Segments", "In", "Out", "Took"})
			for _, run := range runs {
				tw.AppendRow(table.Row{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.OutputPath,
					run.Codec,
					run.Segments,
					display.FormatSize(run.InputBytes),
					display.FormatSize(run.OutputBytes),
					display.FormatDuration(run.Elapsed),
				})
			}
			tw.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}
