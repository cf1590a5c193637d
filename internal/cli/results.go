package cli

import (
	"errors"
	"path/filepath"

	"github.com/bonntanname/figure-checker/internal/results"
	"github.com/bonntanname/figure-checker/internal/source"
	"github.com/bonntanname/figure-checker/internal/store"

	"github.com/spf13/cobra"
)

func newResultsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Results file and choice journal commands",
	}
	cmd.AddCommand(newResultsShowCmd(app))
	cmd.AddCommand(newResultsJournalCmd(app))
	return cmd
}

func newResultsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <dir>",
		Short: "Show the most recent results CSV for a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := source.Scan(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			path, ok := results.Latest(listing.Dir)
			if !ok {
				return writeErr(cmd, errors.New("no results file in "+listing.Dir))
			}
			choices, err := results.Load(path)
			if err != nil {
				return writeErr(cmd, err)
			}
			labeled := 0
			for _, img := range listing.Images {
				for _, c := range choices {
					if c.Image == img.Name {
						labeled++
						break
					}
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":    path,
				"choices": choices,
				"progress": map[string]int{
					"labeled": labeled,
					"total":   len(listing.Images),
				},
			}})
		},
	}
	return cmd
}

func newResultsJournalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal [dir]",
		Short: "List journaled choices (all directories unless one is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Default()
			if err != nil {
				return writeErr(cmd, err)
			}
			dir := ""
			if len(args) > 0 {
				// The journal keys directories the way Scan does: absolute.
				dir = filepath.Clean(args[0])
				if abs, err := filepath.Abs(dir); err == nil {
					dir = abs
				}
			}
			recs, err := st.ReadChoices(cmd.Context(), dir, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max records to return (0 = all)")
	return cmd
}
