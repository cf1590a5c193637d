package cli

import (
	"github.com/bonntanname/figure-checker/internal/source"

	"github.com/spf13/cobra"
)

func newScanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the labelable images in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing, err := source.Scan(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": listing})
		},
	}
	return cmd
}
