package cli

import (
	"time"

	"github.com/bonntanname/figure-checker/internal/model"
	"github.com/bonntanname/figure-checker/internal/results"
	"github.com/bonntanname/figure-checker/internal/source"
	"github.com/bonntanname/figure-checker/internal/store"

	"github.com/spf13/cobra"
)

func newLabelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label <dir> <image> <value>",
		Short: "Record one choice and update the directory's results CSV",
		Long: `Record one choice without the TUI: loads the most recent results CSV
(if any), upserts the choice, and saves to today's dated file.

Note this is a read-modify-write without locking; overlapping invocations
against the same directory can lose a choice.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, image, value := args[0], args[1], args[2]

			listing, err := source.Scan(dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			found := false
			for _, img := range listing.Images {
				if img.Name == image {
					found = true
					break
				}
			}
			if !found {
				return writeErr(cmd, errNotFound("image", image))
			}

			var prior []model.Choice
			if path, ok := results.Latest(listing.Dir); ok {
				prior, err = results.Load(path)
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			merged := results.Merge(prior, []model.Choice{{Image: image, Value: value}})
			path, err := results.Save(listing.Dir, merged, time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}

			// Journal append is best-effort; the CSV is the source of truth.
			if st, stErr := store.Default(); stErr == nil {
				_ = st.AppendChoice(cmd.Context(), model.ChoiceRecord{
					Directory: listing.Dir,
					Image:     image,
					Choice:    value,
				})
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":   path,
				"image":  image,
				"choice": value,
			}})
		},
	}
	return cmd
}
