package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/bonntanname/figure-checker/internal/format"
	"github.com/bonntanname/figure-checker/internal/schema"
	"github.com/bonntanname/figure-checker/internal/session"
	"github.com/bonntanname/figure-checker/internal/source"
	"github.com/bonntanname/figure-checker/internal/store"
	"github.com/bonntanname/figure-checker/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "figcheck [dir | file...]",
		Short:        "Keystroke-driven image labeling (TUI + scriptable CLI)",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		Example: strings.TrimSpace(`
  # Label the images in a directory interactively
  figcheck ./photos

  # Label an explicit selection (read-only; choices go to the journal)
  figcheck ./photos/cat.png ./misc/dog.jpg

  # Scriptable commands
  figcheck scan ./photos
  figcheck label ./photos cat.png Y
  figcheck results show ./photos
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, args)
		},
	}

	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newScanCmd(app))
	cmd.AddCommand(newLabelCmd(app))
	cmd.AddCommand(newResultsCmd(app))
	cmd.AddCommand(newSchemaCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App, args []string) error {
	listing, err := resolveListing(args)
	if err != nil {
		return err
	}
	st, err := store.Default()
	if err != nil {
		return err
	}
	sch, _, err := loadSchema(st)
	if err != nil {
		return err
	}
	return tui.Run(session.New(listing), sch, st)
}

// resolveListing maps the root arguments onto a source: no args labels the
// current directory, one directory arg scans it, anything else is treated as
// an explicit file selection (read-only session). A single argument that
// does not exist is an error, not an empty selection.
func resolveListing(args []string) (*source.Listing, error) {
	if len(args) == 0 {
		return source.Scan(".")
	}
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return source.Scan(args[0])
		}
	}
	return source.FromFiles(args)
}

// loadSchema restores the persisted label schema, falling back to the
// built-in defaults when none is stored or the stored one no longer
// validates.
func loadSchema(st store.Store) (schema.Schema, *store.Config, error) {
	cfg, err := st.LoadConfig()
	if err != nil {
		return schema.Schema{}, nil, err
	}
	if len(cfg.Schema) == 0 {
		return schema.Default(), cfg, nil
	}
	sch, err := schema.New(cfg.Schema)
	if err != nil {
		return schema.Default(), cfg, nil
	}
	return sch, cfg, nil
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
