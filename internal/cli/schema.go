package cli

import (
	"fmt"
	"strings"

	"github.com/bonntanname/figure-checker/internal/model"
	"github.com/bonntanname/figure-checker/internal/schema"
	"github.com/bonntanname/figure-checker/internal/store"

	"github.com/spf13/cobra"
)

func newSchemaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Label schema commands",
	}
	cmd.AddCommand(newSchemaShowCmd(app))
	cmd.AddCommand(newSchemaSetCmd(app))
	cmd.AddCommand(newSchemaResetCmd(app))
	return cmd
}

func newSchemaShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active label schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Default()
			if err != nil {
				return writeErr(cmd, err)
			}
			sch, _, err := loadSchema(st)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sch.Defs})
		},
	}
	return cmd
}

func newSchemaSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key=value> [key=value ...]",
		Short: "Replace the label schema (all-or-nothing)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var defs []model.LabelDef
			for _, a := range args {
				k, v, ok := strings.Cut(a, "=")
				if !ok {
					return writeErr(cmd, fmt.Errorf("invalid pair %q (expected key=value)", a))
				}
				defs = append(defs, model.LabelDef{Key: k, Value: v})
			}
			sch, err := schema.New(defs)
			if err != nil {
				return writeErr(cmd, err)
			}

			st, err := store.Default()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := st.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.Schema = sch.Defs
			if err := st.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sch.Defs})
		},
	}
	return cmd
}

func newSchemaResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in y/n schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Default()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := st.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.Schema = nil
			if err := st.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": model.DefaultLabelDefs()})
		},
	}
	return cmd
}
