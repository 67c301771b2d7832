package cli

import (
	"github.com/spf13/cobra"

	"crewdeck/internal/store"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a store (creates db.json and the event log)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			// Remember the org only when resolution went through one
			// (an explicit --dir stays out of the global config).
			if app.Org != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentOrg == "" {
					cfg.CurrentOrg = app.Org
					_ = store.SaveConfig(cfg)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir": s.Dir,
				"org": app.Org,
			}})
		},
	}
	return cmd
}
