package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"crewdeck/internal/format"
	"crewdeck/internal/gitrepo"
	"crewdeck/internal/store"
	"crewdeck/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Org        string
	MemberID   string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "crewdeck",
		Short:        "Crewdeck (local-first) client-work CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  crewdeck

  # Scriptable commands
  crewdeck tasks list

  # Tasks for one workspace (client account)
  crewdeck tasks list --workspace <workspace-id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
		// Auto-commit after successful mutations when the store dir lives in
		// a git repo. Best-effort; failures never fail the command.
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Dir == "" || !gitrepo.AutoCommitEnabled() {
				return
			}
			msg := gitrepo.CommitMessage(strings.TrimPrefix(cmd.CommandPath(), "crewdeck "))
			_, _ = gitrepo.CommitStore(cmd.Context(), app.Dir, msg)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CREWDECK_DIR", ""), "Path to store dir (advanced: overrides org resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Org, "org", envOr("CREWDECK_ORG", ""), "Org name (default: 'default')")
	cmd.PersistentFlags().StringVar(&app.MemberID, "member", envOr("CREWDECK_MEMBER", ""), "Member id (overrides currentMemberId in db.json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newOrgCmd(app))
	cmd.AddCommand(newMembersCmd(app))
	cmd.AddCommand(newClientsCmd(app))
	cmd.AddCommand(newWorkspacesCmd(app))
	cmd.AddCommand(newTeamsCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, _, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(app.Dir, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		// Org-first:
		// 1) --org
		// 2) ~/.crewdeck/config.json currentOrg
		// 3) implicit default org
		switch {
		case app.Org != "":
			d, err := store.OrgDir(app.Org)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		default:
			cfg, err := store.LoadConfig()
			if err == nil && cfg.CurrentOrg != "" {
				app.Org = cfg.CurrentOrg
			} else {
				app.Org = "default"
			}
			d, err := store.OrgDir(app.Org)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		}
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func currentMemberID(app *App, db *store.DB) (string, error) {
	if app.MemberID != "" {
		return app.MemberID, nil
	}
	if db.CurrentMemberID != "" {
		return db.CurrentMemberID, nil
	}
	return "", errors.New("no current member; run `crewdeck members create ... --use` or `crewdeck members use <member-id>` (or pass --member)")
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
