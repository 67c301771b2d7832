package cli

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"crewdeck/internal/store"
)

func newOrgCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org",
		Short: "Manage orgs (named store roots under ~/.crewdeck/orgs)",
	}
	cmd.AddCommand(newOrgCreateCmd(app))
	cmd.AddCommand(newOrgUseCmd(app))
	cmd.AddCommand(newOrgListCmd(app))
	cmd.AddCommand(newOrgCurrentCmd(app))
	return cmd
}

func newOrgCreateCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an org",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeOrgName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.OrgDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			s := store.Store{Dir: dir}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}
			db, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			if use {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				cfg.CurrentOrg = name
				if err := store.SaveConfig(cfg); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"org": name,
				"dir": dir,
				"use": use,
			}})
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Set as current org")
	return cmd
}

func newOrgUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Set the current org",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeOrgName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.OrgDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := os.Stat(dir); err != nil {
				return writeErr(cmd, errNotFound("org", name))
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentOrg = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentOrg": name}})
		},
	}
	return cmd
}

func newOrgListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orgs",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := store.ConfigDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			entries, err := os.ReadDir(filepath.Join(root, "orgs"))
			if err != nil && !os.IsNotExist(err) {
				return writeErr(cmd, err)
			}
			var names []string
			for _, e := range entries {
				if e.IsDir() {
					names = append(names, e.Name())
				}
			}
			sort.Strings(names)
			cfg, _ := store.LoadConfig()
			current := ""
			if cfg != nil {
				current = cfg.CurrentOrg
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"currentOrg": current,
				"orgs":       names,
			}})
		},
	}
	return cmd
}

func newOrgCurrentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the current org and its store dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			name := cfg.CurrentOrg
			if name == "" {
				name = "default"
			}
			dir, err := store.OrgDir(name)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"org": name,
				"dir": dir,
			}})
		},
	}
	return cmd
}
