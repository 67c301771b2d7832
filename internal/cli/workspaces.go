package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crewdeck/internal/model"
	"crewdeck/internal/perm"
	"crewdeck/internal/report"
)

func newWorkspacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspaces",
		Short: "Manage workspaces (client accounts)",
	}
	cmd.AddCommand(newWorkspacesCreateCmd(app))
	cmd.AddCommand(newWorkspacesUseCmd(app))
	cmd.AddCommand(newWorkspacesListCmd(app))
	cmd.AddCommand(newWorkspacesArchiveCmd(app))
	cmd.AddCommand(newWorkspacesReportCmd(app))
	return cmd
}

func newWorkspacesCreateCmd(app *App) *cobra.Command {
	var name string
	var clientID string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if clientID != "" {
				if _, ok := db.FindClient(clientID); !ok {
					return writeErr(cmd, errNotFound("client", clientID))
				}
			}
			w := model.Workspace{
				ID:        s.NextID(db, "ws"),
				Name:      strings.TrimSpace(name),
				ClientID:  clientID,
				CreatedBy: memberID,
				CreatedAt: time.Now().UTC(),
			}
			db.Workspaces = append(db.Workspaces, w)
			if use {
				db.CurrentWorkspaceID = w.ID
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "workspace.create", w.ID, w)
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&clientID, "client", "", "Client id the workspace belongs to")
	cmd.Flags().BoolVar(&use, "use", false, "Set as current workspace")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newWorkspacesUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <workspace-id>",
		Short: "Set the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := db.FindWorkspace(id); !ok {
				return writeErr(cmd, errNotFound("workspace", id))
			}
			db.CurrentWorkspaceID = id
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentWorkspaceId": id}})
		},
	}
	return cmd
}

func newWorkspacesListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]model.Workspace, 0, len(db.Workspaces))
			for _, w := range db.Workspaces {
				if w.Archived && !all {
					continue
				}
				out = append(out, w)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"currentWorkspaceId": db.CurrentWorkspaceID,
				"workspaces":         out,
			}})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived workspaces")
	return cmd
}

func newWorkspacesArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <workspace-id>",
		Short: "Archive a workspace (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !perm.IsAdmin(db, memberID) {
				return writeErr(cmd, errAdminOnly(memberID, "workspaces archive"))
			}
			w, ok := db.FindWorkspace(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("workspace", args[0]))
			}
			w.Archived = true
			if db.CurrentWorkspaceID == w.ID {
				db.CurrentWorkspaceID = ""
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "workspace.archive", w.ID, map[string]any{"workspaceId": w.ID})
			return writeOut(cmd, app, map[string]any{"data": *w})
		},
	}
	return cmd
}

func newWorkspacesReportCmd(app *App) *cobra.Command {
	var toDir string
	var includeArchived bool
	var includeTime bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "report [workspace-id]",
		Short: "Write a markdown report for a workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			wsID := db.CurrentWorkspaceID
			if len(args) == 1 {
				wsID = args[0]
			}
			if wsID == "" {
				return writeErr(cmd, errors.New("no workspace; pass an id or run `crewdeck workspaces use <id>`"))
			}
			res, err := report.WriteWorkspace(db, wsID, toDir, report.WriteOptions{
				IncludeArchived: includeArchived,
				IncludeTime:     includeTime,
				Overwrite:       overwrite,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived projects and tasks")
	cmd.Flags().BoolVar(&includeTime, "include-time", false, "Include time bookings")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
