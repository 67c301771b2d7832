package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crewdeck/internal/model"
	"crewdeck/internal/perm"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsArchiveCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var workspaceID string
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project in a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			wsID := workspaceID
			if wsID == "" {
				wsID = db.CurrentWorkspaceID
			}
			if _, ok := db.FindWorkspace(wsID); !ok {
				return writeErr(cmd, errNotFound("workspace", wsID))
			}
			p := model.Project{
				ID:          s.NextID(db, "proj"),
				WorkspaceID: wsID,
				Name:        strings.TrimSpace(name),
				Description: strings.TrimSpace(description),
				CreatedBy:   memberID,
				CreatedAt:   time.Now().UTC(),
			}
			db.Projects = append(db.Projects, p)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "project.create", p.ID, p)
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Workspace id (default: current workspace)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var workspaceID string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]model.Project, 0, len(db.Projects))
			for _, p := range db.Projects {
				if workspaceID != "" && p.WorkspaceID != workspaceID {
					continue
				}
				if p.Archived && !all {
					continue
				}
				out = append(out, p)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Only projects in this workspace")
	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")
	return cmd
}

func newProjectsArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <project-id>",
		Short: "Archive a project (admin only)",
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
				return writeErr(cmd, errAdminOnly(memberID, "projects archive"))
			}
			p, ok := db.FindProject(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			p.Archived = true
			db.InvalidateIndexes()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "project.archive", p.ID, map[string]any{"projectId": p.ID})
			return writeOut(cmd, app, map[string]any{"data": *p})
		},
	}
	return cmd
}
