package cli

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crewdeck/internal/model"
	"crewdeck/internal/mutate"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksAssignCmd(app))
	cmd.AddCommand(newTasksStatusCmd(app))
	cmd.AddCommand(newTasksDoneCmd(app))
	cmd.AddCommand(newTasksArchiveCmd(app))
	cmd.AddCommand(newTasksTimeCmd(app))
	return cmd
}

var dueRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func parseDue(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !dueRe.MatchString(s) {
		return nil, errors.New("invalid --due (expected YYYY-MM-DD)")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return nil, errors.New("invalid --due (expected YYYY-MM-DD)")
	}
	return &s, nil
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var workspaceID string
	var projectID string
	var title string
	var notes string
	var due string
	var assigneeID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
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
			if wsID == "" && projectID != "" {
				if p, ok := db.FindProject(projectID); ok {
					wsID = p.WorkspaceID
				}
			}
			if wsID == "" {
				wsID = db.CurrentWorkspaceID
			}
			if _, ok := db.FindWorkspace(wsID); !ok {
				return writeErr(cmd, errNotFound("workspace", wsID))
			}
			if projectID != "" {
				p, ok := db.FindProject(projectID)
				if !ok {
					return writeErr(cmd, errNotFound("project", projectID))
				}
				if p.WorkspaceID != wsID {
					return writeErr(cmd, errors.New("project belongs to a different workspace"))
				}
			}
			if assigneeID != "" {
				if _, ok := db.FindMember(assigneeID); !ok {
					return writeErr(cmd, errNotFound("member", assigneeID))
				}
			}
			d, err := parseDue(due)
			if err != nil {
				return writeErr(cmd, err)
			}

			now := time.Now().UTC()
			t := model.Task{
				ID:          s.NextID(db, "task"),
				WorkspaceID: wsID,
				ProjectID:   projectID,
				Title:       strings.TrimSpace(title),
				Notes:       notes,
				StatusID:    "open",
				Due:         d,
				AssigneeID:  assigneeID,
				CreatedBy:   memberID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			db.Tasks = append(db.Tasks, t)
			db.InvalidateIndexes()
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "task.create", t.ID, t)
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Workspace id (default: project's workspace, then current workspace)")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&notes, "notes", "", "Task notes (markdown)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&assigneeID, "assignee", "", "Assignee member id")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var workspaceID string
	var projectID string
	var assigneeID string
	var status string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]model.Task, 0, len(db.Tasks))
			for _, t := range db.Tasks {
				if t.Archived && !all {
					continue
				}
				if workspaceID != "" && t.WorkspaceID != workspaceID {
					continue
				}
				if projectID != "" && t.ProjectID != projectID {
					continue
				}
				if assigneeID != "" && t.AssigneeID != assigneeID {
					continue
				}
				if status != "" && t.StatusID != status {
					continue
				}
				out = append(out, t)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&workspaceID, "workspace", "", "Only tasks in this workspace")
	cmd.Flags().StringVar(&projectID, "project", "", "Only tasks in this project")
	cmd.Flags().StringVar(&assigneeID, "assignee", "", "Only tasks assigned to this member")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().BoolVar(&all, "all", false, "Include archived tasks")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its time log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			data := map[string]any{
				"task":    *t,
				"timeLog": db.TimeForTask(t.ID),
			}
			if p, ok := db.FindProject(t.ProjectID); ok {
				data["projectName"] = p.Name
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	return cmd
}

func newTasksEditCmd(app *App) *cobra.Command {
	var title string
	var notes string
	var due string

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task (admin or involved member)",
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
			edits := mutate.TaskEdits{}
			if cmd.Flags().Changed("title") {
				edits.Title = &title
			}
			if cmd.Flags().Changed("notes") {
				edits.Notes = &notes
			}
			if cmd.Flags().Changed("due") {
				if _, err := parseDue(due); err != nil {
					return writeErr(cmd, err)
				}
				edits.Due = &due
			}
			res, err := mutate.EditTask(db, memberID, args[0], edits)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent(memberID, "task.edit", res.Task.ID, res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": *res.Task})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, empty clears)")
	return cmd
}

func newTasksAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <task-id> <member-id>",
		Short: "Assign a task to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetTaskAssignee(db, memberID, args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent(memberID, "task.assign", res.Task.ID, res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": *res.Task})
		},
	}
	return cmd
}

func setTaskStatus(cmd *cobra.Command, app *App, taskID, status string) error {
	db, s, err := loadDB(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	memberID, err := currentMemberID(app, db)
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := mutate.SetTaskStatus(db, memberID, taskID, status)
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Changed {
		if err := s.Save(db); err != nil {
			return writeErr(cmd, err)
		}
		_ = s.AppendEvent(memberID, "task.status", res.Task.ID, res.EventPayload)
	}
	return writeOut(cmd, app, map[string]any{"data": *res.Task})
}

func newTasksStatusCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "status <task-id>",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(status) == "" {
				return writeErr(cmd, errors.New("missing --status"))
			}
			return setTaskStatus(cmd, app, args[0], status)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status id (open|doing|done|...)")
	return cmd
}

func newTasksDoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTaskStatus(cmd, app, args[0], "done")
		},
	}
	return cmd
}

func newTasksArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <task-id>",
		Short: "Archive a task (admin only)",
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
			res, err := mutate.SetTaskArchived(db, memberID, args[0], true)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent(memberID, "task.archive", res.Task.ID, res.EventPayload)
			}
			return writeOut(cmd, app, map[string]any{"data": *res.Task})
		},
	}
	return cmd
}

func newTasksTimeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Manual time bookings",
	}
	cmd.AddCommand(newTasksTimeAddCmd(app))
	cmd.AddCommand(newTasksTimeListCmd(app))
	return cmd
}

func newTasksTimeAddCmd(app *App) *cobra.Command {
	var taskID string
	var minutes int
	var note string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a manual time entry (involved members only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := mutate.AddTimeEntry(db, s, memberID, taskID, minutes, note)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "task.time", e.TaskID, *e)
			return writeOut(cmd, app, map[string]any{"data": *e})
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task id")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes worked")
	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("minutes")
	return cmd
}

func newTasksTimeListCmd(app *App) *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries for a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindTask(taskID); !ok {
				return writeErr(cmd, errNotFound("task", taskID))
			}
			return writeOut(cmd, app, map[string]any{"data": db.TimeForTask(taskID)})
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task id")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}
