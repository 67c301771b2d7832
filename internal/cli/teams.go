package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"crewdeck/internal/model"
)

func newTeamsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage teams (named member groups)",
	}
	cmd.AddCommand(newTeamsCreateCmd(app))
	cmd.AddCommand(newTeamsAddMemberCmd(app))
	cmd.AddCommand(newTeamsListCmd(app))
	return cmd
}

func newTeamsCreateCmd(app *App) *cobra.Command {
	var name string
	var memberIDs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			for _, id := range memberIDs {
				if _, ok := db.FindMember(id); !ok {
					return writeErr(cmd, errNotFound("member", id))
				}
			}
			tm := model.Team{
				ID:        s.NextID(db, "team"),
				Name:      strings.TrimSpace(name),
				MemberIDs: memberIDs,
			}
			db.Teams = append(db.Teams, tm)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "team.create", tm.ID, tm)
			return writeOut(cmd, app, map[string]any{"data": tm})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name")
	cmd.Flags().StringSliceVar(&memberIDs, "member", nil, "Member id (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTeamsAddMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-member <team-id> <member-id>",
		Short: "Add a member to a team",
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
			tm, ok := db.FindTeam(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("team", args[0]))
			}
			if _, ok := db.FindMember(args[1]); !ok {
				return writeErr(cmd, errNotFound("member", args[1]))
			}
			for _, id := range tm.MemberIDs {
				if id == args[1] {
					// Already on the roster; keep the command idempotent.
					return writeOut(cmd, app, map[string]any{"data": *tm})
				}
			}
			tm.MemberIDs = append(tm.MemberIDs, args[1])
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "team.add-member", tm.ID, map[string]any{"teamId": tm.ID, "memberId": args[1]})
			return writeOut(cmd, app, map[string]any{"data": *tm})
		},
	}
	return cmd
}

func newTeamsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Teams})
		},
	}
	return cmd
}
