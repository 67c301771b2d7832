package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"crewdeck/internal/model"
)

func newMembersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage members (people who work the accounts)",
	}
	cmd.AddCommand(newMembersCreateCmd(app))
	cmd.AddCommand(newMembersUseCmd(app))
	cmd.AddCommand(newMembersListCmd(app))
	cmd.AddCommand(newMembersWhoamiCmd(app))
	return cmd
}

func newMembersCreateCmd(app *App) *cobra.Command {
	var name string
	var email string
	var admin bool
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a member",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			m := model.Member{
				ID:    s.NextID(db, "mem"),
				Name:  strings.TrimSpace(name),
				Email: strings.TrimSpace(email),
				Admin: admin,
			}
			db.Members = append(db.Members, m)
			if use {
				db.CurrentMemberID = m.ID
				app.MemberID = m.ID
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(m.ID, "member.create", m.ID, m)
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant admin rights")
	cmd.Flags().BoolVar(&use, "use", false, "Set as current member")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newMembersUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <member-id>",
		Short: "Set the current member for this store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := db.FindMember(id); !ok {
				return writeErr(cmd, errNotFound("member", id))
			}
			db.CurrentMemberID = id
			app.MemberID = id
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(id, "member.use", id, map[string]any{"memberId": id})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentMemberId": id}})
		},
	}
	return cmd
}

func newMembersListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"currentMemberId": db.CurrentMemberID,
				"members":         db.Members,
			}})
		},
	}
	return cmd
}

func newMembersWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current member",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			m, ok := db.FindMember(id)
			if !ok {
				return writeErr(cmd, errNotFound("member", id))
			}
			return writeOut(cmd, app, map[string]any{"data": m})
		},
	}
	return cmd
}
