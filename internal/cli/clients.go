package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"crewdeck/internal/model"
	"crewdeck/internal/perm"
)

func newClientsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage clients (the companies behind workspaces)",
	}
	cmd.AddCommand(newClientsCreateCmd(app))
	cmd.AddCommand(newClientsEditCmd(app))
	cmd.AddCommand(newClientsListCmd(app))
	return cmd
}

func newClientsCreateCmd(app *App) *cobra.Command {
	var name string
	var contact string
	var email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			memberID, err := currentMemberID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			c := model.Client{
				ID:      s.NextID(db, "cli"),
				Name:    strings.TrimSpace(name),
				Contact: strings.TrimSpace(contact),
				Email:   strings.TrimSpace(email),
			}
			db.Clients = append(db.Clients, c)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "client.create", c.ID, c)
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newClientsEditCmd(app *App) *cobra.Command {
	var name string
	var contact string
	var email string

	cmd := &cobra.Command{
		Use:   "edit <client-id>",
		Short: "Edit a client (admin only)",
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
			if !perm.CanEditClient(db, memberID) {
				return writeErr(cmd, errAdminOnly(memberID, "clients edit"))
			}
			c, ok := db.FindClient(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("client", args[0]))
			}
			if cmd.Flags().Changed("name") {
				c.Name = strings.TrimSpace(name)
			}
			if cmd.Flags().Changed("contact") {
				c.Contact = strings.TrimSpace(contact)
			}
			if cmd.Flags().Changed("email") {
				c.Email = strings.TrimSpace(email)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(memberID, "client.edit", c.ID, c)
			return writeOut(cmd, app, map[string]any{"data": *c})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	return cmd
}

func newClientsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Clients})
		},
	}
	return cmd
}
