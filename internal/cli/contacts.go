package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/forms"
)

func newContactsCmd(a *app) *cobra.Command {
	contactsCmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage emergency contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			return listContacts(a, cmd)
		},
	}

	var f forms.Contact
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an emergency contact",
		Long: `Add an emergency contact. Missing fields are asked interactively.

Examples:
  medshare contacts add --name "Maria Silva" --relationship Mãe --phone 11987654321`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			in := f
			if in.Name == "" {
				in.Name = a.prompt("Name")
			}
			if in.Relationship == "" {
				in.Relationship = a.prompt("Relationship")
			}
			if in.Phone == "" {
				in.Phone = a.prompt("Phone")
			}
			if errs := in.Validate(); errs.Any() {
				return formErrors(errs)
			}

			c, err := a.client.CreateContact(cmd.Context(), in.Input())
			if err != nil {
				return a.fail("failed to add contact", err)
			}
			a.success("Contact added successfully")
			if c != nil {
				a.printf("  #%d %s (%s) %s\n", c.ID, c.Name, c.Relationship, c.Phone)
			}
			return nil
		},
	}
	addCmd.Flags().StringVar(&f.Name, "name", "", "Contact name")
	addCmd.Flags().StringVar(&f.Relationship, "relationship", "", "Relationship (Mãe, Pai, Cônjuge...)")
	addCmd.Flags().StringVar(&f.Phone, "phone", "", "Phone number")

	var e forms.Contact
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an emergency contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContactID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			current, err := a.client.Contact(cmd.Context(), id)
			if err != nil {
				return a.fail("contact not found", err)
			}

			next := forms.ContactFrom(current)
			flags := cmd.Flags()
			if !anyChanged(cmd, "name", "relationship", "phone") {
				next.Name = a.promptDefault("Name", next.Name)
				next.Relationship = a.promptDefault("Relationship", next.Relationship)
				next.Phone = a.promptDefault("Phone", next.Phone)
			}
			if flags.Changed("name") {
				next.Name = e.Name
			}
			if flags.Changed("relationship") {
				next.Relationship = e.Relationship
			}
			if flags.Changed("phone") {
				next.Phone = e.Phone
			}
			if errs := next.Validate(); errs.Any() {
				return formErrors(errs)
			}

			if _, err := a.client.UpdateContact(cmd.Context(), id, next.Input()); err != nil {
				return a.fail("failed to update contact", err)
			}
			a.success("Contact updated successfully")
			return nil
		},
	}
	editCmd.Flags().StringVar(&e.Name, "name", "", "Contact name")
	editCmd.Flags().StringVar(&e.Relationship, "relationship", "", "Relationship")
	editCmd.Flags().StringVar(&e.Phone, "phone", "", "Phone number")

	var yes bool
	deleteCmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an emergency contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContactID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			current, err := a.client.Contact(cmd.Context(), id)
			if err != nil {
				return a.fail("contact not found", err)
			}

			question := fmt.Sprintf("Remove %s (%s) from your emergency contacts?", current.Name, current.Phone)
			if !a.confirmDestructive(yes, question) {
				a.println("Cancelled.")
				return nil
			}

			if err := a.client.DeleteContact(cmd.Context(), id); err != nil {
				return a.fail("failed to remove contact", err)
			}
			a.success("Contact removed successfully")
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	contactsCmd.AddCommand(addCmd, editCmd, deleteCmd)
	return contactsCmd
}

func parseContactID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact id: %s", s)
	}
	return id, nil
}

func listContacts(a *app, cmd *cobra.Command) error {
	contacts, err := a.client.Contacts(cmd.Context())
	if err != nil {
		return a.fail("failed to load contacts", err)
	}

	a.println(titleStyle.Render(fmt.Sprintf("Emergency contacts (%d)", len(contacts))))
	if len(contacts) == 0 {
		a.println(mutedStyle.Render("No contacts yet. Use 'medshare contacts add'."))
		return nil
	}
	for _, c := range contacts {
		a.printf("  %-4s %-24s %-14s %s\n", "#"+strconv.FormatInt(c.ID, 10), c.Name, c.Relationship, c.Phone)
	}
	return nil
}
