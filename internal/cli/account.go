package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/dashboard"
	"github.com/existflow/medshare/internal/forms"
)

func newAccountCmd(a *app) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account settings",
	}

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your account and all its data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			a.println(warnStyle.Render("This removes your profile, medical information, contacts and public link."))
			f := forms.DeleteAccount{Confirmed: a.confirm("Delete your account permanently?")}
			if !f.Confirmed {
				a.println("Cancelled.")
				return nil
			}
			f.Password = a.password("Password")
			if errs := f.Validate(); errs.Any() {
				return formErrors(errs)
			}

			if err := a.client.DeleteAccount(cmd.Context(), f.Password); err != nil {
				return a.fail("failed to delete account", err)
			}
			a.store.Logout()
			a.success("Account deleted")
			return nil
		},
	}

	accountCmd.AddCommand(deleteCmd)
	return accountCmd
}

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show a summary of your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			s := dashboard.Load(cmd.Context(), a.client, a.store.User())
			a.println(titleStyle.Render(fmt.Sprintf("Welcome, %s!", s.UserName)))

			link := "inactive"
			if s.HasPublicLink {
				link = successStyle.Render("active")
			}
			medical := "incomplete"
			if s.MedicalComplete {
				medical = successStyle.Render("complete")
			}
			contacts := fmt.Sprintf("%d", s.ContactCount)
			if s.ContactsErr != nil {
				contacts += mutedStyle.Render(" (could not be loaded)")
			}
			lastUpdate := ""
			if !s.LastUpdate.IsZero() {
				lastUpdate = s.LastUpdate.Local().Format(time.DateOnly)
			}

			a.field("Public link", link)
			a.field("Medical info", medical)
			a.field("Contacts", contacts)
			a.field("Last update", lastUpdate)
			return nil
		},
	}
}
