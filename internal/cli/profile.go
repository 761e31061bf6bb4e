package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/model"
)

func newProfileCmd(a *app) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your personal data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			printProfile(a, a.store.User())
			return nil
		},
	}

	var f forms.Profile
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update name, surname, sex, birth date or phone",
		Long: `Update your personal data. Only the flags you pass are changed; without any
flag every field is asked interactively with the current value as default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			current := forms.ProfileFrom(a.store.User())
			next := current
			flags := cmd.Flags()
			if !anyChanged(cmd, "name", "surname", "sex", "birth-date", "phone") {
				next.Name = a.promptDefault("Name", current.Name)
				next.Surname = a.promptDefault("Surname", current.Surname)
				next.Sex = a.promptDefault("Sex", current.Sex)
				next.BirthDate = a.promptDefault("Birth date (YYYY-MM-DD)", current.BirthDate)
				next.Phone = a.promptDefault("Phone", current.Phone)
			}
			if flags.Changed("name") {
				next.Name = f.Name
			}
			if flags.Changed("surname") {
				next.Surname = f.Surname
			}
			if flags.Changed("sex") {
				next.Sex = f.Sex
			}
			if flags.Changed("birth-date") {
				next.BirthDate = f.BirthDate
			}
			if flags.Changed("phone") {
				next.Phone = f.Phone
			}

			if errs := next.Validate(time.Now()); errs.Any() {
				return formErrors(errs)
			}

			updated, err := a.client.UpdateProfile(cmd.Context(), next.Update())
			if err != nil {
				return a.fail("update failed", err)
			}
			if updated != nil {
				a.store.UpdateUser(model.PatchFrom(*updated))
			}
			a.success("Profile updated successfully")
			printProfile(a, a.store.User())
			return nil
		},
	}
	updateCmd.Flags().StringVar(&f.Name, "name", "", "First name")
	updateCmd.Flags().StringVar(&f.Surname, "surname", "", "Surname")
	updateCmd.Flags().StringVar(&f.Sex, "sex", "", "Masculino, Feminino or Outro")
	updateCmd.Flags().StringVar(&f.BirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&f.Phone, "phone", "", "Phone number")

	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Change your account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			pc := forms.PasswordChange{
				Current: a.password("Current password"),
				New:     a.password("New password"),
				Confirm: a.password("Confirm new password"),
			}
			if errs := pc.Validate(); errs.Any() {
				return formErrors(errs)
			}

			if err := a.client.ChangePassword(cmd.Context(), pc.Request()); err != nil {
				return a.fail("password change failed", err)
			}
			a.success("Password changed successfully")
			return nil
		},
	}

	profileCmd.AddCommand(updateCmd, passwordCmd)
	return profileCmd
}

func printProfile(a *app, u *model.User) {
	a.println(titleStyle.Render(u.FullName()))
	a.field("Email", u.Email)
	a.field("Sex", u.Sex)
	a.field("Birth date", u.BirthDate)
	a.field("Phone", u.Phone)
	if !u.CreatedAt.IsZero() {
		a.field("Member since", u.CreatedAt.Local().Format("2006-01-02"))
	}
}
