package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/session"
)

func newAuthCmd(a *app) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication",
		Long:  `Sign in, create an account or recover a forgotten password.`,
	}

	var email string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to MedShare",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := forms.Login{Email: email}
			if f.Email == "" {
				f.Email = a.prompt("Email")
			}
			f.Password = a.password("Password")
			if errs := f.Validate(); errs.Any() {
				return formErrors(errs)
			}

			a.println("🔄 Signing in...")
			res := a.store.Login(cmd.Context(), f.Email, f.Password)
			if !res.Success {
				return resultError("login failed", res)
			}

			a.success(fmt.Sprintf("Signed in as %s", a.store.User().FullName()))
			return nil
		},
	}
	loginCmd.Flags().StringVar(&email, "email", "", "Account email")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := a.tokens.Token(); !ok {
				a.println("Not logged in.")
				return nil
			}
			a.store.Logout()
			a.success("Signed out")
			return nil
		},
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := forms.Register{
				Name:      a.prompt("Name"),
				Surname:   a.prompt("Surname"),
				Email:     a.prompt("Email"),
				Password:  a.password("Password"),
				Confirm:   a.password("Confirm password"),
				Sex:       a.prompt("Sex (Masculino/Feminino/Outro, optional)"),
				BirthDate: a.prompt("Birth date (YYYY-MM-DD, optional)"),
				Phone:     a.prompt("Phone (optional)"),
			}
			f.Consent = a.confirm("Do you accept the terms of use and the privacy policy?")

			// Nothing is sent while the form is invalid
			if errs := f.Validate(time.Now()); errs.Any() {
				return formErrors(errs)
			}

			a.println("🔄 Creating account...")
			res := a.store.Register(cmd.Context(), f.Request())
			if !res.Success {
				return resultError("register failed", res)
			}

			a.success("Account created and signed in!")
			return nil
		},
	}

	forgotCmd := &cobra.Command{
		Use:   "forgot [email]",
		Short: "Request a password reset email",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := forms.ForgotPassword{}
			if len(args) == 1 {
				f.Email = args[0]
			} else {
				f.Email = a.prompt("Email")
			}
			if errs := f.Validate(); errs.Any() {
				return formErrors(errs)
			}

			res := a.store.ForgotPassword(cmd.Context(), strings.TrimSpace(f.Email))
			if !res.Success {
				return resultError("request failed", res)
			}
			a.success("If the email is registered, a reset link has been sent")
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset <token>",
		Short: "Set a new password using the token from the reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := args[0]
			if res := a.store.VerifyResetToken(cmd.Context(), token); !res.Success {
				return resultError("invalid reset link", res)
			}

			f := forms.ResetPassword{
				Password: a.password("New password"),
				Confirm:  a.password("Confirm new password"),
			}
			if errs := f.Validate(); errs.Any() {
				return formErrors(errs)
			}

			res := a.store.ResetPassword(cmd.Context(), token, f.Password)
			if !res.Success {
				return resultError("reset failed", res)
			}
			a.success("Password reset successfully. You can sign in now.")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.field("Server", a.cfg.APIURL)
			if err := a.requireAuth(cmd.Context()); err != nil {
				a.field("Signed in", "no")
				return nil
			}
			u := a.store.User()
			a.field("Signed in", "yes")
			a.field("Name", u.FullName())
			a.field("Email", u.Email)
			if exp, ok := a.db.Credentials(a.cfg.APIURL).ExpiresAt(); ok {
				a.field("Session expires", exp.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	authCmd.AddCommand(loginCmd, logoutCmd, registerCmd, forgotCmd, resetCmd, statusCmd)
	return authCmd
}

// resultError folds a failed session result into one error
func resultError(action string, res session.Result) error {
	if len(res.Fields) > 0 {
		errs := forms.Errors{}
		errs.Merge(res.Fields)
		return fmt.Errorf("%s: %s\n%w", action, res.Error, formErrors(errs))
	}
	return fmt.Errorf("%s: %s", action, res.Error)
}
