package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/dashboard"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/model"
)

func newLinkCmd(a *app) *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Manage your public emergency link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			info, err := a.client.PublicLinkInfo(cmd.Context())
			if err != nil {
				return a.fail("failed to load public link", err)
			}

			a.println(titleStyle.Render("Public link"))
			if info == nil || !info.HasPublicLink {
				a.field("Status", "inactive")
				a.println(mutedStyle.Render("Use 'medshare link enable' to generate one."))
				return nil
			}
			a.field("Status", successStyle.Render("active"))
			if info.HasPublicPassword {
				a.field("Password", "protected")
			}
			a.field("URL", info.LinkURL)
			return nil
		},
	}

	enableCmd := &cobra.Command{
		Use:   "enable",
		Short: "Generate the public link with a random access password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			return setLinkPassword(a, cmd, forms.GeneratePublicPassword(), "Public link generated successfully")
		},
	}

	var (
		newPassword string
		generate    bool
	)
	passwordCmd := &cobra.Command{
		Use:   "password",
		Short: "Change the access password of the public link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			f := forms.PublicPassword{Password: newPassword}
			switch {
			case generate:
				f.Password = forms.GeneratePublicPassword()
			case f.Password == "":
				f.Password = a.password("New access password")
			}
			if errs := f.Validate(); errs.Any() {
				return formErrors(errs)
			}
			return setLinkPassword(a, cmd, f.Value(), "Password updated successfully")
		},
	}
	passwordCmd.Flags().StringVar(&newPassword, "password", "", "New access password")
	passwordCmd.Flags().BoolVar(&generate, "generate", false, "Generate a secure password")

	var yes bool
	disableCmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable the public link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if !a.confirmDestructive(yes, "Nobody will be able to access your medical information through the link. Disable it?") {
				a.println("Cancelled.")
				return nil
			}
			if err := a.client.DisablePublicLink(cmd.Context()); err != nil {
				return a.fail("failed to disable link", err)
			}
			empty := ""
			a.store.UpdateUser(model.UserPatch{PublicLinkID: &empty})
			a.success("Public link disabled successfully")
			return nil
		},
	}
	disableCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	var output string
	qrCmd := &cobra.Command{
		Use:   "qr",
		Short: "Download the QR code of the public link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			img, err := a.client.QRCode(cmd.Context())
			if err != nil {
				return a.fail("failed to download QR code", err)
			}

			path := output
			if path == "" {
				path = dashboard.QRFilename(a.store.User())
			}
			if err := os.WriteFile(path, img.Data, 0644); err != nil {
				return fmt.Errorf("failed to save QR code: %w", err)
			}
			a.success("QR code saved to " + path)
			return nil
		},
	}
	qrCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default medshare-qr-<name>.png)")

	linkCmd.AddCommand(enableCmd, passwordCmd, disableCmd, qrCmd)
	return linkCmd
}

// setLinkPassword sends password and prints it once. It is never stored.
func setLinkPassword(a *app, cmd *cobra.Command, password, msg string) error {
	link, err := a.client.GeneratePublicLink(cmd.Context(), password)
	if err != nil {
		return a.fail("failed to set link password", err)
	}
	if link != nil && link.LinkID != "" {
		id := link.LinkID
		a.store.UpdateUser(model.UserPatch{PublicLinkID: &id})
	}

	a.success(msg)
	if link != nil && link.LinkURL != "" {
		a.field("URL", link.LinkURL)
	}
	a.field("Access password", secretStyle.Render(password))
	a.println(warnStyle.Render("Write the password down now. It will not be shown again."))
	return nil
}
