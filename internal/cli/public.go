package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/publicgate"
)

func newPublicCmd(a *app) *cobra.Command {
	publicCmd := &cobra.Command{
		Use:   "public",
		Short: "Open someone's public emergency profile",
	}

	checkCmd := &cobra.Command{
		Use:   "check <link-id>",
		Short: "Check whether a public link exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gate := publicgate.New(a.public, args[0])
			if gate.Check(cmd.Context()) == publicgate.LinkNotFound {
				return gateNotFound(gate)
			}
			a.field("Owner", gate.OwnerName())
			a.field("Password", yesNo(gate.HasPassword()))
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats <link-id>",
		Short: "Show what a public profile contains without opening it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !publicgate.ValidID(args[0]) {
				return fmt.Errorf("link not found")
			}
			stats, err := a.public.PublicStats(cmd.Context(), args[0])
			if err != nil {
				// The public client never touches the signed-in session
				return fmt.Errorf("failed to load link: %s", api.Message(err))
			}
			a.field("Owner", stats.FullName)
			if stats.Age != nil {
				a.field("Age", strconv.Itoa(*stats.Age))
			}
			a.field("Medical info", yesNo(stats.HasMedicalInfo))
			a.field("Contacts", strconv.Itoa(stats.ContactCount))
			a.field("Password", yesNo(stats.PasswordRequired))
			return nil
		},
	}

	var password string
	viewCmd := &cobra.Command{
		Use:   "view <link-id>",
		Short: "Open a public emergency profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gate := publicgate.New(a.public, args[0])
			if gate.Check(cmd.Context()) == publicgate.LinkNotFound {
				return gateNotFound(gate)
			}

			a.println(titleStyle.Render("Emergency information of " + gate.OwnerName()))
			pw := password
			if pw == "" {
				pw = a.password("Access password")
			}
			if gate.Submit(cmd.Context(), pw) != publicgate.Authenticated {
				return fmt.Errorf("%s", gate.Alert())
			}

			p := gate.Profile()
			a.println(titleStyle.Render(p.FullName))
			if p.Age != nil {
				a.field("Age", strconv.Itoa(*p.Age))
			}
			a.field("Sex", p.Sex)
			a.field("Phone", p.Phone)
			a.field("Blood type", p.Medical.BloodType)
			a.field("Allergies", strings.Join(p.Medical.Allergies, ", "))
			a.field("Medications", strings.Join(p.Medical.Medications, ", "))
			a.field("Diseases", strings.Join(p.Medical.Diseases, ", "))
			a.field("Surgeries", strings.Join(p.Medical.Surgeries, ", "))
			a.println(titleStyle.Render("Emergency contacts"))
			for _, c := range p.Contacts {
				a.printf("  %s (%s) %s\n", c.Name, c.Relationship, c.Phone)
			}
			return nil
		},
	}
	viewCmd.Flags().StringVar(&password, "password", "", "Access password")

	publicCmd.AddCommand(checkCmd, statsCmd, viewCmd)
	return publicCmd
}

func gateNotFound(g *publicgate.Gate) error {
	if msg := g.Alert(); msg != "" {
		return fmt.Errorf("link not found: %s", msg)
	}
	return fmt.Errorf("link not found")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
