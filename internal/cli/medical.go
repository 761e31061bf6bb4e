package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/model"
)

func newMedicalCmd(a *app) *cobra.Command {
	medicalCmd := &cobra.Command{
		Use:   "medical",
		Short: "Show or edit your medical information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			info, err := a.client.MedicalInfo(cmd.Context())
			if err != nil && !api.IsNotFound(err) {
				return a.fail("failed to load medical information", err)
			}
			printMedical(a, info)
			return nil
		},
	}

	var (
		bloodType   string
		allergies   []string
		medications []string
		diseases    []string
		surgeries   []string
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Replace medical information fields",
		Long: `Replace the given fields and keep the others. Each list flag replaces the whole
list and can be repeated; pass an empty value to clear a list.

Examples:
  medshare medical set --blood-type O+
  medshare medical set --allergy Penicilina --allergy Dipirona`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			current, err := a.client.MedicalInfo(cmd.Context())
			if err != nil && !api.IsNotFound(err) {
				return a.fail("failed to load medical information", err)
			}

			f := forms.MedicalFrom(current)
			flags := cmd.Flags()
			if flags.Changed("blood-type") {
				f.BloodType = strings.ToUpper(strings.TrimSpace(bloodType))
			}
			if flags.Changed("allergy") {
				f.Allergies = nonBlank(allergies)
			}
			if flags.Changed("medication") {
				f.Medications = nonBlank(medications)
			}
			if flags.Changed("disease") {
				f.Diseases = nonBlank(diseases)
			}
			if flags.Changed("surgery") {
				f.Surgeries = nonBlank(surgeries)
			}

			if errs := f.Validate(); errs.Any() {
				return formErrors(errs)
			}

			saved, err := a.client.UpdateMedicalInfo(cmd.Context(), f.Update())
			if err != nil {
				return a.fail("save failed", err)
			}
			a.success("Medical information saved successfully")
			printMedical(a, saved)
			return nil
		},
	}
	setCmd.Flags().StringVar(&bloodType, "blood-type", "", "Blood type ("+strings.Join(model.BloodTypes, ", ")+")")
	setCmd.Flags().StringArrayVar(&allergies, "allergy", nil, "Allergy (repeatable)")
	setCmd.Flags().StringArrayVar(&medications, "medication", nil, "Medication in use (repeatable)")
	setCmd.Flags().StringArrayVar(&diseases, "disease", nil, "Chronic disease (repeatable)")
	setCmd.Flags().StringArrayVar(&surgeries, "surgery", nil, "Previous surgery (repeatable)")

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all medical information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if !a.confirmDestructive(yes, "Remove all your medical information?") {
				a.println("Cancelled.")
				return nil
			}
			if err := a.client.ClearMedicalInfo(cmd.Context()); err != nil {
				return a.fail("clear failed", err)
			}
			a.success("Medical information removed")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	medicalCmd.AddCommand(setCmd, clearCmd)
	return medicalCmd
}

// nonBlank drops empty flag values so --allergy "" clears the list
func nonBlank(items []string) []string {
	out := []string{}
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func printMedical(a *app, info *model.MedicalInfo) {
	a.println(titleStyle.Render("Medical information"))
	if info == nil || info.IsEmpty() {
		a.println(mutedStyle.Render("Nothing recorded yet. Use 'medshare medical set' to fill it in."))
		return
	}
	a.field("Blood type", info.BloodType)
	a.field("Allergies", strings.Join(info.Allergies, ", "))
	a.field("Medications", strings.Join(info.Medications, ", "))
	a.field("Diseases", strings.Join(info.Diseases, ", "))
	a.field("Surgeries", strings.Join(info.Surgeries, ", "))
	if !info.UpdatedAt.IsZero() {
		a.field("Last update", info.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
