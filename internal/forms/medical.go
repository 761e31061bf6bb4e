package forms

import (
	"strings"

	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/validate"
)

// Medical is the full medical document editor
type Medical struct {
	BloodType   string
	Allergies   []string
	Medications []string
	Diseases    []string
	Surgeries   []string
}

// MedicalFrom prefills the editor, tolerating a missing document
func MedicalFrom(info *model.MedicalInfo) Medical {
	if info == nil {
		return Medical{}
	}
	return Medical{
		BloodType:   info.BloodType,
		Allergies:   info.Allergies,
		Medications: info.Medications,
		Diseases:    info.Diseases,
		Surgeries:   info.Surgeries,
	}
}

// ParseList splits a textarea value into items, one per line. Blank lines are skipped.
func ParseList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// JoinList is the inverse of ParseList
func JoinList(items []string) string {
	return strings.Join(items, "\n")
}

func (f *Medical) lists() []struct {
	field string
	items []string
} {
	return []struct {
		field string
		items []string
	}{
		{FieldAllergies, f.Allergies},
		{FieldMedications, f.Medications},
		{FieldDiseases, f.Diseases},
		{FieldSurgeries, f.Surgeries},
	}
}

func (f *Medical) Validate() Errors {
	errs := Errors{}
	if !validate.BloodType(f.BloodType) {
		errs.Add(FieldBloodType, "Invalid blood type")
	}
	for _, l := range f.lists() {
		if problems := validate.MedicalList(dedupe(l.items)); len(problems) > 0 {
			errs.Add(l.field, problems[0])
		}
	}
	return errs
}

// Update builds the full-replace payload. Items are trimmed and de-duplicated in order.
func (f *Medical) Update() model.MedicalUpdate {
	return model.MedicalUpdate{
		BloodType:   f.BloodType,
		Allergies:   dedupe(f.Allergies),
		Medications: dedupe(f.Medications),
		Diseases:    dedupe(f.Diseases),
		Surgeries:   dedupe(f.Surgeries),
	}
}

// dedupe trims items and drops later duplicates, compared case-insensitively. Blank
// items are kept so validation can report them.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item != "" {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}
