// Package testsupport provides shared fixtures for engine tests: complete
// valid submissions and form-body synthesis, so contract tests stay concise.
package testsupport

import (
	"testing"

	"github.com/ukncsp/simmeta/pkg/issueform"
	"github.com/ukncsp/simmeta/pkg/record"
)

// ValidValues returns a complete, valid field set for a "no parent" run with
// mass data class "crum". Callers mutate their copy freely.
func ValidValues() map[string]string {
	return map[string]string{
		"base_date":             "1850-01-01",
		"branch_method":         "no parent",
		"branch_date_in_child":  "",
		"branch_date_in_parent": "",
		"parent_experiment_id":  "",
		"parent_mip":            "",
		"parent_model_id":       "",
		"parent_time_units":     "",
		"parent_variant_label":  "",
		"calendar":              "360_day",
		"experiment_id":         "historical",
		"institution_id":        "MOHC",
		"mip":                   "CMIP",
		"mip_era":               "CMIP6",
		"variant_label":         "r1i1p1f2",
		"model_id":              "UKESM1-0-LL",
		"start_date":            "1850-01-01",
		"end_date":              "2014-12-30",
		"mass_data_class":       "crum",
		"mass_ensemble_member":  "",
		"model_workflow_id":     "ab-cd123",
		"atmos_timestep":        "1200",
	}
}

// ValidParentValues returns a complete, valid field set for a "standard"
// branch run, with every parent field populated.
func ValidParentValues() map[string]string {
	values := ValidValues()
	values["branch_method"] = "standard"
	values["branch_date_in_child"] = "1850-01-01"
	values["branch_date_in_parent"] = "2250-01-01"
	values["parent_experiment_id"] = "piControl"
	values["parent_mip"] = "CMIP"
	values["parent_model_id"] = "UKESM1-0-LL"
	values["parent_time_units"] = "days since 1850-01-01"
	values["parent_variant_label"] = "r1i1p1f2"
	return values
}

// Submission builds a submission from ValidValues with overrides applied.
func Submission(t *testing.T, overrides map[string]string) record.Submission {
	t.Helper()

	sub := record.New()
	values := ValidValues()
	for name, value := range overrides {
		values[name] = value
	}
	for name, value := range values {
		if err := sub.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	return sub
}

// Body synthesizes the issue-form rendering of a field set, matching what
// the form platform actually produces for a submission.
func Body(values map[string]string) string {
	return issueform.Compose(values)
}
