package issueform

import "strings"

// aliases maps normalized form labels to canonical field names. Normalization
// lowercases the label and replaces spaces with underscores, so the table
// covers both the human-facing labels the form renders and the snake_case
// names themselves (which normalize to themselves).
var aliases = map[string]string{
	"base_date":                "base_date",
	"branch_method":            "branch_method",
	"child_branch_date":        "branch_date_in_child",
	"branch_date_in_child":     "branch_date_in_child",
	"parent_branch_date":       "branch_date_in_parent",
	"branch_date_in_parent":    "branch_date_in_parent",
	"parent_experiment_id":     "parent_experiment_id",
	"parent_activity_id_(mip)": "parent_mip",
	"parent_mip":               "parent_mip",
	"parent_model_id":          "parent_model_id",
	"parent_time_units":        "parent_time_units",
	"parent_variant_label":     "parent_variant_label",
	"calendar_type":            "calendar",
	"calendar":                 "calendar",
	"experiment_id":            "experiment_id",
	"institution_id":           "institution_id",
	"activity_id_(mip)":        "mip",
	"mip":                      "mip",
	"mip_era":                  "mip_era",
	"variant_label":            "variant_label",
	"model_id":                 "model_id",
	"start_date":               "start_date",
	"end_date":                 "end_date",
	"mass_data_class":          "mass_data_class",
	"mass_ensemble_member_id":  "mass_ensemble_member",
	"mass_ensemble_member":     "mass_ensemble_member",
	"model_workflow_id":        "model_workflow_id",
	"atmospheric_timestep":     "atmos_timestep",
	"atmos_timestep":           "atmos_timestep",
}

// ignoredLabels are form blocks that carry no metadata, like the issue-type
// selector the form template adds for routing.
var ignoredLabels = map[string]struct{}{
	"issue_type": {},
}

// displayLabels are the human-facing labels the issue form renders for each
// canonical field, used when synthesizing a form body.
var displayLabels = map[string]string{
	"base_date":             "Base date",
	"branch_method":         "Branch method",
	"branch_date_in_child":  "Child branch date",
	"branch_date_in_parent": "Parent branch date",
	"parent_experiment_id":  "Parent experiment ID",
	"parent_mip":            "Parent activity ID (MIP)",
	"parent_model_id":       "Parent model ID",
	"parent_time_units":     "Parent time units",
	"parent_variant_label":  "Parent variant label",
	"calendar":              "Calendar type",
	"experiment_id":         "Experiment ID",
	"institution_id":        "Institution ID",
	"mip":                   "Activity ID (MIP)",
	"mip_era":               "MIP era",
	"variant_label":         "Variant label",
	"model_id":              "Model ID",
	"start_date":            "Start date",
	"end_date":              "End date",
	"mass_data_class":       "Mass data class",
	"mass_ensemble_member":  "Mass ensemble member ID",
	"model_workflow_id":     "Model workflow ID",
	"atmos_timestep":        "Atmospheric timestep",
}

// DisplayLabel returns the form label for a canonical field name, falling
// back to the name itself for anything the form does not label.
func DisplayLabel(name string) string {
	if label, ok := displayLabels[name]; ok {
		return label
	}
	return name
}

func normalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
