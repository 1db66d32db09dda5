package schema

// declared is the complete field inventory. Order matters: it fixes the
// serialization order of persisted records and the order validation errors
// are reported in.
var declared = []FieldSpec{
	{Name: "base_date", Section: SectionMetadata, Requirement: Required, Format: FormatDatetime},
	{Name: "branch_method", Section: SectionMetadata, Requirement: Required, Format: FormatEnum, Enum: []string{"standard", "no parent"}},
	{Name: "branch_date_in_child", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatDatetime},
	{Name: "branch_date_in_parent", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatDatetime},
	{Name: "parent_experiment_id", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatFreeText},
	{Name: "parent_mip", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatFreeText},
	{Name: "parent_model_id", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatFreeText},
	{Name: "parent_time_units", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatFreeText},
	{Name: "parent_variant_label", Section: SectionMetadata, Requirement: ParentConditional, Format: FormatFreeText},
	{Name: "calendar", Section: SectionMetadata, Requirement: Required, Format: FormatEnum, Enum: CalendarValues},
	{Name: "experiment_id", Section: SectionMetadata, Requirement: Required, Format: FormatFreeText},
	{Name: "institution_id", Section: SectionMetadata, Requirement: Required, Format: FormatFreeText},
	{Name: "mip", Section: SectionMetadata, Requirement: Required, Format: FormatFreeText},
	{Name: "mip_era", Section: SectionMetadata, Requirement: Required, Format: FormatFreeText},
	{Name: "variant_label", Section: SectionMetadata, Requirement: Required, Format: FormatVariantLabel},
	{Name: "model_id", Section: SectionMetadata, Requirement: Required, Format: FormatFreeText},

	{Name: "start_date", Section: SectionData, Requirement: Required, Format: FormatDatetime},
	{Name: "end_date", Section: SectionData, Requirement: Required, Format: FormatDatetime},
	{Name: "mass_data_class", Section: SectionData, Requirement: Required, Format: FormatEnum, Enum: []string{"crum", "ens"}},
	{Name: "mass_ensemble_member", Section: SectionData, Requirement: EnsembleConditional, Format: FormatFreeText},
	{Name: "model_workflow_id", Section: SectionData, Requirement: Required, Format: FormatWorkflowID},

	{Name: "atmos_timestep", Section: SectionMisc, Requirement: Required, Format: FormatInteger},
}
