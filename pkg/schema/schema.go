// Package schema declares the fixed workflow-metadata field schema: which
// fields exist, which of the three record sections each belongs to, whether a
// field is required (unconditionally or conditionally), and which format rule
// applies to its value. The schema is fixed by the domain, so it is declared
// as typed data rather than loaded from a document.
package schema

import "fmt"

// Section identifies one of the three groups a persisted record is split into.
type Section string

const (
	SectionMetadata Section = "metadata"
	SectionData     Section = "data"
	SectionMisc     Section = "misc"
)

// Sections returns the record sections in their canonical serialization order.
func Sections() []Section {
	return []Section{SectionMetadata, SectionData, SectionMisc}
}

// Requirement is the tagged presence rule attached to a field. Conditional
// variants dispatch on the value of their controlling field at validation
// time instead of encoding nested branching in the schema itself.
type Requirement string

const (
	// Required fields must always carry a non-blank value.
	Required Requirement = "required"
	// Optional fields may be blank without comment.
	Optional Requirement = "optional"
	// ParentConditional fields are required when branch_method is
	// "standard" and must be blank when it is "no parent".
	ParentConditional Requirement = "parent-conditional"
	// EnsembleConditional fields are required when mass_data_class is
	// "ens" and must be blank when it is "crum".
	EnsembleConditional Requirement = "ensemble-conditional"
)

// Format names the value-format rule a field is checked against.
type Format string

const (
	FormatFreeText     Format = "free-text"
	FormatEnum         Format = "enum"
	FormatDatetime     Format = "datetime"
	FormatInteger      Format = "integer"
	FormatWorkflowID   Format = "workflow-id"
	FormatVariantLabel Format = "variant-label"
)

// Accepted value patterns, exported so the exact shapes the engine enforces
// are visible and tested rather than buried in the validator.
const (
	// WorkflowIDPattern accepts both documented workflow id shapes,
	// a-bc123 and ab-cd123. Overridable via engine configuration.
	WorkflowIDPattern = `^[a-z]{1,2}-[a-z]{2}\d{3}$`
	// VariantLabelPattern is the CMIP r<int>i<int>p<int>f<int> label; the
	// initialization group may carry a single a-e suffix.
	VariantLabelPattern = `^(r\d+)(i\d+[a-e]?)(p\d+)(f\d+)$`
)

// CalendarValues are the only calendars the engine accepts, compared exactly
// with no normalization.
var CalendarValues = []string{"360_day", "gregorian"}

// FieldSpec describes a single declared field.
type FieldSpec struct {
	Name        string
	Section     Section
	Requirement Requirement
	Format      Format
	// Enum holds the accepted values for FormatEnum fields.
	Enum []string
}

// UnknownFieldError reports a lookup for a name the schema does not declare.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("schema: unknown field %q", e.Name)
}

// Fields returns every declared field in declaration order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(declared))
	copy(out, declared)
	return out
}

// FieldsForSection returns the declared fields of one section, in order.
func FieldsForSection(section Section) []FieldSpec {
	var out []FieldSpec
	for _, spec := range declared {
		if spec.Section == section {
			out = append(out, spec)
		}
	}
	return out
}

// SpecFor looks up a field by its canonical name.
func SpecFor(name string) (FieldSpec, error) {
	spec, ok := byName[name]
	if !ok {
		return FieldSpec{}, &UnknownFieldError{Name: name}
	}
	return spec, nil
}

// Declared reports whether name is a declared field.
func Declared(name string) bool {
	_, ok := byName[name]
	return ok
}

// Names returns every declared field name in declaration order.
func Names() []string {
	out := make([]string, len(declared))
	for i, spec := range declared {
		out[i] = spec.Name
	}
	return out
}

// ParentFields returns the names of the fields whose presence depends on
// branch_method, in declaration order.
func ParentFields() []string {
	var out []string
	for _, spec := range declared {
		if spec.Requirement == ParentConditional {
			out = append(out, spec.Name)
		}
	}
	return out
}

// DatetimeFields returns the names of the fields carrying ISO 8601 values.
func DatetimeFields() []string {
	var out []string
	for _, spec := range declared {
		if spec.Format == FormatDatetime {
			out = append(out, spec.Name)
		}
	}
	return out
}

var byName = func() map[string]FieldSpec {
	m := make(map[string]FieldSpec, len(declared))
	for _, spec := range declared {
		m[spec.Name] = spec
	}
	return m
}()
