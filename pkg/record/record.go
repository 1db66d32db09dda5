// Package record holds the submission and canonical record types that flow
// between the parser, the validator, and the store.
package record

import (
	"github.com/ukncsp/simmeta/pkg/schema"
)

// UnknownField preserves a labelled block from the input body whose label
// does not map to any declared field. The validator decides whether it is
// worth reporting; the parser never drops it silently.
type UnknownField struct {
	Label string
	Value string
}

// Submission maps every declared field name to its raw, trimmed value. A
// field absent from the input is represented as an empty string, never as a
// missing key, so the key set of Values is always exactly schema.Names().
type Submission struct {
	Values  map[string]string
	Unknown []UnknownField
}

// New returns a Submission with every declared field present and blank.
func New() Submission {
	values := make(map[string]string, len(schema.Names()))
	for _, name := range schema.Names() {
		values[name] = ""
	}
	return Submission{Values: values}
}

// Set stores a value for a declared field.
func (s Submission) Set(name, value string) error {
	if !schema.Declared(name) {
		return &schema.UnknownFieldError{Name: name}
	}
	s.Values[name] = value
	return nil
}

// Value returns the raw value of a declared field; undeclared names read as
// blank.
func (s Submission) Value(name string) string {
	return s.Values[name]
}

// Blank reports whether the field carries no value.
func (s Submission) Blank(name string) bool {
	return s.Values[name] == ""
}

// AddUnknown records a labelled block that matched no declared field.
func (s *Submission) AddUnknown(label, value string) {
	s.Unknown = append(s.Unknown, UnknownField{Label: label, Value: value})
}

// Clone returns an independent copy of the submission.
func (s Submission) Clone() Submission {
	out := Submission{Values: make(map[string]string, len(s.Values))}
	for name, value := range s.Values {
		out.Values[name] = value
	}
	out.Unknown = append(out.Unknown, s.Unknown...)
	return out
}

// Canonical is a submission that has passed validation and is safe to
// persist. Only the validator mints these; see validate.Accept.
type Canonical struct {
	Submission
}

// Seal wraps a validated submission. It lives here so the store can depend on
// the type without importing the validator; callers outside the validator
// should not need it.
func Seal(sub Submission) Canonical {
	return Canonical{Submission: sub.Clone()}
}

// WorkflowID returns the record's identity key.
func (c Canonical) WorkflowID() string {
	return c.Value("model_workflow_id")
}

// Stem is the persisted filename stem: the workflow id, extended with the
// ensemble member for mass data class "ens" so ensemble runs sharing a
// workflow id persist side by side.
func (c Canonical) Stem() string {
	id := c.WorkflowID()
	if c.Value("mass_data_class") == "ens" {
		if member := c.Value("mass_ensemble_member"); member != "" {
			return id + "-" + member
		}
	}
	return id
}
