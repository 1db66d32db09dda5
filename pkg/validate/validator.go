// Package validate applies the schema and cross-field rules to a submission.
// Every rule runs on every call and every violation is reported; there is no
// fail-fast path, so the submitter sees all problems in one pass. Validation
// is a pure function of the record: identical input yields an identical,
// identically ordered error list.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukncsp/simmeta/internal/isodate"
	"github.com/ukncsp/simmeta/pkg/record"
	"github.com/ukncsp/simmeta/pkg/schema"
)

// CalendarMessage is the exact text rendered for a rejected calendar value.
const CalendarMessage = "Incompatible calendar: expected 360_day or gregorian"

// OrderMessage is the exact text rendered when end_date precedes start_date.
const OrderMessage = "End date cannot be earlier than start date"

var (
	defaultWorkflowID = regexp.MustCompile(schema.WorkflowIDPattern)
	variantLabel      = regexp.MustCompile(schema.VariantLabelPattern)
)

// Validator holds the configurable pieces of the rule set. The zero-cost
// default accepts the canonical workflow id pattern.
type Validator struct {
	workflowID *regexp.Regexp
}

// Option configures a Validator.
type Option func(*Validator)

// WithWorkflowIDPattern replaces the accepted model_workflow_id pattern.
func WithWorkflowIDPattern(re *regexp.Regexp) Option {
	return func(v *Validator) {
		if re != nil {
			v.workflowID = re
		}
	}
}

// New builds a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{workflowID: defaultWorkflowID}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate runs the full rule set against a submission. Errors are ordered by
// field declaration order, presence before format within a field, with the
// cross-field date ordering rule and unknown labels reported last.
func (v *Validator) Validate(sub record.Submission) []FieldError {
	var errs []FieldError
	for _, spec := range schema.Fields() {
		errs = append(errs, checkPresence(sub, spec)...)
		errs = append(errs, v.checkFormat(sub, spec)...)
	}
	errs = append(errs, checkDateOrder(sub)...)
	for _, unknown := range sub.Unknown {
		if unknown.Value == "" {
			continue
		}
		errs = append(errs, FieldError{
			Field:   unknown.Label,
			Code:    CodeUnexpectedField,
			Message: fmt.Sprintf("Unknown field: %s", unknown.Label),
		})
	}
	return errs
}

// Accept validates a submission and, when it is clean, seals it into a
// canonical record. Exactly one of the return values is meaningful.
func (v *Validator) Accept(sub record.Submission) (record.Canonical, []FieldError) {
	if errs := v.Validate(sub); len(errs) > 0 {
		return record.Canonical{}, errs
	}
	return record.Seal(sub), nil
}

// Validate runs the default rule set.
func Validate(sub record.Submission) []FieldError {
	return New().Validate(sub)
}

func checkPresence(sub record.Submission, spec schema.FieldSpec) []FieldError {
	switch spec.Requirement {
	case schema.Required:
		if sub.Blank(spec.Name) {
			return []FieldError{missing(spec.Name)}
		}
	case schema.ParentConditional:
		switch sub.Value("branch_method") {
		case "standard":
			if sub.Blank(spec.Name) {
				return []FieldError{{
					Field:   spec.Name,
					Code:    CodeMissingParentField,
					Message: fmt.Sprintf("Missing required parent field: %s", spec.Name),
				}}
			}
		case "no parent":
			if !sub.Blank(spec.Name) {
				return []FieldError{{
					Field:   spec.Name,
					Code:    CodeUnexpectedField,
					Message: fmt.Sprintf("Unexpected field: %s must be blank when branch_method is no parent", spec.Name),
				}}
			}
		}
	case schema.EnsembleConditional:
		switch sub.Value("mass_data_class") {
		case "ens":
			if sub.Blank(spec.Name) {
				return []FieldError{{
					Field:   spec.Name,
					Code:    CodeMissingField,
					Message: fmt.Sprintf("Missing required field: %s (required when mass_data_class is ens)", spec.Name),
				}}
			}
		case "crum":
			if !sub.Blank(spec.Name) {
				return []FieldError{{
					Field:   spec.Name,
					Code:    CodeUnexpectedField,
					Message: fmt.Sprintf("Unexpected field: %s must be blank when mass_data_class is crum", spec.Name),
				}}
			}
		}
	}
	return nil
}

func (v *Validator) checkFormat(sub record.Submission, spec schema.FieldSpec) []FieldError {
	value := sub.Value(spec.Name)
	if value == "" {
		return nil
	}

	switch spec.Format {
	case schema.FormatEnum:
		if contains(spec.Enum, value) {
			return nil
		}
		if spec.Name == "calendar" {
			return []FieldError{{Field: spec.Name, Code: CodeBadCalendar, Message: CalendarMessage}}
		}
		return []FieldError{{
			Field:   spec.Name,
			Code:    CodeBadFormat,
			Message: fmt.Sprintf("Invalid %s: expected %s", spec.Name, strings.Join(spec.Enum, " or ")),
		}}
	case schema.FormatDatetime:
		if _, err := isodate.Parse(value); err != nil {
			return []FieldError{{
				Field:   spec.Name,
				Code:    CodeBadDatetime,
				Message: fmt.Sprintf("Invalid datetime for %s: %v", spec.Name, err),
			}}
		}
	case schema.FormatInteger:
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return []FieldError{{
				Field:   spec.Name,
				Code:    CodeBadRange,
				Message: fmt.Sprintf("Invalid %s: %q is not a strictly positive integer", spec.Name, value),
			}}
		}
	case schema.FormatWorkflowID:
		if !v.workflowID.MatchString(value) {
			return []FieldError{{
				Field:   spec.Name,
				Code:    CodeBadFormat,
				Message: fmt.Sprintf("Invalid %s: expected format a-bc123 or ab-cd123", spec.Name),
			}}
		}
	case schema.FormatVariantLabel:
		if !variantLabel.MatchString(value) {
			return []FieldError{{
				Field:   spec.Name,
				Code:    CodeBadFormat,
				Message: fmt.Sprintf("Invalid %s: expected format r<int>i<int>p<int>f<int>", spec.Name),
			}}
		}
	}
	return nil
}

// checkDateOrder compares the resolved bounds of start_date and end_date.
// A truncated start resolves to its earliest instant and a truncated end to
// its latest, so the rule only fires when no reading of the two values could
// put the end at or after the start.
func checkDateOrder(sub record.Submission) []FieldError {
	start, err := isodate.Parse(sub.Value("start_date"))
	if err != nil {
		return nil
	}
	end, err := isodate.Parse(sub.Value("end_date"))
	if err != nil {
		return nil
	}
	if end.Latest().Before(start.Earliest()) {
		return []FieldError{{Field: "end_date", Code: CodeOrderViolation, Message: OrderMessage}}
	}
	return nil
}

func missing(name string) FieldError {
	return FieldError{
		Field:   name,
		Code:    CodeMissingField,
		Message: fmt.Sprintf("Missing required field: %s", name),
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
