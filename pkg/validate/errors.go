package validate

import "fmt"

// Code classifies a single validation failure. Field-semantic codes come from
// the submission rules; the structural codes are produced only on the audit
// path when a persisted file is malformed.
type Code string

const (
	CodeMissingField       Code = "MISSING_FIELD"
	CodeMissingParentField Code = "MISSING_PARENT_FIELD"
	CodeUnexpectedField    Code = "UNEXPECTED_FIELD"
	CodeBadFormat          Code = "BAD_FORMAT"
	CodeBadCalendar        Code = "BAD_CALENDAR"
	CodeBadDatetime        Code = "BAD_DATETIME"
	CodeBadRange           Code = "BAD_RANGE"
	CodeOrderViolation     Code = "ORDER_VIOLATION"

	CodeMissingSection    Code = "MISSING_SECTION"
	CodeUnexpectedSection Code = "UNEXPECTED_SECTION"
	CodeMissingKey        Code = "MISSING_KEY"
	CodeUnexpectedKey     Code = "UNEXPECTED_KEY"
)

// Structural reports whether the code describes file-shape damage rather
// than a field-value problem.
func (c Code) Structural() bool {
	switch c {
	case CodeMissingSection, CodeUnexpectedSection, CodeMissingKey, CodeUnexpectedKey:
		return true
	default:
		return false
	}
}

// FieldError is one reported violation. Message is written to be rendered
// verbatim to the submitter, so it always names the field or the reason.
type FieldError struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
