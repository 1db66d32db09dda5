package report

import (
	"strings"
	"testing"

	"github.com/ukncsp/simmeta/pkg/audit"
	"github.com/ukncsp/simmeta/pkg/validate"
)

func TestFeedbackSuccess(t *testing.T) {
	out, err := New().Feedback(nil)
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if !strings.Contains(out, "Validating issue form inputs...  SUCCESSFUL") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "WARNING") {
		t.Fatalf("success output carries warnings:\n%s", out)
	}
}

func TestFeedbackListsEveryError(t *testing.T) {
	errs := []validate.FieldError{
		{Field: "calendar", Code: validate.CodeBadCalendar, Message: validate.CalendarMessage},
		{Field: "end_date", Code: validate.CodeOrderViolation, Message: validate.OrderMessage},
	}
	out, err := New().Feedback(errs)
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if !strings.Contains(out, "Validating issue form inputs...  FAILED") {
		t.Fatalf("missing failure banner:\n%s", out)
	}
	if !strings.Contains(out, " - WARNING: "+validate.CalendarMessage) {
		t.Fatalf("missing calendar warning:\n%s", out)
	}
	if !strings.Contains(out, " - WARNING: "+validate.OrderMessage) {
		t.Fatalf("missing order warning:\n%s", out)
	}
}

func TestFeedbackStripsMarkup(t *testing.T) {
	errs := []validate.FieldError{{
		Field:   "model_id",
		Code:    validate.CodeBadFormat,
		Message: `Invalid model_id: <script>alert("x")</script>HadGEM3`,
	}}
	out, err := New().Feedback(errs)
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("markup survived sanitization:\n%s", out)
	}
	if !strings.Contains(out, "HadGEM3") {
		t.Fatalf("plain text lost in sanitization:\n%s", out)
	}
}

func TestAuditReportAllClear(t *testing.T) {
	out, err := New().AuditReport(nil)
	if err != nil {
		t.Fatalf("AuditReport: %v", err)
	}
	if !strings.Contains(out, "ALL FILES SUCCESSFULLY VALIDATED") {
		t.Fatalf("missing all-clear banner:\n%s", out)
	}
}

func TestAuditReportListsFindings(t *testing.T) {
	findings := []audit.Finding{
		{
			Stem: "ab-cd123",
			Errors: []validate.FieldError{
				{Field: "misc", Code: validate.CodeMissingSection, Message: "Missing section: [misc]"},
			},
		},
		{
			Stem: "a-bc456",
			Errors: []validate.FieldError{
				{Field: "calendar", Code: validate.CodeBadCalendar, Message: validate.CalendarMessage},
			},
		},
	}
	out, err := New().AuditReport(findings)
	if err != nil {
		t.Fatalf("AuditReport: %v", err)
	}
	for _, want := range []string{
		"FILE VALIDATION FAILURE REPORT:",
		"FILE: ab-cd123",
		"--> ERROR: misc",
		"--> Missing section: [misc]",
		"FILE: a-bc456",
		"--> ERROR: calendar",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ALL FILES SUCCESSFULLY VALIDATED") {
		t.Fatalf("all-clear banner present alongside findings:\n%s", out)
	}
}
