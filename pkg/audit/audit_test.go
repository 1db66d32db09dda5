package audit_test

import (
	"os"
	"strings"
	"testing"

	"github.com/ukncsp/simmeta/pkg/audit"
	"github.com/ukncsp/simmeta/pkg/store"
	"github.com/ukncsp/simmeta/pkg/testsupport"
	"github.com/ukncsp/simmeta/pkg/validate"
)

func writeRecord(t *testing.T, st *store.Store, overrides map[string]string) string {
	t.Helper()

	rec, errs := validate.New().Accept(testsupport.Submission(t, overrides))
	if len(errs) != 0 {
		t.Fatalf("fixture invalid: %v", errs)
	}
	path, err := st.Write(rec)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	return path
}

func TestRunCleanCorpus(t *testing.T) {
	st := store.New(t.TempDir())
	writeRecord(t, st, nil)
	writeRecord(t, st, map[string]string{"model_workflow_id": "u-ax001"})

	findings, err := audit.Run(st, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("clean corpus produced findings: %+v", findings)
	}
}

func TestRunReportsStructurallyDamagedRecord(t *testing.T) {
	st := store.New(t.TempDir())
	writeRecord(t, st, map[string]string{"model_workflow_id": "a-aa001"})
	writeRecord(t, st, map[string]string{"model_workflow_id": "a-bb002"})
	broken := writeRecord(t, st, map[string]string{"model_workflow_id": "a-cc003"})

	data, err := os.ReadFile(broken)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	truncated := string(data)[:strings.Index(string(data), "[misc]")]
	if err := os.WriteFile(broken, []byte(truncated), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	findings, err := audit.Run(st, validate.New())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %+v", len(findings), findings)
	}
	if findings[0].Stem != "a-cc003" {
		t.Fatalf("finding stem = %q", findings[0].Stem)
	}
	if len(findings[0].Errors) != 1 || !findings[0].Errors[0].Code.Structural() {
		t.Fatalf("expected one structural error, got %+v", findings[0].Errors)
	}
}

func TestRunReportsSemanticRegression(t *testing.T) {
	st := store.New(t.TempDir())
	regressed := writeRecord(t, st, map[string]string{"model_workflow_id": "a-dd004"})

	// A later rule change or hand edit can leave a persisted record
	// invalid under the current rules; simulate the hand edit.
	data, err := os.ReadFile(regressed)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doctored := strings.Replace(string(data), "calendar = 360_day", "calendar = julian", 1)
	if err := os.WriteFile(regressed, []byte(doctored), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	findings, err := audit.Run(st, validate.New())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %+v", findings)
	}
	errs := findings[0].Errors
	if len(errs) != 1 || errs[0].Code != validate.CodeBadCalendar {
		t.Fatalf("expected BAD_CALENDAR, got %+v", errs)
	}
}

func TestRunNeverMutatesCorpus(t *testing.T) {
	st := store.New(t.TempDir())
	path := writeRecord(t, st, nil)

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := audit.Run(st, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("audit rewrote a persisted record")
	}
}
