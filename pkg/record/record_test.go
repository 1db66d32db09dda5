package record

import (
	"errors"
	"testing"

	"github.com/ukncsp/simmeta/pkg/schema"
)

func TestNewDeclaresEveryField(t *testing.T) {
	sub := New()
	if len(sub.Values) != len(schema.Names()) {
		t.Fatalf("submission carries %d keys, schema declares %d", len(sub.Values), len(schema.Names()))
	}
	for _, name := range schema.Names() {
		if _, ok := sub.Values[name]; !ok {
			t.Errorf("declared field %s missing from new submission", name)
		}
		if !sub.Blank(name) {
			t.Errorf("declared field %s not blank in new submission", name)
		}
	}
}

func TestSetRejectsUndeclaredField(t *testing.T) {
	sub := New()
	err := sub.Set("not_a_field", "x")
	var unknown *schema.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownFieldError", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	sub := New()
	if err := sub.Set("model_id", "UKESM1-0-LL"); err != nil {
		t.Fatalf("set: %v", err)
	}
	sub.AddUnknown("Extra", "x")

	clone := sub.Clone()
	if err := clone.Set("model_id", "HadGEM3"); err != nil {
		t.Fatalf("set clone: %v", err)
	}
	if sub.Value("model_id") != "UKESM1-0-LL" {
		t.Fatalf("clone mutation leaked: %q", sub.Value("model_id"))
	}
	if len(clone.Unknown) != 1 {
		t.Fatalf("clone lost unknown labels: %+v", clone.Unknown)
	}
}

func TestStem(t *testing.T) {
	cases := []struct {
		name   string
		class  string
		member string
		want   string
	}{
		{"crum", "crum", "", "ab-cd123"},
		{"crum ignores member", "crum", "r001", "ab-cd123"},
		{"ens with member", "ens", "r001", "ab-cd123-r001"},
		{"ens without member", "ens", "", "ab-cd123"},
	}
	for _, tc := range cases {
		sub := New()
		sub.Values["model_workflow_id"] = "ab-cd123"
		sub.Values["mass_data_class"] = tc.class
		sub.Values["mass_ensemble_member"] = tc.member

		if got := Seal(sub).Stem(); got != tc.want {
			t.Errorf("%s: stem = %q, want %q", tc.name, got, tc.want)
		}
	}
}
