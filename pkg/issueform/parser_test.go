package issueform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ukncsp/simmeta/pkg/record"
)

func TestParseLabelledBlocks(t *testing.T) {
	body := "### Calendar type\n\n360_day\n\n" +
		"### Model workflow ID\n\nab-cd123\n\n" +
		"### Atmospheric timestep\n\n1200\n"

	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := sub.Value("calendar"); got != "360_day" {
		t.Fatalf("calendar = %q", got)
	}
	if got := sub.Value("model_workflow_id"); got != "ab-cd123" {
		t.Fatalf("model_workflow_id = %q", got)
	}
	if got := sub.Value("atmos_timestep"); got != "1200" {
		t.Fatalf("atmos_timestep = %q", got)
	}
	// Fields the body never mentioned are present and blank.
	if !sub.Blank("base_date") {
		t.Fatalf("base_date = %q, want blank", sub.Value("base_date"))
	}
}

func TestParseNormalizesPlaceholder(t *testing.T) {
	body := "### Mass ensemble member ID\n\n_No response_\n\n### Mass data class\n\ncrum\n"

	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !sub.Blank("mass_ensemble_member") {
		t.Fatalf("placeholder not normalized: %q", sub.Value("mass_ensemble_member"))
	}
	if got := sub.Value("mass_data_class"); got != "crum" {
		t.Fatalf("mass_data_class = %q", got)
	}
}

func TestParseKeepsUnknownLabels(t *testing.T) {
	body := "### Calendar type\n\ngregorian\n\n### Favourite colour\n\nblue\n"

	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []record.UnknownField{{Label: "Favourite colour", Value: "blue"}}
	if diff := cmp.Diff(want, sub.Unknown); diff != "" {
		t.Fatalf("unknown labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSkipsIssueTypeBlock(t *testing.T) {
	body := "### Issue type\n\nNew workflow\n\n### Calendar type\n\ngregorian\n"

	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sub.Unknown) != 0 {
		t.Fatalf("issue type surfaced as unknown: %+v", sub.Unknown)
	}
}

func TestParseAliasesFormLabels(t *testing.T) {
	body := "### Child branch date\n\n1850-01-01\n\n" +
		"### Parent activity ID (MIP)\n\nCMIP\n\n" +
		"### Activity ID (MIP)\n\nScenarioMIP\n"

	sub, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := sub.Value("branch_date_in_child"); got != "1850-01-01" {
		t.Fatalf("branch_date_in_child = %q", got)
	}
	if got := sub.Value("parent_mip"); got != "CMIP" {
		t.Fatalf("parent_mip = %q", got)
	}
	if got := sub.Value("mip"); got != "ScenarioMIP" {
		t.Fatalf("mip = %q", got)
	}
}

func TestParseRejectsBodyWithoutBlocks(t *testing.T) {
	_, err := Parse("just some prose with no headings")
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("err = %v, want ErrNoFields", err)
	}
}

func TestComposeParseRoundTrip(t *testing.T) {
	values := map[string]string{
		"base_date":         "1850-01-01",
		"branch_method":     "no parent",
		"calendar":          "360_day",
		"experiment_id":     "historical",
		"institution_id":    "MOHC",
		"mip":               "CMIP",
		"mip_era":           "CMIP6",
		"variant_label":     "r1i1p1f2",
		"model_id":          "UKESM1-0-LL",
		"start_date":        "1850-01-01",
		"end_date":          "2014-12-30",
		"mass_data_class":   "crum",
		"model_workflow_id": "ab-cd123",
		"atmos_timestep":    "1200",
	}

	sub, err := Parse(Compose(values))
	if err != nil {
		t.Fatalf("Parse(Compose): %v", err)
	}

	want := record.New()
	for name, value := range values {
		if err := want.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	if diff := cmp.Diff(want.Values, sub.Values); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	if len(sub.Unknown) != 0 {
		t.Fatalf("round trip produced unknown labels: %+v", sub.Unknown)
	}
}

func TestParserCustomPlaceholder(t *testing.T) {
	p := NewParser(WithPlaceholder("<empty>"))
	sub, err := p.Parse("### Calendar type\n\n<empty>\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !sub.Blank("calendar") {
		t.Fatalf("custom placeholder not normalized: %q", sub.Value("calendar"))
	}
}
