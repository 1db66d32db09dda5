// Package issueform extracts field values from the rendered issue-form body.
// The body is semi-structured text where each field appears as a "### Label"
// heading followed by its value; blank fields render as a literal placeholder
// that must normalize to empty. Extraction is format-agnostic: values are
// trimmed and carried verbatim, and nothing here validates them.
package issueform

import (
	"errors"
	"strings"

	"github.com/ukncsp/simmeta/pkg/record"
)

// DefaultPlaceholder is the string the form platform renders for a field the
// submitter left empty.
const DefaultPlaceholder = "_No response_"

// ErrNoFields reports a body with no labelled blocks at all; there is nothing
// field-level to validate, so parsing short-circuits with this single error.
var ErrNoFields = errors.New("issueform: no labelled field blocks found in body")

const headingPrefix = "### "

// Parser extracts submissions from form bodies.
type Parser struct {
	placeholder string
}

// Option configures a Parser.
type Option func(*Parser)

// WithPlaceholder overrides the blank-field placeholder string.
func WithPlaceholder(placeholder string) Option {
	return func(p *Parser) {
		if placeholder != "" {
			p.placeholder = placeholder
		}
	}
}

// NewParser builds a Parser with the platform's default placeholder.
func NewParser(opts ...Option) *Parser {
	p := &Parser{placeholder: DefaultPlaceholder}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Parse extracts a submission from a form body. Labels that map to no
// declared field are kept on the submission as unknown entries for the
// validator; they are never silently dropped. Labels the form adds for its
// own routing (issue type) are skipped.
func (p *Parser) Parse(body string) (record.Submission, error) {
	sub := record.New()

	lines := strings.Split(body, "\n")
	label := ""
	var value []string
	found := false

	flush := func() {
		if label == "" {
			return
		}
		p.assign(&sub, label, strings.TrimSpace(strings.Join(value, "\n")))
	}

	for _, line := range lines {
		if strings.HasPrefix(line, headingPrefix) {
			flush()
			label = strings.TrimSpace(strings.TrimPrefix(line, headingPrefix))
			value = value[:0]
			found = true
			continue
		}
		if label != "" {
			value = append(value, line)
		}
	}
	flush()

	if !found {
		return record.Submission{}, ErrNoFields
	}
	return sub, nil
}

func (p *Parser) assign(sub *record.Submission, label, value string) {
	if value == p.placeholder {
		value = ""
	}

	normalized := normalizeLabel(label)
	if _, skip := ignoredLabels[normalized]; skip {
		return
	}
	if name, ok := aliases[normalized]; ok {
		sub.Values[name] = value
		return
	}
	sub.AddUnknown(label, value)
}

// Parse extracts a submission using the default parser configuration.
func Parse(body string) (record.Submission, error) {
	return NewParser().Parse(body)
}
