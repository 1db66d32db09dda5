// Package report renders validation output for the external collaborators
// that deliver it: the feedback comment posted back to a submitter and the
// failure report the scheduled audit hands to its notifier. Raw submitted
// text is stripped of markup before it reaches either surface.
package report

import (
	"embed"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/ukncsp/simmeta/pkg/audit"
	"github.com/ukncsp/simmeta/pkg/validate"
)

//go:embed templates/*.tpl
var templateFS embed.FS

// Renderer renders report text from embedded templates. Safe for concurrent
// use; templates are compiled once and cached.
type Renderer struct {
	mu     sync.Mutex
	set    *pongo2.TemplateSet
	cache  map[string]*pongo2.Template
	policy *bluemonday.Policy
}

// New builds a Renderer over the embedded template set.
func New() *Renderer {
	return &Renderer{
		set:    pongo2.NewSet("simmeta", pongo2.NewFSLoader(templateFS)),
		cache:  make(map[string]*pongo2.Template),
		policy: bluemonday.StrictPolicy(),
	}
}

// Feedback renders the submitter-facing comment body for a validation run.
// An empty error list renders the success variant.
func (r *Renderer) Feedback(errs []validate.FieldError) (string, error) {
	status := "SUCCESSFUL"
	if len(errs) > 0 {
		status = "FAILED"
	}
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, r.sanitize(err.Message))
	}
	return r.render("templates/feedback.tpl", pongo2.Context{
		"status": status,
		"lines":  lines,
	})
}

// AuditReport renders the corpus failure report consumed by the audit
// notifier. No findings renders the all-clear variant.
func (r *Renderer) AuditReport(findings []audit.Finding) (string, error) {
	items := make([]map[string]any, 0, len(findings))
	for _, finding := range findings {
		errs := make([]map[string]any, 0, len(finding.Errors))
		for _, err := range finding.Errors {
			errs = append(errs, map[string]any{
				"field":   r.sanitize(err.Field),
				"message": r.sanitize(err.Message),
			})
		}
		items = append(items, map[string]any{
			"stem":   r.sanitize(finding.Stem),
			"errors": errs,
		})
	}
	return r.render("templates/audit.tpl", pongo2.Context{"findings": items})
}

func (r *Renderer) render(name string, ctx pongo2.Context) (string, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("report: execute %s: %w", name, err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("report: load template %s: %w", name, err)
	}
	r.cache[name] = tmpl
	return tmpl, nil
}

// sanitize strips markup from user-supplied text and restores entity-escaped
// characters so plain values pass through unchanged.
func (r *Renderer) sanitize(raw string) string {
	return html.UnescapeString(strings.TrimSpace(r.policy.Sanitize(raw)))
}
