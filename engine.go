// Package simmeta turns free-text workflow-metadata submissions into
// canonical persisted configuration records and keeps the persisted corpus
// consistent over time. The root package is a thin facade: it wires the form
// parser, the validator, the cfg store, and the report renderer into the two
// entry points the external orchestration calls, Submit and Audit.
package simmeta

import (
	"fmt"
	"regexp"

	"github.com/ukncsp/simmeta/internal/config"
	"github.com/ukncsp/simmeta/pkg/audit"
	"github.com/ukncsp/simmeta/pkg/issueform"
	"github.com/ukncsp/simmeta/pkg/report"
	"github.com/ukncsp/simmeta/pkg/store"
	"github.com/ukncsp/simmeta/pkg/validate"
)

// Engine is the assembled validation-and-canonicalization pipeline.
type Engine struct {
	parser    *issueform.Parser
	validator *validate.Validator
	store     *store.Store
	reports   *report.Renderer
}

type settings struct {
	configPath  string
	corpusDir   string
	pattern     string
	placeholder string
}

// Option overrides engine settings after the config file is applied.
type Option func(*settings)

// WithConfigFile points the engine at a specific settings file.
func WithConfigFile(path string) Option {
	return func(s *settings) { s.configPath = path }
}

// WithCorpusDir overrides the persisted corpus directory.
func WithCorpusDir(dir string) Option {
	return func(s *settings) { s.corpusDir = dir }
}

// WithWorkflowIDPattern overrides the accepted model_workflow_id pattern.
func WithWorkflowIDPattern(pattern string) Option {
	return func(s *settings) { s.pattern = pattern }
}

// WithPlaceholder overrides the blank-field placeholder string.
func WithPlaceholder(placeholder string) Option {
	return func(s *settings) { s.placeholder = placeholder }
}

// New assembles an Engine from the optional settings file plus overrides.
func New(opts ...Option) (*Engine, error) {
	var s settings
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, err
	}
	if s.corpusDir != "" {
		cfg.CorpusDir = s.corpusDir
	}
	if s.pattern != "" {
		cfg.WorkflowIDPattern = s.pattern
	}
	if s.placeholder != "" {
		cfg.Placeholder = s.placeholder
	}

	var validatorOpts []validate.Option
	if cfg.WorkflowIDPattern != "" {
		re, err := regexp.Compile(cfg.WorkflowIDPattern)
		if err != nil {
			return nil, fmt.Errorf("simmeta: workflow id pattern: %w", err)
		}
		validatorOpts = append(validatorOpts, validate.WithWorkflowIDPattern(re))
	}

	var parserOpts []issueform.Option
	var storeOpts []store.Option
	if cfg.Placeholder != "" {
		parserOpts = append(parserOpts, issueform.WithPlaceholder(cfg.Placeholder))
		storeOpts = append(storeOpts, store.WithPlaceholder(cfg.Placeholder))
	}

	return &Engine{
		parser:    issueform.NewParser(parserOpts...),
		validator: validate.New(validatorOpts...),
		store:     store.New(cfg.CorpusDir, storeOpts...),
		reports:   report.New(),
	}, nil
}

// SubmissionResult reports one pass through the submission path.
type SubmissionResult struct {
	// Accepted is true when validation produced no errors and the record
	// was persisted.
	Accepted bool
	// Stem and Path identify the persisted record when Accepted.
	Stem string
	Path string
	// Errors holds every violation, in rule order, when not Accepted.
	Errors []validate.FieldError
	// Feedback is the rendered comment body for the submitter.
	Feedback string
}

// Submit parses a form body, validates it, and persists the canonical record
// when it is clean. A body with no recognizable field blocks fails before
// validation with a single catch-all error.
func (e *Engine) Submit(body string) (SubmissionResult, error) {
	sub, err := e.parser.Parse(body)
	if err != nil {
		return SubmissionResult{}, err
	}

	rec, errs := e.validator.Accept(sub)
	feedback, renderErr := e.reports.Feedback(errs)
	if renderErr != nil {
		return SubmissionResult{}, renderErr
	}
	if len(errs) > 0 {
		return SubmissionResult{Errors: errs, Feedback: feedback}, nil
	}

	path, err := e.store.Write(rec)
	if err != nil {
		return SubmissionResult{}, err
	}
	return SubmissionResult{Accepted: true, Stem: rec.Stem(), Path: path, Feedback: feedback}, nil
}

// AuditResult reports one pass through the audit path.
type AuditResult struct {
	// Findings lists the persisted records that no longer validate.
	Findings []audit.Finding
	// Report is the rendered failure report for the notifier.
	Report string
}

// Audit re-validates every persisted record and renders the failure report.
// It never mutates the corpus.
func (e *Engine) Audit() (AuditResult, error) {
	findings, err := audit.Run(e.store, e.validator)
	if err != nil {
		return AuditResult{}, err
	}
	rendered, err := e.reports.AuditReport(findings)
	if err != nil {
		return AuditResult{}, err
	}
	return AuditResult{Findings: findings, Report: rendered}, nil
}

// Store exposes the engine's corpus store, mainly for read-only callers.
func (e *Engine) Store() *store.Store {
	return e.store
}
