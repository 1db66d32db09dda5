// Package store persists canonical records as flat cfg files, one per
// filename stem, with the fixed [metadata]/[data]/[misc] section layout.
// Writes are atomic from the caller's perspective: the file appears under its
// final name fully written or not at all. Reads re-check the file's structure
// and normalize the blank-field placeholder exactly like the form parser, so
// a persisted record round-trips into the same submission it was written
// from.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/ukncsp/simmeta/pkg/issueform"
	"github.com/ukncsp/simmeta/pkg/record"
	"github.com/ukncsp/simmeta/pkg/schema"
	"github.com/ukncsp/simmeta/pkg/validate"
)

// Extension is the persisted file suffix.
const Extension = ".cfg"

// ErrNotFound reports a read for a stem with no persisted record.
var ErrNotFound = errors.New("store: record not found")

func init() {
	// Keep the plain "key = value" layout of the corpus instead of ini's
	// column-aligned padding.
	ini.PrettyFormat = false
	ini.PrettyEqual = true
}

// StructuralError reports a persisted file whose shape no longer matches the
// schema: missing or unexpected sections or keys. It is fatal to that record;
// no partial recovery is attempted.
type StructuralError struct {
	Stem   string
	Errors []validate.FieldError
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("store: %s%s has %d structural error(s)", e.Stem, Extension, len(e.Errors))
}

// Store reads and writes the persisted corpus under one directory.
type Store struct {
	dir         string
	placeholder string
}

// Option configures a Store.
type Option func(*Store)

// WithPlaceholder overrides the blank-field placeholder normalized on read.
func WithPlaceholder(placeholder string) Option {
	return func(s *Store) {
		if placeholder != "" {
			s.placeholder = placeholder
		}
	}
}

// New builds a Store over dir. The directory is created lazily on first
// write, so a read-only caller never touches the filesystem layout.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, placeholder: issueform.DefaultPlaceholder}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Dir returns the corpus directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path a stem persists under.
func (s *Store) Path(stem string) string {
	return filepath.Join(s.dir, stem+Extension)
}

// Write persists a canonical record under its stem, replacing any previous
// record with the same stem. The record lands via a same-directory temp file
// and rename so no partial file is ever observable under the final name.
func (s *Store) Write(rec record.Canonical) (string, error) {
	stem := rec.Stem()
	if stem == "" {
		return "", errors.New("store: record has no model_workflow_id")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("store: create corpus dir: %w", err)
	}

	file := ini.Empty()
	for _, section := range schema.Sections() {
		sec, err := file.NewSection(string(section))
		if err != nil {
			return "", fmt.Errorf("store: section %s: %w", section, err)
		}
		for _, spec := range schema.FieldsForSection(section) {
			if _, err := sec.NewKey(spec.Name, rec.Value(spec.Name)); err != nil {
				return "", fmt.Errorf("store: key %s: %w", spec.Name, err)
			}
		}
	}

	tmp, err := os.CreateTemp(s.dir, "."+stem+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := file.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("store: write %s: %w", stem, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store: close temp file: %w", err)
	}

	target := s.Path(stem)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store: rename into place: %w", err)
	}
	return target, nil
}

// Read loads a persisted record back into a submission for re-validation.
// A missing record returns ErrNotFound; a file whose sections or keys no
// longer match the schema returns a StructuralError.
func (s *Store) Read(stem string) (record.Submission, error) {
	path := s.Path(stem)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return record.Submission{}, fmt.Errorf("%q: %w", stem, ErrNotFound)
		}
		return record.Submission{}, fmt.Errorf("store: stat %s: %w", path, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, path)
	if err != nil {
		return record.Submission{}, fmt.Errorf("store: parse %s: %w", path, err)
	}

	if errs := s.checkStructure(file); len(errs) > 0 {
		return record.Submission{}, &StructuralError{Stem: stem, Errors: errs}
	}

	sub := record.New()
	for _, section := range schema.Sections() {
		sec := file.Section(string(section))
		for _, spec := range schema.FieldsForSection(section) {
			value := strings.TrimSpace(sec.Key(spec.Name).String())
			if value == s.placeholder {
				value = ""
			}
			sub.Values[spec.Name] = value
		}
	}
	return sub, nil
}

// List returns the stems of every persisted record in discovery order. A
// corpus directory that does not exist yet reads as empty.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read corpus dir: %w", err)
	}
	var stems []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) || strings.HasPrefix(name, ".") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(name, Extension))
	}
	return stems, nil
}

// checkStructure verifies the fixed section and key layout. Declared sections
// and keys are reported in schema order; anything extra follows in file
// order. Keys of a missing section are covered by that section's error alone.
func (s *Store) checkStructure(file *ini.File) []validate.FieldError {
	var errs []validate.FieldError

	present := make(map[string]bool)
	for _, name := range file.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		present[name] = true
	}

	declared := make(map[string]bool)
	for _, section := range schema.Sections() {
		declared[string(section)] = true
		if !present[string(section)] {
			errs = append(errs, validate.FieldError{
				Field:   string(section),
				Code:    validate.CodeMissingSection,
				Message: fmt.Sprintf("Missing section: [%s]", section),
			})
		}
	}
	for _, name := range file.SectionStrings() {
		if name == ini.DefaultSection || declared[name] {
			continue
		}
		errs = append(errs, validate.FieldError{
			Field:   name,
			Code:    validate.CodeUnexpectedSection,
			Message: fmt.Sprintf("Unexpected section: [%s]", name),
		})
	}

	for _, section := range schema.Sections() {
		if !present[string(section)] {
			continue
		}
		sec := file.Section(string(section))
		keys := make(map[string]bool)
		for _, key := range sec.KeyStrings() {
			keys[key] = true
		}
		expected := make(map[string]bool)
		for _, spec := range schema.FieldsForSection(section) {
			expected[spec.Name] = true
			if !keys[spec.Name] {
				errs = append(errs, validate.FieldError{
					Field:   spec.Name,
					Code:    validate.CodeMissingKey,
					Message: fmt.Sprintf("Missing key in [%s]: %s", section, spec.Name),
				})
			}
		}
		for _, key := range sec.KeyStrings() {
			if expected[key] {
				continue
			}
			errs = append(errs, validate.FieldError{
				Field:   key,
				Code:    validate.CodeUnexpectedKey,
				Message: fmt.Sprintf("Unexpected key in [%s]: %s", section, key),
			})
		}
	}
	return errs
}
