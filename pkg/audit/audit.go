// Package audit re-validates every persisted record against the current rule
// set and reports the ones that no longer pass. It is strictly read-only:
// findings go to the caller, never back into the corpus.
package audit

import (
	"errors"
	"fmt"

	"github.com/ukncsp/simmeta/pkg/store"
	"github.com/ukncsp/simmeta/pkg/validate"
)

// Finding pairs a persisted record's stem with its non-empty error list.
// Structural damage (missing sections or keys) and field-semantic violations
// arrive in the same list but carry distinct codes; a record with structural
// damage is not additionally checked semantically.
type Finding struct {
	Stem   string
	Errors []validate.FieldError
}

// Run walks the corpus in discovery order and returns a finding for each
// record with at least one error. Records that validate cleanly do not
// appear. Order carries no semantic weight.
func Run(st *store.Store, v *validate.Validator) ([]Finding, error) {
	if v == nil {
		v = validate.New()
	}

	stems, err := st.List()
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}

	var findings []Finding
	for _, stem := range stems {
		sub, err := st.Read(stem)
		if err != nil {
			var structural *store.StructuralError
			if errors.As(err, &structural) {
				findings = append(findings, Finding{Stem: stem, Errors: structural.Errors})
				continue
			}
			return nil, fmt.Errorf("audit: read %s: %w", stem, err)
		}
		if errs := v.Validate(sub); len(errs) > 0 {
			findings = append(findings, Finding{Stem: stem, Errors: errs})
		}
	}
	return findings, nil
}
