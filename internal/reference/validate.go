package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pathogen-atlas/internal/domain"
)

var validate = validator.New()

// Validate checks every reference row against its struct tags and then checks the
// relation for dangling or duplicate ids. It returns one human-readable violation
// per problem, or nil when the dataset is consistent.
func Validate(ds *domain.Dataset) []string {
	var violations []string

	pathogenIDs := make(map[int]bool, len(ds.Pathogens))
	for i := range ds.Pathogens {
		p := &ds.Pathogens[i]
		if pathogenIDs[p.ID] {
			violations = append(violations, fmt.Sprintf("pathogen %d: duplicate id", p.ID))
		}
		pathogenIDs[p.ID] = true
		violations = append(violations, structViolations(fmt.Sprintf("pathogen %d", p.ID), p)...)
	}

	antibioticIDs := make(map[int]bool, len(ds.Antibiotics))
	for i := range ds.Antibiotics {
		a := &ds.Antibiotics[i]
		if antibioticIDs[a.ID] {
			violations = append(violations, fmt.Sprintf("antibiotic %d: duplicate id", a.ID))
		}
		antibioticIDs[a.ID] = true
		violations = append(violations, structViolations(fmt.Sprintf("antibiotic %d", a.ID), a)...)
	}

	for _, pid := range ds.RelationIDs() {
		rel := ds.Relations[pid]
		prefix := fmt.Sprintf("relation %d", pid)
		if !pathogenIDs[pid] {
			violations = append(violations, prefix+": unknown pathogen")
		}
		violations = append(violations, structViolations(prefix, &rel)...)

		seen := make(map[int]bool, len(rel.Antibiotics))
		for i, a := range rel.Antibiotics {
			if a.AntibioticID > 0 && !antibioticIDs[a.AntibioticID] {
				violations = append(violations, fmt.Sprintf("%s, antibiotic %d: unknown antibiotic id %d", prefix, i, a.AntibioticID))
			}
			if seen[a.AntibioticID] {
				violations = append(violations, fmt.Sprintf("%s, antibiotic %d: duplicate antibiotic id %d", prefix, i, a.AntibioticID))
			}
			seen[a.AntibioticID] = true
		}
	}

	return violations
}

// structViolations formats validator errors for one row.
func structViolations(prefix string, s interface{}) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{fmt.Sprintf("%s: %v", prefix, err)}
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, prefix+": "+formatFieldError(fe))
	}
	return out
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := fieldPath(e.Namespace())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, e.Param(), fmt.Sprint(e.Value()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath drops the struct name from a validator namespace: "Pathogen.GramStatus"
// becomes "gramstatus", "PathogenRelation.Antibiotics[2].Effectiveness" becomes
// "antibiotics[2].effectiveness".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
