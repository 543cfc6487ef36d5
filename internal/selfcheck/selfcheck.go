// Package selfcheck exercises the graph, matrix and coverage builders against a dataset
// and reports broken structural invariants as human-readable strings. Checks never
// panic; an internal failure becomes one more violation.
package selfcheck

import (
	"fmt"

	"github.com/pathogen-atlas/internal/coverage"
	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/matrix"
	"github.com/pathogen-atlas/internal/network"
	"github.com/pathogen-atlas/internal/radar"
	"github.com/pathogen-atlas/internal/reference"
)

// Run validates the reference tables and then runs every builder check.
func Run(ds *domain.Dataset) []string {
	var violations []string
	violations = append(violations, guard("Reference data", func() []string { return reference.Validate(ds) })...)
	violations = append(violations, Network(ds)...)
	violations = append(violations, Matrix(ds)...)
	violations = append(violations, Coverage(ds)...)
	violations = append(violations, Radar(ds)...)
	return violations
}

// guard runs check and converts a panic into a violation.
func guard(name string, check func() []string) (violations []string) {
	defer func() {
		if r := recover(); r != nil {
			violations = append(violations, fmt.Sprintf("%s validation error: %v", name, r))
		}
	}()
	return check()
}

// Network checks the graph model and its filter.
func Network(ds *domain.Dataset) []string {
	return guard("Network data", func() []string {
		var errs []string
		g := network.Build(ds, network.NewRand(1), 0)

		if len(g.Nodes) == 0 {
			errs = append(errs, "No nodes generated")
		}
		if len(g.Edges) == 0 {
			errs = append(errs, "No edges generated")
		}

		if want := len(ds.Pathogens) + len(ds.Antibiotics); len(g.Nodes) != want {
			errs = append(errs, fmt.Sprintf("Expected %d nodes, got %d", want, len(g.Nodes)))
		}
		if want := ds.TupleCount(); len(g.Edges) != want {
			errs = append(errs, fmt.Sprintf("Expected %d edges, got %d", want, len(g.Edges)))
		}

		ids := make(map[string]bool, len(g.Nodes))
		for _, n := range g.Nodes {
			if ids[n.ID] {
				errs = append(errs, fmt.Sprintf("Duplicate node: %s", n.ID))
			}
			ids[n.ID] = true
		}
		for _, e := range g.Edges {
			if !ids[e.Source] {
				errs = append(errs, fmt.Sprintf("Edge %s references missing node %s", e.ID, e.Source))
			}
			if !ids[e.Target] {
				errs = append(errs, fmt.Sprintf("Edge %s references missing node %s", e.ID, e.Target))
			}
		}

		if len(g.Nodes) > 0 {
			n := g.Nodes[0]
			errs = append(errs, missing("node", []field{
				{"id", n.ID != ""},
				{"type", n.Type != ""},
				{"name", n.Name != ""},
				{"color", n.Color != ""},
				{"size", n.Size > 0},
			})...)
		}

		if len(g.Edges) > 0 {
			e := g.Edges[0]
			errs = append(errs, missing("edge", []field{
				{"id", e.ID != ""},
				{"source", e.Source != ""},
				{"target", e.Target != ""},
				{"effectiveness", e.Effectiveness.HasData()},
				{"strength", e.Strength > 0},
			})...)
		}

		filtered := network.Filter(g, network.Filters{Effectiveness: []domain.Effectiveness{domain.EffectivenessHigh}})
		if len(filtered.Edges) == 0 {
			errs = append(errs, "Filtering functionality failed")
		}

		return errs
	})
}

type field struct {
	name    string
	present bool
}

func missing(kind string, fields []field) []string {
	var out []string
	for _, f := range fields {
		if !f.present {
			out = append(out, fmt.Sprintf("Missing %s field: %s", kind, f.name))
		}
	}
	return out
}

// Matrix checks the matrix model, its density and the sort, filter and tooltip views.
func Matrix(ds *domain.Dataset) []string {
	return guard("Matrix data", func() []string {
		var errs []string
		m := matrix.Build(ds)

		if len(m.Rows) == 0 {
			errs = append(errs, "No pathogen rows generated")
		}
		if len(m.Columns) == 0 {
			errs = append(errs, "No antibiotic columns generated")
		}
		if len(m.Cells) == 0 {
			errs = append(errs, "No matrix cells generated")
		}
		if want := len(m.Rows) * len(m.Columns); len(m.Cells) != want {
			errs = append(errs, fmt.Sprintf("Expected %d cells, got %d", want, len(m.Cells)))
		}

		s := matrix.Sort(m, matrix.SortOptions{RowSort: matrix.RowSortName})
		if len(s.Rows) != len(m.Rows) || len(s.Cells) != len(m.Cells) {
			errs = append(errs, "Matrix sorting failed")
		}

		f := matrix.Filter(m, matrix.Filters{Effectiveness: []domain.Effectiveness{domain.EffectivenessHigh}})
		if len(f.Cells) == 0 {
			errs = append(errs, "Matrix filtering failed")
		}
		if len(f.Rows) > len(m.Rows) || len(f.Columns) > len(m.Columns) {
			errs = append(errs, "Matrix filtering grew the matrix")
		}

		if len(m.Cells) > 0 {
			tip, err := matrix.NewCellTooltip(m, m.Cells[0])
			if err != nil || tip.Title == "" || tip.PathogenInfo.Name == "" || tip.AntibioticInfo.Name == "" {
				errs = append(errs, "Tooltip generation failed")
			}
		}

		return errs
	})
}

// Coverage checks the gram groups and placement of the first antibiotic.
func Coverage(ds *domain.Dataset) []string {
	return guard("Categorization", func() []string {
		var errs []string
		c := coverage.Categorize(ds)

		if len(c.GramPositive.Pathogens) == 0 {
			errs = append(errs, "No gram-positive pathogens found")
		}
		if len(c.GramNegative.Pathogens) == 0 {
			errs = append(errs, "No gram-negative pathogens found")
		}

		if len(ds.Antibiotics) > 0 {
			id := ds.Antibiotics[0].ID
			s := coverage.CategoryEffectiveness(ds, id)
			if s.GramPositive < 0 || s.GramPositive > 100 || s.GramNegative < 0 || s.GramNegative > 100 {
				errs = append(errs, "Effectiveness calculation failed")
			}
			if coverage.VennPlacement(ds, id).Region == "" {
				errs = append(errs, "Venn placement calculation failed")
			}
		}

		return errs
	})
}

// Radar checks that the first antibiotic scores inside 0-100 on every axis and that a
// comparison of the first three antibiotics yields one series each.
func Radar(ds *domain.Dataset) []string {
	return guard("Radar scoring", func() []string {
		if len(ds.Antibiotics) == 0 {
			return []string{"No antibiotics to score"}
		}

		var errs []string
		id := ds.Antibiotics[0].ID
		d, err := radar.Calculate(ds, id)
		if err != nil {
			return []string{fmt.Sprintf("Radar scoring validation error: %v", err)}
		}
		for _, axis := range []struct {
			name  string
			value int
		}{
			{"gramPositiveCoverage", d.GramPositiveCoverage},
			{"gramNegativeCoverage", d.GramNegativeCoverage},
			{"atypicalCoverage", d.AtypicalCoverage},
			{"resistanceProfile", d.ResistanceProfile},
			{"routeFlexibility", d.RouteFlexibility},
			{"safetyProfile", d.SafetyProfile},
		} {
			if axis.value < 0 || axis.value > 100 {
				errs = append(errs, fmt.Sprintf("%s is out of range (0-100): %d", axis.name, axis.value))
			}
		}

		var ids []int
		for _, ab := range ds.Antibiotics[:min(3, len(ds.Antibiotics))] {
			ids = append(ids, ab.ID)
		}
		if series, err := radar.Compare(ds, ids); err != nil || len(series) != len(ids) {
			errs = append(errs, "Multi-antibiotic radar data generation failed")
		}

		if c := radar.Colors(ds, id); c.Primary == "" || c.Secondary == "" {
			errs = append(errs, "Color scheme generation failed")
		}

		return errs
	})
}
