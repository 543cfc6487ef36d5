package selfcheck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/reference"
)

func TestRun_ReferenceDataIsClean(t *testing.T) {
	assert.Empty(t, Run(reference.MustDefault()))
}

func TestNetwork_EmptyDataset(t *testing.T) {
	violations := Network(&domain.Dataset{})

	assert.Contains(t, violations, "No nodes generated")
	assert.Contains(t, violations, "No edges generated")
	assert.Contains(t, violations, "Filtering functionality failed")
}

func TestNetwork_DanglingEdge(t *testing.T) {
	ds := reference.MustDefault()
	rel := ds.Relations[1]
	rel.Antibiotics[0].AntibioticID = 77
	ds.Relations[1] = rel

	violations := Network(ds)
	assert.Contains(t, violations, "Edge edge-1-77 references missing node antibiotic-77")
}

func TestNetwork_DuplicateNode(t *testing.T) {
	ds := reference.MustDefault()
	ds.Pathogens[1].ID = ds.Pathogens[0].ID

	assert.Contains(t, Network(ds), "Duplicate node: pathogen-1")
}

func TestNetwork_MissingSampleFields(t *testing.T) {
	ds := &domain.Dataset{
		Antibiotics: []domain.Antibiotic{{ID: 1}},
		Pathogens:   []domain.Pathogen{{ID: 1, Name: "P"}},
		Relations: map[int]domain.PathogenRelation{
			1: {Antibiotics: []domain.Activity{{AntibioticID: 1, Effectiveness: domain.EffectivenessHigh}}},
		},
	}

	violations := Network(ds)
	assert.Contains(t, violations, "Missing node field: name")
	assert.NotContains(t, violations, "Missing node field: color")
	assert.NotContains(t, violations, "Filtering functionality failed")
}

func TestMatrix_NoHighCells(t *testing.T) {
	ds := &domain.Dataset{
		Pathogens:   []domain.Pathogen{{ID: 1, Name: "P", GramStatus: domain.GramPositive}},
		Antibiotics: []domain.Antibiotic{{ID: 1, Name: "A", Class: "Penicillin"}},
		Relations: map[int]domain.PathogenRelation{
			1: {PathogenName: "P", Antibiotics: []domain.Activity{{AntibioticID: 1, Effectiveness: domain.EffectivenessLow}}},
		},
	}

	assert.Equal(t, []string{"Matrix filtering failed"}, Matrix(ds))
}

func TestMatrix_EmptyDataset(t *testing.T) {
	violations := Matrix(&domain.Dataset{})

	assert.Contains(t, violations, "No pathogen rows generated")
	assert.Contains(t, violations, "No antibiotic columns generated")
	assert.Contains(t, violations, "No matrix cells generated")
	assert.NotContains(t, violations, "Tooltip generation failed")
}

func TestCoverage_MissingGroups(t *testing.T) {
	ds := &domain.Dataset{Pathogens: []domain.Pathogen{{ID: 1, Name: "P", GramStatus: domain.GramAtypical}}}

	assert.Equal(t, []string{"No gram-positive pathogens found", "No gram-negative pathogens found"}, Coverage(ds))
}

func TestRadar(t *testing.T) {
	t.Run("reference data scores in range", func(t *testing.T) {
		assert.Empty(t, Radar(reference.MustDefault()))
	})

	t.Run("no antibiotics", func(t *testing.T) {
		assert.Equal(t, []string{"No antibiotics to score"}, Radar(&domain.Dataset{}))
	})

	t.Run("atypical score out of range", func(t *testing.T) {
		ds := reference.MustDefault()
		ds.AtypicalCoverage[ds.Antibiotics[0].ID] = 150

		assert.Equal(t, []string{"atypicalCoverage is out of range (0-100): 150"}, Radar(ds))
	})
}

func TestRun_PanicsBecomeViolations(t *testing.T) {
	violations := Run(nil)

	require.Len(t, violations, 5)
	prefixes := []string{"Reference data", "Network data", "Matrix data", "Categorization", "Radar scoring"}
	for i, v := range violations {
		assert.True(t, strings.HasPrefix(v, prefixes[i]+" validation error: "), v)
	}
}

func TestRun_IncludesReferenceViolations(t *testing.T) {
	ds := reference.MustDefault()
	ds.Pathogens[0].GramStatus = "gram-variable"

	violations := Run(ds)
	require.NotEmpty(t, violations)
	assert.True(t, strings.HasPrefix(violations[0], "pathogen 1: gramstatus"), violations[0])
}
