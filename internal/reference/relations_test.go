package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
)

func TestEffectivenessForPair(t *testing.T) {
	ds := MustDefault()

	tests := []struct {
		name         string
		pathogenID   int
		antibioticID int
		expected     domain.Effectiveness
	}{
		{"MRSA vancomycin", 1, 2, domain.EffectivenessHigh},
		{"staph penicillin", 1, 1, domain.EffectivenessResistant},
		{"no tuple recorded", 1, 3, domain.EffectivenessNone},
		{"unknown pathogen", 99, 1, domain.EffectivenessNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectivenessForPair(ds, tt.pathogenID, tt.antibioticID))
		})
	}
}

func TestEffectivenessForPair_FirstTupleWins(t *testing.T) {
	ds := &domain.Dataset{Relations: map[int]domain.PathogenRelation{
		1: {PathogenName: "p", Antibiotics: []domain.Activity{
			{AntibioticID: 5, Effectiveness: domain.EffectivenessLow},
			{AntibioticID: 5, Effectiveness: domain.EffectivenessHigh},
		}},
	}}

	assert.Equal(t, domain.EffectivenessLow, EffectivenessForPair(ds, 1, 5))
}

func TestAntibioticsForPathogen(t *testing.T) {
	ds := MustDefault()

	assert.Len(t, AntibioticsForPathogen(ds, 3), 5)
	assert.Nil(t, AntibioticsForPathogen(ds, 42))

	high := HighEffectivenessAntibiotics(ds, 1)
	require.Len(t, high, 3)
	for _, a := range high {
		assert.Equal(t, domain.EffectivenessHigh, a.Effectiveness)
	}

	resistant := ResistantAntibiotics(ds, 10)
	assert.Len(t, resistant, 3)
}

func TestPathogensForAntibiotic(t *testing.T) {
	ds := MustDefault()

	got := PathogensForAntibiotic(ds, 12)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].PathogenID)
	assert.Equal(t, "Clostridium difficile", got[0].PathogenName)
	assert.Equal(t, domain.EffectivenessMedium, got[0].Effectiveness)

	penicillin := PathogensForAntibiotic(ds, 1)
	require.Len(t, penicillin, 8)
	for i := 1; i < len(penicillin); i++ {
		assert.Less(t, penicillin[i-1].PathogenID, penicillin[i].PathogenID)
	}

	assert.Empty(t, PathogensForAntibiotic(ds, 99))
}

func TestStats(t *testing.T) {
	stats := Stats(MustDefault())

	assert.Equal(t, 22, stats.High)
	assert.Equal(t, 18, stats.Medium)
	assert.Equal(t, 4, stats.Low)
	assert.Equal(t, 9, stats.Resistant)
	assert.Equal(t, 0, stats.Unknown)
	assert.Equal(t, 53, stats.Total())
}

func TestStats_CountsUnknownLabels(t *testing.T) {
	ds := &domain.Dataset{Relations: map[int]domain.PathogenRelation{
		1: {PathogenName: "p", Antibiotics: []domain.Activity{
			{AntibioticID: 1, Effectiveness: domain.EffectivenessHigh},
			{AntibioticID: 2, Effectiveness: "intermediate"},
		}},
	}}

	stats := Stats(ds)
	assert.Equal(t, 1, stats.High)
	assert.Equal(t, 1, stats.Unknown)
	assert.Equal(t, 2, stats.Total())
}
