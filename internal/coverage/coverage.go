// Package coverage groups pathogens by gram status and places each antibiotic in the
// three-circle spectrum diagram (gram-positive, gram-negative, atypical) by its mean
// effectiveness against each group.
package coverage

import (
	"strings"

	"github.com/pathogen-atlas/internal/domain"
)

// Threshold is the minimum group score for an antibiotic to sit inside that circle.
const Threshold = 50.0

// Category is one circle of the diagram.
type Category struct {
	Name        string            `json:"name"`
	Color       string            `json:"color"`
	Description string            `json:"description"`
	Pathogens   []domain.Pathogen `json:"pathogens"`
}

// Categories holds the three circles.
type Categories struct {
	GramPositive Category `json:"gramPositive"`
	GramNegative Category `json:"gramNegative"`
	Atypical     Category `json:"atypical"`
}

// InferredAtypical lists the atypical organisms shown when the pathogen table has none.
// They are not table rows and carry negative ids.
func InferredAtypical() []domain.Pathogen {
	return []domain.Pathogen{
		{
			ID:          -1,
			Name:        "Mycoplasma pneumoniae",
			CommonName:  "Mycoplasma",
			GramStatus:  domain.GramAtypical,
			Description: "Lacks cell wall, causes atypical pneumonia",
			CommonSites: []string{"Lungs", "Upper respiratory tract"},
		},
		{
			ID:          -2,
			Name:        "Chlamydia pneumoniae",
			CommonName:  "Chlamydia",
			GramStatus:  domain.GramAtypical,
			Description: "Obligate intracellular pathogen",
			CommonSites: []string{"Lungs", "Upper respiratory tract"},
		},
		{
			ID:          -3,
			Name:        "Legionella pneumophila",
			CommonName:  "Legionella",
			GramStatus:  domain.GramAtypical,
			Description: "Intracellular pathogen, requires special media",
			CommonSites: []string{"Lungs"},
		},
	}
}

// Categorize splits the pathogen table by gram status. Pathogens with an unknown status
// belong to no circle. When the table has no atypical pathogens the atypical circle
// holds InferredAtypical.
func Categorize(ds *domain.Dataset) Categories {
	c := Categories{
		GramPositive: Category{
			Name:        "Gram-Positive",
			Color:       "#3B82F6",
			Description: "Bacteria with thick peptidoglycan cell walls",
			Pathogens:   []domain.Pathogen{},
		},
		GramNegative: Category{
			Name:        "Gram-Negative",
			Color:       "#EF4444",
			Description: "Bacteria with thin peptidoglycan walls and outer membrane",
			Pathogens:   []domain.Pathogen{},
		},
		Atypical: Category{
			Name:        "Atypical",
			Color:       "#10B981",
			Description: "Organisms requiring special consideration (intracellular, unusual cell walls)",
			Pathogens:   []domain.Pathogen{},
		},
	}

	for _, p := range ds.Pathogens {
		switch p.GramStatus {
		case domain.GramPositive:
			c.GramPositive.Pathogens = append(c.GramPositive.Pathogens, p)
		case domain.GramNegative:
			c.GramNegative.Pathogens = append(c.GramNegative.Pathogens, p)
		case domain.GramAtypical:
			c.Atypical.Pathogens = append(c.Atypical.Pathogens, p)
		}
	}
	if len(c.Atypical.Pathogens) == 0 {
		c.Atypical.Pathogens = InferredAtypical()
	}
	return c
}

// Scores are mean group effectiveness on a 0-100 scale.
type Scores struct {
	GramPositive float64 `json:"gramPositive"`
	GramNegative float64 `json:"gramNegative"`
	Atypical     float64 `json:"atypical"`
}

// Score converts a label to the 0-100 scale: high 100, medium 60, low 30, anything else 0.
func Score(e domain.Effectiveness) float64 {
	switch e {
	case domain.EffectivenessHigh:
		return 100
	case domain.EffectivenessMedium:
		return 60
	case domain.EffectivenessLow:
		return 30
	default:
		return 0
	}
}

// CategoryEffectiveness scores an antibiotic against each circle. The gram scores
// average the first tuple of every pathogen in the group that has one, and are 0 when
// none do. The atypical score comes from the dataset's atypical coverage table.
func CategoryEffectiveness(ds *domain.Dataset, antibioticID int) Scores {
	c := Categorize(ds)
	return Scores{
		GramPositive: groupScore(ds, c.GramPositive.Pathogens, antibioticID),
		GramNegative: groupScore(ds, c.GramNegative.Pathogens, antibioticID),
		Atypical:     ds.AtypicalCoverage[antibioticID],
	}
}

func groupScore(ds *domain.Dataset, pathogens []domain.Pathogen, antibioticID int) float64 {
	var sum float64
	var n int
	for _, p := range pathogens {
		rel, ok := ds.Relations[p.ID]
		if !ok {
			continue
		}
		for _, a := range rel.Antibiotics {
			if a.AntibioticID == antibioticID {
				sum += Score(a.Effectiveness)
				n++
				break
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Region names a zone of the diagram.
type Region string

const (
	RegionAll             Region = "all"
	RegionGramPosNeg      Region = "gram-pos-neg"
	RegionGramPosAtypical Region = "gram-pos-atypical"
	RegionGramNegAtypical Region = "gram-neg-atypical"
	RegionGramPositive    Region = "gram-positive"
	RegionGramNegative    Region = "gram-negative"
	RegionAtypical        Region = "atypical"
	RegionLimited         Region = "limited"
)

// Placement locates an antibiotic in the diagram. X and Y are offsets from the diagram
// center. Description names the region; Summary grades each group.
type Placement struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Region      Region  `json:"region"`
	Coverage    Scores  `json:"coverage"`
	Description string  `json:"description"`
	Summary     string  `json:"summary"`
}

// VennPlacement places an antibiotic by which group scores reach Threshold.
func VennPlacement(ds *domain.Dataset, antibioticID int) Placement {
	s := CategoryEffectiveness(ds, antibioticID)
	pos := s.GramPositive >= Threshold
	neg := s.GramNegative >= Threshold
	atyp := s.Atypical >= Threshold

	p := Placement{Coverage: s, Summary: Summary(s)}
	switch {
	case pos && neg && atyp:
		p.Region, p.X, p.Y = RegionAll, 0, 0
		p.Description = "Broad-spectrum coverage"
	case pos && neg:
		p.Region, p.X, p.Y = RegionGramPosNeg, -20, 20
		p.Description = "Gram-positive and gram-negative coverage"
	case pos && atyp:
		p.Region, p.X, p.Y = RegionGramPosAtypical, -40, -20
		p.Description = "Gram-positive and atypical coverage"
	case neg && atyp:
		p.Region, p.X, p.Y = RegionGramNegAtypical, 20, -20
		p.Description = "Gram-negative and atypical coverage"
	case pos:
		p.Region, p.X, p.Y = RegionGramPositive, -60, 0
		p.Description = "Primarily gram-positive coverage"
	case neg:
		p.Region, p.X, p.Y = RegionGramNegative, 60, 0
		p.Description = "Primarily gram-negative coverage"
	case atyp:
		p.Region, p.X, p.Y = RegionAtypical, 0, -60
		p.Description = "Primarily atypical coverage"
	default:
		p.Region, p.X, p.Y = RegionLimited, 0, 80
		p.Description = "Limited spectrum coverage"
	}
	return p
}

// Summary grades each group score (Excellent 80+, Good 50+, Limited 30+) and joins the
// grades, or returns "Narrow spectrum coverage" when no group reaches 30.
func Summary(s Scores) string {
	var parts []string
	for _, g := range []struct {
		name  string
		score float64
	}{
		{"gram-positive", s.GramPositive},
		{"gram-negative", s.GramNegative},
		{"atypical", s.Atypical},
	} {
		switch {
		case g.score >= 80:
			parts = append(parts, "Excellent "+g.name+" coverage")
		case g.score >= 50:
			parts = append(parts, "Good "+g.name+" coverage")
		case g.score >= 30:
			parts = append(parts, "Limited "+g.name+" coverage")
		}
	}
	if len(parts) == 0 {
		return "Narrow spectrum coverage"
	}
	return strings.Join(parts, ", ")
}

// VennEntry is one antibiotic's diagram data.
type VennEntry struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Placement     Placement `json:"placement"`
	Effectiveness Scores    `json:"effectiveness"`
	Region        Region    `json:"region"`
}

// AllVennData places every antibiotic of the dataset, in table order.
func AllVennData(ds *domain.Dataset) []VennEntry {
	entries := make([]VennEntry, 0, len(ds.Antibiotics))
	for _, a := range ds.Antibiotics {
		p := VennPlacement(ds, a.ID)
		entries = append(entries, VennEntry{
			ID:            a.ID,
			Name:          a.Name,
			Placement:     p,
			Effectiveness: p.Coverage,
			Region:        p.Region,
		})
	}
	return entries
}
