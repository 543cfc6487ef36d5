// Package radar scores antibiotics on six 0-100 axes for spider plot comparison:
// coverage of each gram group, resistance profile, route flexibility and safety.
package radar

import (
	"math"
	"strings"

	"github.com/pathogen-atlas/internal/coverage"
	"github.com/pathogen-atlas/internal/domain"
)

// Axis labels in plot order.
const (
	AxisGramPositive = "Gram+ Coverage"
	AxisGramNegative = "Gram- Coverage"
	AxisAtypical     = "Atypical Coverage"
	AxisResistance   = "Resistance Profile"
	AxisRoute        = "Route Flexibility"
	AxisSafety       = "Safety Profile"
)

// Safety deductions per side effect. Each effect is charged once, at its most
// severe matching tier.
const (
	seriousPenalty  = 30
	moderatePenalty = 15
	mildPenalty     = 5
)

var (
	seriousEffects = []string{
		"kidney toxicity", "nephrotoxicity", "renal",
		"hearing loss", "ototoxicity", "vestibular",
		"seizures", "cns effects", "neuropathy",
		"tendon rupture", "tendon",
		"qt prolongation", "cardiac",
		"thrombocytopenia", "bone marrow",
		"hepatotoxicity", "liver",
	}
	moderateEffects = []string{
		"diarrhea", "c. diff", "colitis",
		"allergic reactions", "hypersensitivity",
		"rash", "skin reactions",
		"gi upset", "nausea", "vomiting",
	}
	mildEffects = []string{
		"metallic taste", "taste",
		"photosensitivity", "sun sensitivity",
		"injection site", "local reactions",
	}
)

// Dimensions is one antibiotic's score on every axis plus display metadata.
type Dimensions struct {
	GramPositiveCoverage int    `json:"gramPositiveCoverage"`
	GramNegativeCoverage int    `json:"gramNegativeCoverage"`
	AtypicalCoverage     int    `json:"atypicalCoverage"`
	ResistanceProfile    int    `json:"resistanceProfile"`
	RouteFlexibility     int    `json:"routeFlexibility"`
	SafetyProfile        int    `json:"safetyProfile"`
	AntibioticName       string `json:"antibioticName"`
	DrugClass            string `json:"drugClass"`
	TotalPathogens       int    `json:"totalPathogens"`
}

// Calculate scores one antibiotic. An unknown id returns an error wrapping
// domain.ErrNotFound.
func Calculate(ds *domain.Dataset, antibioticID int) (*Dimensions, error) {
	ab, err := ds.Antibiotic(antibioticID)
	if err != nil {
		return nil, err
	}

	s := coverage.CategoryEffectiveness(ds, antibioticID)
	resistance, total := ResistanceScore(ds, antibioticID)
	return &Dimensions{
		GramPositiveCoverage: round(s.GramPositive),
		GramNegativeCoverage: round(s.GramNegative),
		AtypicalCoverage:     round(s.Atypical),
		ResistanceProfile:    resistance,
		RouteFlexibility:     RouteScore(ab.Route),
		SafetyProfile:        SafetyScore(ab.SideEffects),
		AntibioticName:       ab.Name,
		DrugClass:            ab.Class,
		TotalPathogens:       total,
	}, nil
}

// ResistanceScore is 100 minus the percentage of pathogens recorded as resistant to
// the antibiotic, together with the number of pathogens that have a tuple for it.
// Only the first tuple of each pathogen counts. The score is 0 when no pathogen has
// a tuple.
func ResistanceScore(ds *domain.Dataset, antibioticID int) (score, pathogens int) {
	resistant := 0
	for _, id := range ds.RelationIDs() {
		for _, a := range ds.Relations[id].Antibiotics {
			if a.AntibioticID != antibioticID {
				continue
			}
			pathogens++
			if a.Effectiveness == domain.EffectivenessResistant {
				resistant++
			}
			break
		}
	}
	if pathogens == 0 {
		return 0, 0
	}
	rate := float64(resistant) / float64(pathogens) * 100
	return round(100 - rate), pathogens
}

// RouteScore grades how the drug can be given: oral and IV 100, oral 80, IV 60,
// IM 40, any other route 20, no route 0.
func RouteScore(route string) int {
	if route == "" {
		return 0
	}
	r := strings.ToLower(route)
	po, iv := strings.Contains(r, "po"), strings.Contains(r, "iv")
	switch {
	case po && iv:
		return 100
	case po:
		return 80
	case iv:
		return 60
	case strings.Contains(r, "im"):
		return 40
	default:
		return 20
	}
}

// SafetyScore starts at 100 and deducts for every listed side effect that matches a
// serious, moderate or mild keyword. It never drops below 0.
func SafetyScore(sideEffects []string) int {
	score := 100
	for _, effect := range sideEffects {
		e := strings.ToLower(effect)
		switch {
		case matchesAny(e, seriousEffects):
			score -= seriousPenalty
		case matchesAny(e, moderateEffects):
			score -= moderatePenalty
		case matchesAny(e, mildEffects):
			score -= mildPenalty
		}
	}
	return max(score, 0)
}

func matchesAny(effect string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(effect, k) {
			return true
		}
	}
	return false
}

// Point is one axis value of a plotted series.
type Point struct {
	Axis  string `json:"axis"`
	Value int    `json:"value"`
}

// Series is one antibiotic ready for plotting.
type Series struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Class  string      `json:"class"`
	Data   []Point     `json:"data"`
	Colors ColorScheme `json:"colors"`
}

// Compare builds one series per id, in the order given. The first unknown id fails
// the whole comparison.
func Compare(ds *domain.Dataset, antibioticIDs []int) ([]Series, error) {
	out := make([]Series, 0, len(antibioticIDs))
	for _, id := range antibioticIDs {
		d, err := Calculate(ds, id)
		if err != nil {
			return nil, err
		}
		out = append(out, Series{
			ID:    id,
			Name:  d.AntibioticName,
			Class: d.DrugClass,
			Data: []Point{
				{AxisGramPositive, d.GramPositiveCoverage},
				{AxisGramNegative, d.GramNegativeCoverage},
				{AxisAtypical, d.AtypicalCoverage},
				{AxisResistance, d.ResistanceProfile},
				{AxisRoute, d.RouteFlexibility},
				{AxisSafety, d.SafetyProfile},
			},
			Colors: ClassColors(d.DrugClass),
		})
	}
	return out, nil
}

// ColorScheme is the stroke and fill pair for one series.
type ColorScheme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// DefaultColors is used for unknown antibiotics and unlisted drug classes.
var DefaultColors = ColorScheme{Primary: "#6B7280", Secondary: "#D1D5DB"}

var classColors = map[string]ColorScheme{
	"Penicillin":                            {"#3B82F6", "#DBEAFE"},
	"Glycopeptide":                          {"#8B5CF6", "#EDE9FE"},
	"Quinolone":                             {"#F59E0B", "#FEF3C7"},
	"3rd generation cephalosporin":          {"#10B981", "#D1FAE5"},
	"Macrolide":                             {"#EC4899", "#FCE7F3"},
	"Lincosamide":                           {"#14B8A6", "#CCFBF1"},
	"Aminoglycoside":                        {"#6366F1", "#E0E7FF"},
	"Carbapenem":                            {"#EF4444", "#FEE2E2"},
	"Tetracycline":                          {"#84CC16", "#ECFCCB"},
	"Sulfonamide combination":               {"#F97316", "#FFEDD5"},
	"Oxazolidinone":                         {"#06B6D4", "#CFFAFE"},
	"Nitroimidazole":                        {"#64748B", "#F1F5F9"},
	"1st generation cephalosporin":          {"#22C55E", "#DCFCE7"},
	"Penicillin + Beta-lactamase inhibitor": {"#A855F7", "#F3E8FF"},
}

// ClassColors returns the palette entry for a drug class.
func ClassColors(class string) ColorScheme {
	if c, ok := classColors[class]; ok {
		return c
	}
	return DefaultColors
}

// Colors returns the palette entry for an antibiotic's class.
func Colors(ds *domain.Dataset, antibioticID int) ColorScheme {
	ab, err := ds.Antibiotic(antibioticID)
	if err != nil {
		return DefaultColors
	}
	return ClassColors(ab.Class)
}

// DimensionStats summarizes one axis across antibiotics. Avg is rounded.
type DimensionStats struct {
	Min   int `json:"min"`
	Max   int `json:"max"`
	Avg   int `json:"avg"`
	Count int `json:"count"`
}

// Statistics summarizes every axis over the antibiotic table.
type Statistics struct {
	GramPositiveCoverage DimensionStats `json:"gramPositiveCoverage"`
	GramNegativeCoverage DimensionStats `json:"gramNegativeCoverage"`
	AtypicalCoverage     DimensionStats `json:"atypicalCoverage"`
	ResistanceProfile    DimensionStats `json:"resistanceProfile"`
	RouteFlexibility     DimensionStats `json:"routeFlexibility"`
	SafetyProfile        DimensionStats `json:"safetyProfile"`
	TotalAntibiotics     int            `json:"totalAntibiotics"`
}

// CalculateStatistics scores every antibiotic of the dataset and summarizes each axis.
func CalculateStatistics(ds *domain.Dataset) Statistics {
	all := make([]*Dimensions, 0, len(ds.Antibiotics))
	for _, ab := range ds.Antibiotics {
		if d, err := Calculate(ds, ab.ID); err == nil {
			all = append(all, d)
		}
	}

	axis := func(value func(*Dimensions) int) DimensionStats {
		values := make([]int, 0, len(all))
		for _, d := range all {
			values = append(values, value(d))
		}
		return summarize(values)
	}

	return Statistics{
		GramPositiveCoverage: axis(func(d *Dimensions) int { return d.GramPositiveCoverage }),
		GramNegativeCoverage: axis(func(d *Dimensions) int { return d.GramNegativeCoverage }),
		AtypicalCoverage:     axis(func(d *Dimensions) int { return d.AtypicalCoverage }),
		ResistanceProfile:    axis(func(d *Dimensions) int { return d.ResistanceProfile }),
		RouteFlexibility:     axis(func(d *Dimensions) int { return d.RouteFlexibility }),
		SafetyProfile:        axis(func(d *Dimensions) int { return d.SafetyProfile }),
		TotalAntibiotics:     len(all),
	}
}

func summarize(values []int) DimensionStats {
	if len(values) == 0 {
		return DimensionStats{}
	}
	s := DimensionStats{Min: values[0], Max: values[0], Count: len(values)}
	sum := 0
	for _, v := range values {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += v
	}
	s.Avg = round(float64(sum) / float64(len(values)))
	return s
}

// round rounds halves up.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
