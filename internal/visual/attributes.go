// Package visual maps categorical reference fields to the display attributes used by
// the network graph and the effectiveness matrix.
//
// Every function is total: an unrecognized category resolves to a fixed default
// (gray color, "Unknown" label, minimum size or weight) instead of failing.
package visual

import (
	"github.com/pathogen-atlas/internal/domain"
)

// Fallback colors
const (
	DefaultColor      = "#6B7280" // gray, saturated palette
	DefaultLightColor = "#F3F4F6" // gray, header/cell palette
)

// Node size bounds for antibiotics.
const (
	MinAntibioticSize = 10.0
	MaxAntibioticSize = 25.0
)

var antibioticClassColors = map[string]string{
	"Penicillin":                            "#3B82F6",
	"Glycopeptide":                          "#8B5CF6",
	"Quinolone":                             "#F59E0B",
	"3rd generation cephalosporin":          "#10B981",
	"Macrolide":                             "#EC4899",
	"Lincosamide":                           "#14B8A6",
	"Aminoglycoside":                        "#6366F1",
	"Carbapenem":                            "#EF4444",
	"Tetracycline":                          "#84CC16",
	"Sulfonamide combination":               "#F97316",
	"Oxazolidinone":                         "#06B6D4",
	"Nitroimidazole":                        "#64748B",
	"1st generation cephalosporin":          "#22C55E",
	"Penicillin + Beta-lactamase inhibitor": "#A855F7",
}

// lighter variants of antibioticClassColors for matrix column headers
var antibioticClassLightColors = map[string]string{
	"Penicillin":                            "#DBEAFE",
	"Glycopeptide":                          "#EDE9FE",
	"Quinolone":                             "#FEF3C7",
	"3rd generation cephalosporin":          "#D1FAE5",
	"Macrolide":                             "#FCE7F3",
	"Lincosamide":                           "#CCFBF1",
	"Aminoglycoside":                        "#E0E7FF",
	"Carbapenem":                            "#FEE2E2",
	"Tetracycline":                          "#ECFCCB",
	"Sulfonamide combination":               "#FFEDD5",
	"Oxazolidinone":                         "#CFFAFE",
	"Nitroimidazole":                        "#F1F5F9",
	"1st generation cephalosporin":          "#DCFCE7",
	"Penicillin + Beta-lactamase inhibitor": "#F3E8FF",
}

// AntibioticColor returns the node color for a drug class. Drug class is an open set,
// so this is a table lookup with a gray fallback.
func AntibioticColor(drugClass string) string {
	if c, ok := antibioticClassColors[drugClass]; ok {
		return c
	}
	return DefaultColor
}

// ColumnColor returns the matrix column header color for a drug class.
func ColumnColor(drugClass string) string {
	if c, ok := antibioticClassLightColors[drugClass]; ok {
		return c
	}
	return DefaultLightColor
}

// PathogenColor returns the node color for a gram status.
func PathogenColor(g domain.GramStatus) string {
	switch g {
	case domain.GramPositive:
		return "#DC2626"
	case domain.GramNegative:
		return "#2563EB"
	case domain.GramAtypical:
		return "#059669"
	default:
		return DefaultColor
	}
}

// RowColor returns the matrix row header color for a gram status.
func RowColor(g domain.GramStatus) string {
	switch g {
	case domain.GramPositive:
		return "#FEE2E2"
	case domain.GramNegative:
		return "#DBEAFE"
	case domain.GramAtypical:
		return "#D1FAE5"
	default:
		return DefaultLightColor
	}
}

// GramStatusLabel returns the row group label for a gram status.
func GramStatusLabel(g domain.GramStatus) string {
	switch g {
	case domain.GramPositive:
		return "Gram-Positive"
	case domain.GramNegative:
		return "Gram-Negative"
	case domain.GramAtypical:
		return "Atypical"
	default:
		return "Unknown"
	}
}

// PathogenSize returns the fixed node size for a severity tier.
func PathogenSize(s domain.Severity) float64 {
	switch s {
	case domain.SeverityHigh:
		return 20
	case domain.SeverityMedium:
		return 15
	case domain.SeverityLow:
		return 12
	default:
		return 12
	}
}

// AntibioticSize rescales an effective coverage ratio in [0, 1] linearly into
// [MinAntibioticSize, MaxAntibioticSize]. Out-of-range ratios are clamped.
func AntibioticSize(ratio float64) float64 {
	size := MinAntibioticSize + ratio*(MaxAntibioticSize-MinAntibioticSize)
	return max(MinAntibioticSize, min(MaxAntibioticSize, size))
}

// EdgeStrength returns the force-link strength for an effectiveness label.
func EdgeStrength(e domain.Effectiveness) float64 {
	switch e {
	case domain.EffectivenessHigh:
		return 1.0
	case domain.EffectivenessMedium:
		return 0.7
	case domain.EffectivenessLow:
		return 0.4
	case domain.EffectivenessResistant:
		return 0.1
	default:
		return 0.1
	}
}

// EdgeColor returns the edge color for an effectiveness label.
func EdgeColor(e domain.Effectiveness) string {
	switch e {
	case domain.EffectivenessHigh:
		return "#10B981"
	case domain.EffectivenessMedium:
		return "#F59E0B"
	case domain.EffectivenessLow:
		return "#F97316"
	case domain.EffectivenessResistant:
		return "#EF4444"
	default:
		return DefaultColor
	}
}

// EdgeWidth returns the edge width in pixels for an effectiveness label.
func EdgeWidth(e domain.Effectiveness) float64 {
	switch e {
	case domain.EffectivenessHigh:
		return 3
	case domain.EffectivenessMedium:
		return 2
	case domain.EffectivenessLow:
		return 1
	case domain.EffectivenessResistant:
		return 0.5
	default:
		return 1
	}
}

// CellColor returns the matrix cell background. No data and unknown labels are gray.
func CellColor(e domain.Effectiveness) string {
	switch e {
	case domain.EffectivenessHigh:
		return "#10B981"
	case domain.EffectivenessMedium:
		return "#F59E0B"
	case domain.EffectivenessLow:
		return "#F97316"
	case domain.EffectivenessResistant:
		return "#EF4444"
	default:
		return DefaultLightColor
	}
}

// DisplayText returns the short cell label for an effectiveness label.
func DisplayText(e domain.Effectiveness) string {
	switch e {
	case domain.EffectivenessHigh:
		return "High"
	case domain.EffectivenessMedium:
		return "Med"
	case domain.EffectivenessLow:
		return "Low"
	case domain.EffectivenessResistant:
		return "Res"
	default:
		return "N/A"
	}
}

// ClinicalGuidance synthesizes the one-line guidance shown in tooltips. Notes, when
// present, are appended after the base sentence.
func ClinicalGuidance(e domain.Effectiveness, notes string) string {
	var base string
	switch e {
	case domain.EffectivenessHigh:
		base = "Excellent choice - first-line therapy"
	case domain.EffectivenessMedium:
		base = "Good option - consider for treatment"
	case domain.EffectivenessLow:
		base = "Limited utility - consider alternatives"
	case domain.EffectivenessResistant:
		base = "Not recommended - use alternative therapy"
	case domain.EffectivenessNone:
		base = "No data available - consult guidelines"
	default:
		base = "Consult clinical guidelines"
	}
	if notes != "" {
		return base + ". " + notes
	}
	return base
}
