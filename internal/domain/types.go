// Package domain contains the reference entities and categorical types shared by the
// network graph and effectiveness matrix builders: pathogens, antibiotics and the
// pathogen-to-antibiotic effectiveness relation.
//
// Reference tables are loaded once and treated as immutable inputs. Every categorical
// type here is lenient: an unrecognized value is carried as-is and resolved by the
// default arm of the consuming switch rather than rejected.
package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// GramStatus is the Gram stain classification of a pathogen.
type GramStatus string

const (
	GramPositive GramStatus = "positive"
	GramNegative GramStatus = "negative"
	GramAtypical GramStatus = "atypical"
)

// Severity is the clinical severity tier of a pathogen.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Effectiveness is the recorded activity of an antibiotic against a pathogen.
// EffectivenessNone marks a pair with no recorded tuple, which is distinct from
// EffectivenessResistant.
type Effectiveness string

const (
	EffectivenessHigh      Effectiveness = "high"
	EffectivenessMedium    Effectiveness = "medium"
	EffectivenessLow       Effectiveness = "low"
	EffectivenessResistant Effectiveness = "resistant"
	EffectivenessNone      Effectiveness = ""
)

// NodeType tags a graph node as a pathogen or an antibiotic.
type NodeType string

const (
	NodePathogen   NodeType = "pathogen"
	NodeAntibiotic NodeType = "antibiotic"
)

// Effectiveness labels in descending clinical order.
var EffectivenessLevels = []Effectiveness{
	EffectivenessHigh,
	EffectivenessMedium,
	EffectivenessLow,
	EffectivenessResistant,
}

// IsValid reports whether the gram status is one of the three known values.
func (g GramStatus) IsValid() bool {
	switch g {
	case GramPositive, GramNegative, GramAtypical:
		return true
	default:
		return false
	}
}

// Rank is the fixed precedence used when grouping rows: positive, negative, atypical.
// Unknown statuses sort after all known ones.
func (g GramStatus) Rank() int {
	switch g {
	case GramPositive:
		return 0
	case GramNegative:
		return 1
	case GramAtypical:
		return 2
	default:
		return 3
	}
}

func (g GramStatus) String() string {
	return string(g)
}

// IsValid reports whether the severity is one of the three known tiers.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	default:
		return false
	}
}

// Rank orders severities from most to least severe. Unknown severities sort last.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

func (s Severity) String() string {
	return string(s)
}

// IsValid reports whether the label is one of the four recorded effectiveness levels.
// EffectivenessNone is not a valid recorded label.
func (e Effectiveness) IsValid() bool {
	switch e {
	case EffectivenessHigh, EffectivenessMedium, EffectivenessLow, EffectivenessResistant:
		return true
	default:
		return false
	}
}

// HasData reports whether a tuple was recorded, regardless of whether its label is known.
func (e Effectiveness) HasData() bool {
	return e != EffectivenessNone
}

// Value is the ordinal used for sorting and filtering:
// high 4, medium 3, low 2, resistant 1, none or unknown 0.
func (e Effectiveness) Value() int {
	switch e {
	case EffectivenessHigh:
		return 4
	case EffectivenessMedium:
		return 3
	case EffectivenessLow:
		return 2
	case EffectivenessResistant:
		return 1
	default:
		return 0
	}
}

// IsEffective reports whether the label counts toward effective coverage (high or medium).
func (e Effectiveness) IsEffective() bool {
	return e == EffectivenessHigh || e == EffectivenessMedium
}

func (e Effectiveness) String() string {
	return string(e)
}

// MarshalJSON encodes EffectivenessNone as null so that "no data" stays distinct from
// every recorded label.
func (e Effectiveness) MarshalJSON() ([]byte, error) {
	if e == EffectivenessNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(e))
}

// Pathogen is one row of the pathogen reference table.
type Pathogen struct {
	ID          int        `json:"id" yaml:"id" validate:"gt=0"`
	Name        string     `json:"name" yaml:"name" validate:"required"`
	CommonName  string     `json:"commonName" yaml:"common_name"`
	GramStatus  GramStatus `json:"gramStatus" yaml:"gram_status" validate:"required,oneof=positive negative atypical"`
	Shape       string     `json:"shape" yaml:"shape"`
	Severity    Severity   `json:"severity" yaml:"severity" validate:"required,oneof=high medium low"`
	Description string     `json:"description" yaml:"description" validate:"required"`
	CommonSites []string   `json:"commonSites,omitempty" yaml:"common_sites"`
	Resistance  string     `json:"resistance,omitempty" yaml:"resistance"`
}

// Antibiotic is one row of the antibiotic reference table. Class is an open set.
type Antibiotic struct {
	ID          int      `json:"id" yaml:"id" validate:"gt=0"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	Class       string   `json:"class" yaml:"class" validate:"required"`
	Category    string   `json:"category" yaml:"category"`
	Mechanism   string   `json:"mechanism" yaml:"mechanism"`
	Route       string   `json:"route" yaml:"route"`
	Description string   `json:"description" yaml:"description"`
	CommonUses  []string `json:"commonUses,omitempty" yaml:"common_uses"`
	Resistance  string   `json:"resistance,omitempty" yaml:"resistance"`
	SideEffects []string `json:"sideEffects,omitempty" yaml:"side_effects"`
}

// Activity is one recorded (antibiotic, effectiveness, notes) tuple for a pathogen.
type Activity struct {
	AntibioticID  int           `json:"antibioticId" yaml:"antibiotic_id" validate:"gt=0"`
	Name          string        `json:"name" yaml:"name"`
	Effectiveness Effectiveness `json:"effectiveness" yaml:"effectiveness" validate:"required,oneof=high medium low resistant"`
	Notes         string        `json:"notes" yaml:"notes"`
}

// PathogenRelation holds every recorded activity tuple for one pathogen.
type PathogenRelation struct {
	PathogenName string     `json:"pathogenName" yaml:"pathogen_name" validate:"required"`
	Antibiotics  []Activity `json:"antibiotics" yaml:"antibiotics" validate:"required,min=1,dive"`
}

// Dataset bundles the three reference tables plus the per-antibiotic atypical
// coverage scores used by the coverage categorization.
type Dataset struct {
	Pathogens        []Pathogen               `json:"pathogens" yaml:"pathogens"`
	Antibiotics      []Antibiotic             `json:"antibiotics" yaml:"antibiotics"`
	Relations        map[int]PathogenRelation `json:"relations" yaml:"relations"`
	AtypicalCoverage map[int]float64          `json:"atypicalCoverage,omitempty" yaml:"atypical_coverage"`
}

// RelationIDs returns the pathogen ids of the relation in ascending order.
func (d *Dataset) RelationIDs() []int {
	ids := make([]int, 0, len(d.Relations))
	for id := range d.Relations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// TupleCount is the total number of recorded activity tuples across all pathogens.
func (d *Dataset) TupleCount() int {
	total := 0
	for _, rel := range d.Relations {
		total += len(rel.Antibiotics)
	}
	return total
}

// Pathogen looks up a pathogen by id.
func (d *Dataset) Pathogen(id int) (*Pathogen, error) {
	for i := range d.Pathogens {
		if d.Pathogens[i].ID == id {
			return &d.Pathogens[i], nil
		}
	}
	return nil, fmt.Errorf("pathogen %d: %w", id, ErrNotFound)
}

// Antibiotic looks up an antibiotic by id.
func (d *Dataset) Antibiotic(id int) (*Antibiotic, error) {
	for i := range d.Antibiotics {
		if d.Antibiotics[i].ID == id {
			return &d.Antibiotics[i], nil
		}
	}
	return nil, fmt.Errorf("antibiotic %d: %w", id, ErrNotFound)
}

// EffectivenessDistribution counts recorded labels. Labels outside the four known
// levels land in Unknown so that the buckets always sum to the number counted.
type EffectivenessDistribution struct {
	High      int `json:"high"`
	Medium    int `json:"medium"`
	Low       int `json:"low"`
	Resistant int `json:"resistant"`
	Unknown   int `json:"unknown"`
}

// Add counts one label.
func (d *EffectivenessDistribution) Add(e Effectiveness) {
	switch e {
	case EffectivenessHigh:
		d.High++
	case EffectivenessMedium:
		d.Medium++
	case EffectivenessLow:
		d.Low++
	case EffectivenessResistant:
		d.Resistant++
	default:
		d.Unknown++
	}
}

// Total is the number of labels counted.
func (d EffectivenessDistribution) Total() int {
	return d.High + d.Medium + d.Low + d.Resistant + d.Unknown
}
