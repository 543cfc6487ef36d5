package reference

import (
	"github.com/pathogen-atlas/internal/domain"
)

// PathogenActivity is one recorded tuple seen from the antibiotic side.
type PathogenActivity struct {
	PathogenID    int                  `json:"pathogenId"`
	PathogenName  string               `json:"pathogenName"`
	Effectiveness domain.Effectiveness `json:"effectiveness"`
	Notes         string               `json:"notes"`
}

// AntibioticsForPathogen returns the recorded tuples for a pathogen, or nil.
func AntibioticsForPathogen(ds *domain.Dataset, pathogenID int) []domain.Activity {
	rel, ok := ds.Relations[pathogenID]
	if !ok {
		return nil
	}
	return rel.Antibiotics
}

// EffectivenessForPair returns the label recorded for the pair, or EffectivenessNone.
// When a pathogen lists the same antibiotic twice the first tuple wins.
func EffectivenessForPair(ds *domain.Dataset, pathogenID, antibioticID int) domain.Effectiveness {
	for _, a := range AntibioticsForPathogen(ds, pathogenID) {
		if a.AntibioticID == antibioticID {
			return a.Effectiveness
		}
	}
	return domain.EffectivenessNone
}

// HighEffectivenessAntibiotics returns the tuples rated high for a pathogen.
func HighEffectivenessAntibiotics(ds *domain.Dataset, pathogenID int) []domain.Activity {
	return activitiesWith(ds, pathogenID, domain.EffectivenessHigh)
}

// ResistantAntibiotics returns the tuples rated resistant for a pathogen.
func ResistantAntibiotics(ds *domain.Dataset, pathogenID int) []domain.Activity {
	return activitiesWith(ds, pathogenID, domain.EffectivenessResistant)
}

func activitiesWith(ds *domain.Dataset, pathogenID int, e domain.Effectiveness) []domain.Activity {
	var out []domain.Activity
	for _, a := range AntibioticsForPathogen(ds, pathogenID) {
		if a.Effectiveness == e {
			out = append(out, a)
		}
	}
	return out
}

// PathogensForAntibiotic returns, in ascending pathogen id order, every pathogen with a
// recorded tuple for the antibiotic.
func PathogensForAntibiotic(ds *domain.Dataset, antibioticID int) []PathogenActivity {
	var out []PathogenActivity
	for _, pid := range ds.RelationIDs() {
		rel := ds.Relations[pid]
		for _, a := range rel.Antibiotics {
			if a.AntibioticID == antibioticID {
				out = append(out, PathogenActivity{
					PathogenID:    pid,
					PathogenName:  rel.PathogenName,
					Effectiveness: a.Effectiveness,
					Notes:         a.Notes,
				})
				break
			}
		}
	}
	return out
}

// Stats tallies every recorded tuple in the relation.
func Stats(ds *domain.Dataset) domain.EffectivenessDistribution {
	var stats domain.EffectivenessDistribution
	for _, rel := range ds.Relations {
		for _, a := range rel.Antibiotics {
			stats.Add(a.Effectiveness)
		}
	}
	return stats
}
