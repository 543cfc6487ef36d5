package network

import (
	"math/rand/v2"
	"time"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/visual"
)

// DefaultExtent bounds the initial layout: positions fall in [-DefaultExtent, DefaultExtent).
const DefaultExtent = 200.0

// NewRand returns a layout source seeded with seed, or from the clock when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build derives the graph from the reference tables: antibiotic nodes in table order,
// then pathogen nodes, then one edge per recorded tuple in ascending pathogen id order.
// rng drives the initial positions (nil seeds from the clock) and extent bounds them
// (non-positive uses DefaultExtent). Build never fails; dangling ids are left for
// validation to report.
func Build(ds *domain.Dataset, rng *rand.Rand, extent float64) *Graph {
	if rng == nil {
		rng = NewRand(0)
	}
	if extent <= 0 {
		extent = DefaultExtent
	}

	nodes := make([]*Node, 0, len(ds.Antibiotics)+len(ds.Pathogens))

	for i := range ds.Antibiotics {
		a := &ds.Antibiotics[i]
		nodes = append(nodes, &Node{
			ID:         AntibioticNodeID(a.ID),
			Type:       domain.NodeAntibiotic,
			Name:       a.Name,
			Class:      a.Class,
			Category:   a.Category,
			Antibiotic: a,
			Color:      visual.AntibioticColor(a.Class),
			Size:       visual.AntibioticSize(CoverageRatio(ds, a.ID)),
			X:          scatter(rng, extent),
			Y:          scatter(rng, extent),
		})
	}

	for i := range ds.Pathogens {
		p := &ds.Pathogens[i]
		nodes = append(nodes, &Node{
			ID:         PathogenNodeID(p.ID),
			Type:       domain.NodePathogen,
			Name:       p.Name,
			CommonName: p.CommonName,
			GramStatus: p.GramStatus,
			Shape:      p.Shape,
			Severity:   p.Severity,
			Pathogen:   p,
			Color:      visual.PathogenColor(p.GramStatus),
			Size:       visual.PathogenSize(p.Severity),
			X:          scatter(rng, extent),
			Y:          scatter(rng, extent),
		})
	}

	edges := make([]Edge, 0, ds.TupleCount())
	for _, pid := range ds.RelationIDs() {
		for _, a := range ds.Relations[pid].Antibiotics {
			edges = append(edges, Edge{
				ID:            EdgeID(pid, a.AntibioticID),
				Source:        PathogenNodeID(pid),
				Target:        AntibioticNodeID(a.AntibioticID),
				Effectiveness: a.Effectiveness,
				Notes:         a.Notes,
				Strength:      visual.EdgeStrength(a.Effectiveness),
				Color:         visual.EdgeColor(a.Effectiveness),
				Width:         visual.EdgeWidth(a.Effectiveness),
			})
		}
	}

	return &Graph{
		Nodes:    nodes,
		Edges:    edges,
		Metadata: newMetadata(nodes, edges),
	}
}

// CoverageRatio is the fraction of pathogens with a tuple for the antibiotic whose
// tuple is rated high or medium. Only the first tuple per pathogen counts. An
// antibiotic with no tuples has ratio 0.
func CoverageRatio(ds *domain.Dataset, antibioticID int) float64 {
	var effective, total int
	for _, rel := range ds.Relations {
		for _, a := range rel.Antibiotics {
			if a.AntibioticID != antibioticID {
				continue
			}
			total++
			if a.Effectiveness.IsEffective() {
				effective++
			}
			break
		}
	}
	if total == 0 {
		return 0
	}
	return float64(effective) / float64(total)
}

func scatter(rng *rand.Rand, extent float64) float64 {
	return rng.Float64()*2*extent - extent
}
