// Package network builds the pathogen/antibiotic force-directed graph model and answers
// filter, neighbor, shortest-path and clustering queries over it.
package network

import (
	"fmt"

	"github.com/pathogen-atlas/internal/domain"
)

// Node is one pathogen or antibiotic in the graph. X and Y are the initial layout
// position; a force simulation owns them after Build returns and may move them in place.
type Node struct {
	ID    string          `json:"id"`
	Type  domain.NodeType `json:"type"`
	Name  string          `json:"name"`
	Color string          `json:"color"`
	Size  float64         `json:"size"`
	X     float64         `json:"x"`
	Y     float64         `json:"y"`

	// Antibiotic fields
	Class      string             `json:"class,omitempty"`
	Category   string             `json:"category,omitempty"`
	Antibiotic *domain.Antibiotic `json:"antibiotic,omitempty"`

	// Pathogen fields
	CommonName string            `json:"commonName,omitempty"`
	GramStatus domain.GramStatus `json:"gramStatus,omitempty"`
	Shape      string            `json:"shape,omitempty"`
	Severity   domain.Severity   `json:"severity,omitempty"`
	Pathogen   *domain.Pathogen  `json:"pathogen,omitempty"`
}

// Edge is one recorded effectiveness tuple. Source is always the pathogen node and
// Target the antibiotic node; queries treat the edge as undirected.
type Edge struct {
	ID            string               `json:"id"`
	Source        string               `json:"source"`
	Target        string               `json:"target"`
	Effectiveness domain.Effectiveness `json:"effectiveness"`
	Notes         string               `json:"notes"`
	Strength      float64              `json:"strength"`
	Color         string               `json:"color"`
	Width         float64              `json:"width"`
}

// Metadata summarizes a graph.
type Metadata struct {
	TotalNodes                int                              `json:"totalNodes"`
	AntibioticNodes           int                              `json:"antibioticNodes"`
	PathogenNodes             int                              `json:"pathogenNodes"`
	TotalEdges                int                              `json:"totalEdges"`
	EffectivenessDistribution domain.EffectivenessDistribution `json:"effectivenessDistribution"`
}

// Graph is the derived network model. Nodes are pointers so that every view derived
// from one Build shares a single set of layout positions.
type Graph struct {
	Nodes    []*Node  `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Metadata Metadata `json:"metadata"`
}

// PathogenNodeID returns the node id for a pathogen.
func PathogenNodeID(id int) string {
	return fmt.Sprintf("pathogen-%d", id)
}

// AntibioticNodeID returns the node id for an antibiotic.
func AntibioticNodeID(id int) string {
	return fmt.Sprintf("antibiotic-%d", id)
}

// EdgeID returns the edge id for a pathogen/antibiotic pair.
func EdgeID(pathogenID, antibioticID int) string {
	return fmt.Sprintf("edge-%d-%d", pathogenID, antibioticID)
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, error) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
}

// Edge returns the first edge with the given id.
func (g *Graph) Edge(id string) (*Edge, error) {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i], nil
		}
	}
	return nil, fmt.Errorf("edge %s: %w", id, domain.ErrNotFound)
}

func newMetadata(nodes []*Node, edges []Edge) Metadata {
	m := Metadata{
		TotalNodes: len(nodes),
		TotalEdges: len(edges),
	}
	for _, n := range nodes {
		switch n.Type {
		case domain.NodeAntibiotic:
			m.AntibioticNodes++
		case domain.NodePathogen:
			m.PathogenNodes++
		}
	}
	for _, e := range edges {
		m.EffectivenessDistribution.Add(e.Effectiveness)
	}
	return m
}
