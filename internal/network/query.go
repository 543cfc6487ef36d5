package network

import (
	"fmt"
	"slices"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/visual"
)

// Filters restricts a graph view. Each non-empty whitelist is an independent AND
// predicate over edges; an empty whitelist does not filter.
type Filters struct {
	Effectiveness []domain.Effectiveness `json:"effectiveness,omitempty"`
	DrugClasses   []string               `json:"drugClasses,omitempty"`
	GramStatuses  []domain.GramStatus    `json:"gramStatuses,omitempty"`
}

// IsEmpty reports whether the filters select the whole graph.
func (f Filters) IsEmpty() bool {
	return len(f.Effectiveness) == 0 && len(f.DrugClasses) == 0 && len(f.GramStatuses) == 0
}

// Filter returns a new graph holding the edges that pass every filter and the nodes
// touched by at least one surviving edge. Nodes not named by any filter can therefore
// disappear. Node pointers are shared with g.
func Filter(g *Graph, f Filters) *Graph {
	edges := slices.Clone(g.Edges)

	if len(f.Effectiveness) > 0 {
		edges = slices.DeleteFunc(edges, func(e Edge) bool {
			return !slices.Contains(f.Effectiveness, e.Effectiveness)
		})
	}

	if len(f.DrugClasses) > 0 {
		allowed := make(map[string]bool)
		for _, n := range g.Nodes {
			if n.Type == domain.NodeAntibiotic && slices.Contains(f.DrugClasses, n.Class) {
				allowed[n.ID] = true
			}
		}
		edges = slices.DeleteFunc(edges, func(e Edge) bool { return !allowed[e.Target] })
	}

	if len(f.GramStatuses) > 0 {
		allowed := make(map[string]bool)
		for _, n := range g.Nodes {
			if n.Type == domain.NodePathogen && slices.Contains(f.GramStatuses, n.GramStatus) {
				allowed[n.ID] = true
			}
		}
		edges = slices.DeleteFunc(edges, func(e Edge) bool { return !allowed[e.Source] })
	}

	connected := make(map[string]bool, 2*len(edges))
	for _, e := range edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}

	nodes := make([]*Node, 0, len(connected))
	for _, n := range g.Nodes {
		if connected[n.ID] {
			nodes = append(nodes, n)
		}
	}

	return &Graph{
		Nodes:    nodes,
		Edges:    edges,
		Metadata: newMetadata(nodes, edges),
	}
}

// Neighbors is the result of FindNeighbors.
type Neighbors struct {
	Neighbors []*Node `json:"neighbors"`
	Edges     []Edge  `json:"edges"`
	Count     int     `json:"count"`
}

// FindNeighbors returns every edge incident to nodeID, in either direction, and the
// nodes at the other end in graph order. An unknown id yields an empty result.
func FindNeighbors(g *Graph, nodeID string) Neighbors {
	edges := []Edge{}
	ids := make(map[string]bool)
	for _, e := range g.Edges {
		switch nodeID {
		case e.Source:
			ids[e.Target] = true
		case e.Target:
			ids[e.Source] = true
		default:
			continue
		}
		edges = append(edges, e)
	}

	neighbors := []*Node{}
	for _, n := range g.Nodes {
		if ids[n.ID] {
			neighbors = append(neighbors, n)
		}
	}

	return Neighbors{
		Neighbors: neighbors,
		Edges:     edges,
		Count:     len(neighbors),
	}
}

// FindShortestPath runs a breadth-first search over the undirected adjacency of g and
// returns the node ids from sourceID to targetID inclusive. The boolean is false when
// no path exists. Equal ids return a one-element path without consulting the graph.
func FindShortestPath(g *Graph, sourceID, targetID string) ([]string, bool) {
	if sourceID == targetID {
		return []string{sourceID}, true
	}

	adjacency := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adjacency[n.ID] = nil
	}
	for _, e := range g.Edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}

	// parent doubles as the visited set; nodes are marked when enqueued.
	parent := map[string]string{sourceID: ""}
	queue := []string{sourceID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == targetID {
			return walkBack(parent, sourceID, targetID), true
		}

		for _, next := range adjacency[current] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			queue = append(queue, next)
		}
	}

	return nil, false
}

func walkBack(parent map[string]string, sourceID, targetID string) []string {
	path := []string{targetID}
	for id := targetID; id != sourceID; {
		id = parent[id]
		path = append(path, id)
	}
	slices.Reverse(path)
	return path
}

// Clusters groups a graph three independent ways.
type Clusters struct {
	ByDrugClass     map[string][]*Node              `json:"byDrugClass"`
	ByGramStatus    map[domain.GramStatus][]*Node   `json:"byGramStatus"`
	ByEffectiveness map[domain.Effectiveness][]Edge `json:"byEffectiveness"`
}

// GenerateClusters buckets antibiotic nodes by drug class, pathogen nodes by gram
// status and edges by effectiveness label. Members keep graph order.
func GenerateClusters(g *Graph) Clusters {
	c := Clusters{
		ByDrugClass:     make(map[string][]*Node),
		ByGramStatus:    make(map[domain.GramStatus][]*Node),
		ByEffectiveness: make(map[domain.Effectiveness][]Edge),
	}

	for _, n := range g.Nodes {
		switch n.Type {
		case domain.NodeAntibiotic:
			c.ByDrugClass[n.Class] = append(c.ByDrugClass[n.Class], n)
		case domain.NodePathogen:
			c.ByGramStatus[n.GramStatus] = append(c.ByGramStatus[n.GramStatus], n)
		}
	}
	for _, e := range g.Edges {
		c.ByEffectiveness[e.Effectiveness] = append(c.ByEffectiveness[e.Effectiveness], e)
	}

	return c
}

// EdgeTooltip is the hover payload for one edge.
type EdgeTooltip struct {
	Title         string               `json:"title"`
	Pathogen      string               `json:"pathogen"`
	Antibiotic    string               `json:"antibiotic"`
	DrugClass     string               `json:"drugClass"`
	GramStatus    string               `json:"gramStatus"`
	Effectiveness domain.Effectiveness `json:"effectiveness"`
	DisplayText   string               `json:"displayText"`
	Notes         string               `json:"notes"`
	Strength      float64              `json:"strength"`
	Guidance      string               `json:"guidance"`
}

// NewEdgeTooltip resolves an edge and both endpoints in g. Any miss returns an error
// wrapping domain.ErrNotFound.
func NewEdgeTooltip(g *Graph, edgeID string) (*EdgeTooltip, error) {
	e, err := g.Edge(edgeID)
	if err != nil {
		return nil, err
	}
	pathogen, err := g.Node(e.Source)
	if err != nil {
		return nil, fmt.Errorf("edge %s source: %w", edgeID, err)
	}
	antibiotic, err := g.Node(e.Target)
	if err != nil {
		return nil, fmt.Errorf("edge %s target: %w", edgeID, err)
	}

	return &EdgeTooltip{
		Title:         fmt.Sprintf("%s vs %s", antibiotic.Name, pathogen.Name),
		Pathogen:      pathogen.Name,
		Antibiotic:    antibiotic.Name,
		DrugClass:     antibiotic.Class,
		GramStatus:    visual.GramStatusLabel(pathogen.GramStatus),
		Effectiveness: e.Effectiveness,
		DisplayText:   visual.DisplayText(e.Effectiveness),
		Notes:         e.Notes,
		Strength:      e.Strength,
		Guidance:      visual.ClinicalGuidance(e.Effectiveness, e.Notes),
	}, nil
}
