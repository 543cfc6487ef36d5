package network

import (
	"github.com/pathogen-atlas/internal/domain"
)

// Force simulation defaults
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	linkDistance      = 80.0
	chargeStrength    = -200.0
	chargeDistanceMax = 400.0
	collisionPadding  = 5.0
	collisionStrength = 0.7
	alphaMin          = 0.001
	alphaDecay        = 0.01
	velocityDecay     = 0.4
	simulationSteps   = 300
)

// LinkForce pulls connected nodes together. Strength is keyed by edge id.
type LinkForce struct {
	Distance float64            `json:"distance"`
	Strength map[string]float64 `json:"strength"`
}

// ChargeForce repels nodes from each other.
type ChargeForce struct {
	Strength    float64 `json:"strength"`
	DistanceMax float64 `json:"distanceMax"`
}

// CenterForce anchors the layout to the canvas center.
type CenterForce struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CollisionForce keeps nodes from overlapping. Radius is keyed by node id.
type CollisionForce struct {
	Radius   map[string]float64 `json:"radius"`
	Strength float64            `json:"strength"`
}

// Forces groups the per-force settings.
type Forces struct {
	Link      LinkForce      `json:"link"`
	Charge    ChargeForce    `json:"charge"`
	Center    CenterForce    `json:"center"`
	Collision CollisionForce `json:"collision"`
}

// Simulation holds the cooling schedule of the layout loop.
type Simulation struct {
	AlphaMin      float64 `json:"alphaMin"`
	AlphaDecay    float64 `json:"alphaDecay"`
	VelocityDecay float64 `json:"velocityDecay"`
	Iterations    int     `json:"iterations"`
}

// ForceConfig is everything a force-layout consumer needs to run its own simulation
// over the graph. The layout loop itself lives with the consumer.
type ForceConfig struct {
	Forces     Forces     `json:"forces"`
	Simulation Simulation `json:"simulation"`
	Nodes      []*Node    `json:"nodes"`
	Edges      []Edge     `json:"edges"`
}

// NewForceConfig derives the simulation settings for g. A zero canvas dimension in
// layout falls back to DefaultWidth or DefaultHeight.
func NewForceConfig(g *Graph, layout domain.LayoutConfig) *ForceConfig {
	width, height := layout.Width, layout.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	strength := make(map[string]float64, len(g.Edges))
	for _, e := range g.Edges {
		strength[e.ID] = e.Strength
	}
	radius := make(map[string]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		radius[n.ID] = n.Size + collisionPadding
	}

	return &ForceConfig{
		Forces: Forces{
			Link:      LinkForce{Distance: linkDistance, Strength: strength},
			Charge:    ChargeForce{Strength: chargeStrength, DistanceMax: chargeDistanceMax},
			Center:    CenterForce{X: width / 2, Y: height / 2},
			Collision: CollisionForce{Radius: radius, Strength: collisionStrength},
		},
		Simulation: Simulation{
			AlphaMin:      alphaMin,
			AlphaDecay:    alphaDecay,
			VelocityDecay: velocityDecay,
			Iterations:    simulationSteps,
		},
		Nodes: g.Nodes,
		Edges: g.Edges,
	}
}
