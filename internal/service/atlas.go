package service

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/pathogen-atlas/internal/coverage"
	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/matrix"
	"github.com/pathogen-atlas/internal/network"
	"github.com/pathogen-atlas/internal/radar"
	"github.com/pathogen-atlas/internal/selfcheck"
)

// Atlas serves graph and matrix views over one dataset. The base graph and matrix
// are built once at construction; filtered and sorted views are memoized.
type Atlas struct {
	dataset *domain.Dataset
	layout  domain.LayoutConfig

	graph  *network.Graph
	matrix *matrix.Matrix

	// View caches keyed by a canonical filter key
	graphViews  *lru.Cache[string, *network.Graph]
	matrixViews *lru.Cache[string, *matrix.Matrix]

	logger  *logrus.Logger
	stats   *CacheStats
	statsMu sync.RWMutex
}

// CacheStats represents view cache performance statistics
type CacheStats struct {
	GraphHits     int64     `json:"graph_hits"`
	GraphMisses   int64     `json:"graph_misses"`
	MatrixHits    int64     `json:"matrix_hits"`
	MatrixMisses  int64     `json:"matrix_misses"`
	TotalRequests int64     `json:"total_requests"`
	LastReset     time.Time `json:"last_reset"`
}

// AtlasConfig represents configuration for the atlas service
type AtlasConfig struct {
	Layout   domain.LayoutConfig `json:"layout"`
	MaxItems int                 `json:"max_items"`
}

// NewAtlas builds the base models for ds and creates the view caches
func NewAtlas(ds *domain.Dataset, config AtlasConfig, logger *logrus.Logger) (*Atlas, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}
	if config.MaxItems <= 0 {
		config.MaxItems = 128
	}

	graphViews, err := lru.New[string, *network.Graph](config.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create graph view cache: %w", err)
	}
	matrixViews, err := lru.New[string, *matrix.Matrix](config.MaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create matrix view cache: %w", err)
	}

	start := time.Now()
	a := &Atlas{
		dataset:     ds,
		layout:      config.Layout,
		graph:       network.Build(ds, network.NewRand(config.Layout.Seed), config.Layout.Extent),
		matrix:      matrix.Build(ds),
		graphViews:  graphViews,
		matrixViews: matrixViews,
		logger:      logger,
		stats: &CacheStats{
			LastReset: time.Now(),
		},
	}

	logger.WithFields(logrus.Fields{
		"pathogens":   len(ds.Pathogens),
		"antibiotics": len(ds.Antibiotics),
		"edges":       len(a.graph.Edges),
		"cells":       len(a.matrix.Cells),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Built atlas models")

	return a, nil
}

// Dataset returns the reference tables the atlas was built from
func (a *Atlas) Dataset() *domain.Dataset {
	return a.dataset
}

// Graph returns the unfiltered graph
func (a *Atlas) Graph() *network.Graph {
	return a.graph
}

// Matrix returns the unfiltered matrix in default order
func (a *Atlas) Matrix() *matrix.Matrix {
	return a.matrix
}

// ForceConfig returns the layout simulation settings for g, or for the base graph
// when g is nil
func (a *Atlas) ForceConfig(g *network.Graph) *network.ForceConfig {
	if g == nil {
		g = a.graph
	}
	return network.NewForceConfig(g, a.layout)
}

// FilterGraph returns the graph view selected by f
func (a *Atlas) FilterGraph(f network.Filters) *network.Graph {
	a.incrementStat("total_requests")
	if f.IsEmpty() {
		return a.graph
	}

	key := graphKey(f)
	if g, ok := a.graphViews.Get(key); ok {
		a.incrementStat("graph_hits")
		a.logger.WithField("view_key", key).Debug("Graph view cache hit")
		return g
	}
	a.incrementStat("graph_misses")

	g := network.Filter(a.graph, f)
	a.graphViews.Add(key, g)

	a.logger.WithFields(logrus.Fields{
		"view_key": key,
		"nodes":    len(g.Nodes),
		"edges":    len(g.Edges),
	}).Debug("Built graph view")

	return g
}

// MatrixView filters the base matrix by f and then orders it by opts. Without sort keys
// the build order (gram status, then name) is kept, reversed when Descending is set.
func (a *Atlas) MatrixView(f matrix.Filters, opts matrix.SortOptions) *matrix.Matrix {
	a.incrementStat("total_requests")

	key := matrixKey(f, opts)
	if m, ok := a.matrixViews.Get(key); ok {
		a.incrementStat("matrix_hits")
		a.logger.WithField("view_key", key).Debug("Matrix view cache hit")
		return m
	}
	a.incrementStat("matrix_misses")

	m := a.matrix
	if !f.IsEmpty() {
		m = matrix.Filter(m, f)
	}
	switch {
	case opts == (matrix.SortOptions{}):
		// keep build order
	case opts.RowSort == "" && opts.ColumnSort == "":
		m = matrix.Reverse(m)
	default:
		m = matrix.Sort(m, opts)
	}
	a.matrixViews.Add(key, m)

	a.logger.WithFields(logrus.Fields{
		"view_key": key,
		"rows":     len(m.Rows),
		"columns":  len(m.Columns),
	}).Debug("Built matrix view")

	return m
}

// Neighbors returns the nodes adjacent to nodeID in the base graph
func (a *Atlas) Neighbors(nodeID string) (network.Neighbors, error) {
	if _, err := a.graph.Node(nodeID); err != nil {
		return network.Neighbors{}, err
	}
	return network.FindNeighbors(a.graph, nodeID), nil
}

// ShortestPath returns the node ids of a shortest path between two nodes of the base
// graph. The bool result is false when no path exists.
func (a *Atlas) ShortestPath(sourceID, targetID string) ([]string, bool) {
	path, ok := network.FindShortestPath(a.graph, sourceID, targetID)
	a.logger.WithFields(logrus.Fields{
		"source": sourceID,
		"target": targetID,
		"found":  ok,
		"hops":   max(len(path)-1, 0),
	}).Debug("Shortest path search")
	return path, ok
}

// Clusters groups the base graph
func (a *Atlas) Clusters() network.Clusters {
	return network.GenerateClusters(a.graph)
}

// EdgeTooltip describes one edge of the base graph
func (a *Atlas) EdgeTooltip(edgeID string) (*network.EdgeTooltip, error) {
	return network.NewEdgeTooltip(a.graph, edgeID)
}

// CellTooltip describes the cell for a pathogen and antibiotic pair
func (a *Atlas) CellTooltip(pathogenID, antibioticID int) (*matrix.CellTooltip, error) {
	cell, err := a.matrix.Cell(pathogenID, antibioticID)
	if err != nil {
		return nil, err
	}
	return matrix.NewCellTooltip(a.matrix, *cell)
}

// Export renders a matrix view in the requested format
func (a *Atlas) Export(f matrix.Filters, opts matrix.SortOptions, format matrix.Format, now time.Time) *matrix.Export {
	e := matrix.GenerateExport(a.MatrixView(f, opts), format, now)
	a.logger.WithFields(logrus.Fields{
		"format":   e.Format,
		"filename": e.Filename,
	}).Info("Generated matrix export")
	return e
}

// Categories groups the pathogens by gram status
func (a *Atlas) Categories() coverage.Categories {
	return coverage.Categorize(a.dataset)
}

// Coverage places every antibiotic in the spectrum diagram
func (a *Atlas) Coverage() []coverage.VennEntry {
	return coverage.AllVennData(a.dataset)
}

// RadarProfile scores one antibiotic on every radar axis
func (a *Atlas) RadarProfile(antibioticID int) (*radar.Dimensions, error) {
	return radar.Calculate(a.dataset, antibioticID)
}

// CompareRadar builds plot series for the given antibiotics, or for every antibiotic
// when no ids are given
func (a *Atlas) CompareRadar(antibioticIDs ...int) ([]radar.Series, error) {
	if len(antibioticIDs) == 0 {
		for _, ab := range a.dataset.Antibiotics {
			antibioticIDs = append(antibioticIDs, ab.ID)
		}
	}

	series, err := radar.Compare(a.dataset, antibioticIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compare antibiotics: %w", err)
	}
	a.logger.WithField("antibiotics", len(series)).Debug("Built radar series")
	return series, nil
}

// RadarStatistics summarizes every radar axis over the antibiotic table
func (a *Atlas) RadarStatistics() radar.Statistics {
	return radar.CalculateStatistics(a.dataset)
}

// Validate runs every self-check against the dataset
func (a *Atlas) Validate() []string {
	violations := selfcheck.Run(a.dataset)
	entry := a.logger.WithField("violations", len(violations))
	if len(violations) > 0 {
		entry.Warn("Self-check found violations")
	} else {
		entry.Info("Self-check passed")
	}
	return violations
}

// InvalidateCache drops every memoized view and resets the statistics
func (a *Atlas) InvalidateCache() {
	a.graphViews.Purge()
	a.matrixViews.Purge()

	a.statsMu.Lock()
	a.stats = &CacheStats{LastReset: time.Now()}
	a.statsMu.Unlock()

	a.logger.Info("Invalidated atlas view caches")
}

// CacheStats returns view cache performance statistics
func (a *Atlas) CacheStats() CacheStats {
	a.statsMu.RLock()
	defer a.statsMu.RUnlock()
	return *a.stats
}

func (a *Atlas) incrementStat(statName string) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()

	switch statName {
	case "graph_hits":
		a.stats.GraphHits++
	case "graph_misses":
		a.stats.GraphMisses++
	case "matrix_hits":
		a.stats.MatrixHits++
	case "matrix_misses":
		a.stats.MatrixMisses++
	case "total_requests":
		a.stats.TotalRequests++
	}
}

// Helper functions

func graphKey(f network.Filters) string {
	return strings.Join([]string{
		"effectiveness=" + joinSorted(f.Effectiveness),
		"class=" + joinSorted(f.DrugClasses),
		"gram=" + joinSorted(f.GramStatuses),
	}, "|")
}

func matrixKey(f matrix.Filters, opts matrix.SortOptions) string {
	return strings.Join([]string{
		"effectiveness=" + joinSorted(f.Effectiveness),
		"class=" + joinSorted(f.DrugClasses),
		"gram=" + joinSorted(f.GramStatuses),
		fmt.Sprintf("rows=%s", opts.RowSort),
		fmt.Sprintf("columns=%s", opts.ColumnSort),
		fmt.Sprintf("desc=%t", opts.Descending),
	}, "|")
}

// joinSorted renders a whitelist independent of its order and duplicates.
func joinSorted[S ~string](values []S) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	slices.Sort(out)
	return strings.Join(slices.Compact(out), ",")
}
