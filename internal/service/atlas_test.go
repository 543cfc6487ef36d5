package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/matrix"
	"github.com/pathogen-atlas/internal/network"
	"github.com/pathogen-atlas/internal/reference"
)

func createTestAtlas(t *testing.T) (*Atlas, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	a, err := NewAtlas(reference.MustDefault(), AtlasConfig{
		Layout:   domain.LayoutConfig{Seed: 42, Width: 800, Height: 600, Extent: 200},
		MaxItems: 8,
	}, logger)
	require.NoError(t, err)
	return a, hook
}

func TestNewAtlas(t *testing.T) {
	a, hook := createTestAtlas(t)

	assert.Len(t, a.Graph().Nodes, 25)
	assert.Len(t, a.Graph().Edges, 53)
	assert.Len(t, a.Matrix().Cells, 150)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Built atlas models", entry.Message)
	assert.Equal(t, 53, entry.Data["edges"])
}

func TestNewAtlas_NilDataset(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewAtlas(nil, AtlasConfig{}, logger)
	assert.Error(t, err)
}

func TestNewAtlas_SeededLayoutIsReproducible(t *testing.T) {
	a, _ := createTestAtlas(t)
	b, _ := createTestAtlas(t)

	for i := range a.Graph().Nodes {
		assert.Equal(t, a.Graph().Nodes[i].X, b.Graph().Nodes[i].X)
		assert.Equal(t, a.Graph().Nodes[i].Y, b.Graph().Nodes[i].Y)
	}
}

func TestAtlas_FilterGraph_Caches(t *testing.T) {
	a, _ := createTestAtlas(t)

	f := network.Filters{Effectiveness: []domain.Effectiveness{domain.EffectivenessHigh, domain.EffectivenessResistant}}
	first := a.FilterGraph(f)
	assert.Len(t, first.Edges, 31)

	// Same whitelist in another order hits the cached view
	second := a.FilterGraph(network.Filters{Effectiveness: []domain.Effectiveness{domain.EffectivenessResistant, domain.EffectivenessHigh}})
	assert.Same(t, first, second)

	stats := a.CacheStats()
	assert.Equal(t, int64(1), stats.GraphMisses)
	assert.Equal(t, int64(1), stats.GraphHits)
	assert.Equal(t, int64(2), stats.TotalRequests)
}

func TestAtlas_FilterGraph_EmptyFiltersReturnBase(t *testing.T) {
	a, _ := createTestAtlas(t)

	assert.Same(t, a.Graph(), a.FilterGraph(network.Filters{}))
	assert.Zero(t, a.CacheStats().GraphMisses)
}

func TestAtlas_MatrixView(t *testing.T) {
	a, _ := createTestAtlas(t)

	f := matrix.Filters{GramStatuses: []domain.GramStatus{domain.GramNegative}}
	opts := matrix.SortOptions{RowSort: matrix.RowSortName}

	m := a.MatrixView(f, opts)
	require.Len(t, m.Rows, 5)
	assert.Len(t, m.Cells, 5*15)
	ids := make([]int, 0, len(m.Rows))
	for _, r := range m.Rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{9, 2, 8, 6, 4}, ids)

	assert.Same(t, m, a.MatrixView(f, opts))
	assert.NotSame(t, m, a.MatrixView(f, matrix.SortOptions{RowSort: matrix.RowSortName, Descending: true}))

	stats := a.CacheStats()
	assert.Equal(t, int64(1), stats.MatrixHits)
	assert.Equal(t, int64(2), stats.MatrixMisses)

	// The base matrix keeps its default order
	assert.Equal(t, 10, a.Matrix().Rows[0].ID)
}

func TestAtlas_Queries(t *testing.T) {
	a, _ := createTestAtlas(t)

	path, ok := a.ShortestPath("antibiotic-12", "antibiotic-13")
	require.True(t, ok)
	assert.Equal(t, []string{"antibiotic-12", "pathogen-10", "antibiotic-2", "pathogen-1", "antibiotic-13"}, path)

	n, err := a.Neighbors("antibiotic-12")
	require.NoError(t, err)
	assert.Equal(t, 1, n.Count)

	_, err = a.Neighbors("antibiotic-99")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Len(t, a.Clusters().ByDrugClass, 14)
}

func TestAtlas_Tooltips(t *testing.T) {
	a, _ := createTestAtlas(t)

	tip, err := a.EdgeTooltip("edge-1-2")
	require.NoError(t, err)
	assert.Equal(t, "Vancomycin vs Staphylococcus aureus", tip.Title)

	cell, err := a.CellTooltip(1, 2)
	require.NoError(t, err)
	assert.Equal(t, tip.Title, cell.Title)

	_, err = a.CellTooltip(1, 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAtlas_Export(t *testing.T) {
	a, hook := createTestAtlas(t)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	e := a.Export(matrix.Filters{}, matrix.SortOptions{}, matrix.FormatCSV, now)

	assert.Equal(t, "antibiotic_effectiveness_matrix_2026-03-10.csv", e.Filename)
	assert.Len(t, e.Rows, 10)
	assert.Equal(t, "Generated matrix export", hook.LastEntry().Message)
}

func TestAtlas_CoverageAndValidate(t *testing.T) {
	a, hook := createTestAtlas(t)

	assert.Len(t, a.Coverage(), 15)
	assert.Len(t, a.Categories().GramPositive.Pathogens, 5)

	assert.Empty(t, a.Validate())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestAtlas_ValidateWarnsOnViolations(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ds := reference.MustDefault()
	ds.Pathogens[0].GramStatus = "gram-variable"

	a, err := NewAtlas(ds, AtlasConfig{}, logger)
	require.NoError(t, err)

	assert.NotEmpty(t, a.Validate())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Self-check found violations", hook.LastEntry().Message)
}

func TestAtlas_InvalidateCache(t *testing.T) {
	a, _ := createTestAtlas(t)

	f := network.Filters{DrugClasses: []string{"Penicillin"}}
	first := a.FilterGraph(f)
	a.InvalidateCache()

	assert.Zero(t, a.CacheStats().TotalRequests)
	assert.NotSame(t, first, a.FilterGraph(f))
	assert.Equal(t, int64(1), a.CacheStats().GraphMisses)
}

func TestViewKeys(t *testing.T) {
	assert.Equal(t,
		"effectiveness=high,low|class=|gram=",
		graphKey(network.Filters{Effectiveness: []domain.Effectiveness{"low", "high", "low"}}))

	assert.Equal(t,
		"effectiveness=|class=Penicillin|gram=negative|rows=severity|columns=|desc=true",
		matrixKey(matrix.Filters{DrugClasses: []string{"Penicillin"}, GramStatuses: []domain.GramStatus{"negative"}},
			matrix.SortOptions{RowSort: matrix.RowSortSeverity, Descending: true}))
}

func TestAtlas_ForceConfig(t *testing.T) {
	a, _ := createTestAtlas(t)

	base := a.ForceConfig(nil)
	assert.Len(t, base.Forces.Link.Strength, 53)
	assert.Equal(t, 400.0, base.Forces.Center.X)

	view := a.FilterGraph(network.Filters{Effectiveness: []domain.Effectiveness{domain.EffectivenessHigh}})
	assert.Len(t, a.ForceConfig(view).Forces.Link.Strength, 22)
}

func TestAtlas_MatrixView_ZeroOptionsKeepBuildOrder(t *testing.T) {
	a, _ := createTestAtlas(t)

	m := a.MatrixView(matrix.Filters{}, matrix.SortOptions{})
	assert.Equal(t, a.Matrix().Rows, m.Rows)
	assert.Equal(t, a.Matrix().Columns, m.Columns)
}

func TestAtlas_MatrixView_DescendingOnlyReversesBuildOrder(t *testing.T) {
	a, _ := createTestAtlas(t)

	m := a.MatrixView(matrix.Filters{}, matrix.SortOptions{Descending: true})
	require.Len(t, m.Rows, 10)
	assert.Equal(t, 4, m.Rows[0].ID)
	assert.Equal(t, 10, m.Rows[9].ID)
	assert.Equal(t, a.Matrix().Columns[len(a.Matrix().Columns)-1].ID, m.Columns[0].ID)

	// Gram groups stay contiguous, negatives first
	assert.Equal(t, domain.GramNegative, m.Rows[4].GramStatus)
	assert.Equal(t, domain.GramPositive, m.Rows[5].GramStatus)
}

func TestAtlas_Radar(t *testing.T) {
	a, hook := createTestAtlas(t)

	d, err := a.RadarProfile(2)
	require.NoError(t, err)
	assert.Equal(t, "Vancomycin", d.AntibioticName)
	assert.Equal(t, 60, d.RouteFlexibility)

	all, err := a.CompareRadar()
	require.NoError(t, err)
	assert.Len(t, all, 15)
	assert.Equal(t, "Built radar series", hook.LastEntry().Message)

	some, err := a.CompareRadar(5, 9)
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "Doxycycline", some[1].Name)

	_, err = a.CompareRadar(99)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, 15, a.RadarStatistics().TotalAntibiotics)
}
