// Package matrix builds the dense pathogen by antibiotic effectiveness heatmap and
// derives sorted, filtered, tooltip and export views from it.
//
// A Matrix is an immutable snapshot. Sort and Filter return new matrices whose rows,
// columns and cells are rebuilt from scratch; the input is never modified.
package matrix

import (
	"fmt"

	"github.com/pathogen-atlas/internal/domain"
)

// Row is one pathogen.
type Row struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	CommonName  string            `json:"commonName"`
	GramStatus  domain.GramStatus `json:"gramStatus"`
	Severity    domain.Severity   `json:"severity"`
	Shape       string            `json:"shape"`
	Description string            `json:"description"`
	Index       int               `json:"index"`
	Color       string            `json:"color"`
	GroupLabel  string            `json:"groupLabel"`
}

// Column is one antibiotic.
type Column struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Class       string `json:"class"`
	Category    string `json:"category"`
	Mechanism   string `json:"mechanism"`
	Route       string `json:"route"`
	Description string `json:"description"`
	Index       int    `json:"index"`
	Color       string `json:"color"`
	GroupLabel  string `json:"groupLabel"`
}

// Cell is one pathogen/antibiotic pair. Every pair has a cell; pairs without a
// recorded tuple carry EffectivenessNone and HasData false.
type Cell struct {
	ID             string               `json:"id"`
	PathogenID     int                  `json:"pathogenId"`
	PathogenName   string               `json:"pathogenName"`
	AntibioticID   int                  `json:"antibioticId"`
	AntibioticName string               `json:"antibioticName"`
	Effectiveness  domain.Effectiveness `json:"effectiveness"`
	Notes          string               `json:"notes"`
	RowIndex       int                  `json:"rowIndex"`
	ColumnIndex    int                  `json:"columnIndex"`
	Color          string               `json:"color"`
	Value          int                  `json:"value"`
	DisplayText    string               `json:"displayText"`
	HasData        bool                 `json:"hasData"`
}

// EffectivenessDistribution counts cells by label. NoData counts cells without a tuple
// and Unknown counts tuples whose label is not one of the four known levels.
type EffectivenessDistribution struct {
	High      int `json:"high"`
	Medium    int `json:"medium"`
	Low       int `json:"low"`
	Resistant int `json:"resistant"`
	NoData    int `json:"noData"`
	Unknown   int `json:"unknown"`
}

// GramStatusDistribution counts rows by gram status.
type GramStatusDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Atypical int `json:"atypical"`
	Unknown  int `json:"unknown"`
}

// Metadata summarizes a matrix.
type Metadata struct {
	TotalRows                 int                       `json:"totalRows"`
	TotalColumns              int                       `json:"totalColumns"`
	TotalCells                int                       `json:"totalCells"`
	EffectivenessDistribution EffectivenessDistribution `json:"effectivenessDistribution"`
	GramStatusDistribution    GramStatusDistribution    `json:"gramStatusDistribution"`
	DrugClassDistribution     map[string]int            `json:"drugClassDistribution"`
}

// relationIndex maps pathogen id to antibiotic id to the first recorded tuple.
type relationIndex map[int]map[int]domain.Activity

// Matrix is the derived heatmap model. Cells are stored row-major in row and column order.
// Sort and Filter regenerate cells from the pair index captured by Build, so a Matrix
// assembled by hand or decoded from JSON regenerates cells without data.
type Matrix struct {
	Rows     []Row    `json:"rows"`
	Columns  []Column `json:"columns"`
	Cells    []Cell   `json:"cells"`
	Metadata Metadata `json:"metadata"`

	relations relationIndex
}

// CellID returns the cell id for a pathogen/antibiotic pair.
func CellID(pathogenID, antibioticID int) string {
	return fmt.Sprintf("cell-%d-%d", pathogenID, antibioticID)
}

// Row returns the row for a pathogen id.
func (m *Matrix) Row(pathogenID int) (*Row, error) {
	for i := range m.Rows {
		if m.Rows[i].ID == pathogenID {
			return &m.Rows[i], nil
		}
	}
	return nil, fmt.Errorf("row %d: %w", pathogenID, domain.ErrNotFound)
}

// Column returns the column for an antibiotic id.
func (m *Matrix) Column(antibioticID int) (*Column, error) {
	for i := range m.Columns {
		if m.Columns[i].ID == antibioticID {
			return &m.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("column %d: %w", antibioticID, domain.ErrNotFound)
}

// Cell returns the cell for a pathogen/antibiotic pair.
func (m *Matrix) Cell(pathogenID, antibioticID int) (*Cell, error) {
	r, err := m.Row(pathogenID)
	if err != nil {
		return nil, err
	}
	c, err := m.Column(antibioticID)
	if err != nil {
		return nil, err
	}
	if cell, ok := m.cellAt(r.Index, c.Index); ok {
		return cell, nil
	}
	return nil, fmt.Errorf("cell %s: %w", CellID(pathogenID, antibioticID), domain.ErrNotFound)
}

// cellAt returns the cell at row r, column c when the dense row-major layout holds.
func (m *Matrix) cellAt(r, c int) (*Cell, bool) {
	if r < 0 || r >= len(m.Rows) || c < 0 || c >= len(m.Columns) {
		return nil, false
	}
	i := r*len(m.Columns) + c
	if i >= len(m.Cells) {
		return nil, false
	}
	cell := &m.Cells[i]
	if cell.PathogenID != m.Rows[r].ID || cell.AntibioticID != m.Columns[c].ID {
		return nil, false
	}
	return cell, true
}
