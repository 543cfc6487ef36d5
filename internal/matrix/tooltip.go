package matrix

import (
	"fmt"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/visual"
)

// PathogenInfo is the pathogen half of a cell tooltip.
type PathogenInfo struct {
	Name        string            `json:"name"`
	CommonName  string            `json:"commonName"`
	GramStatus  domain.GramStatus `json:"gramStatus"`
	Severity    domain.Severity   `json:"severity"`
	Description string            `json:"description"`
}

// AntibioticInfo is the antibiotic half of a cell tooltip.
type AntibioticInfo struct {
	Name        string `json:"name"`
	Class       string `json:"class"`
	Mechanism   string `json:"mechanism"`
	Route       string `json:"route"`
	Description string `json:"description"`
}

// CellTooltip is the hover payload for one cell.
type CellTooltip struct {
	Title             string               `json:"title"`
	Effectiveness     domain.Effectiveness `json:"effectiveness"`
	EffectivenessText string               `json:"effectivenessText"`
	Notes             string               `json:"notes"`
	PathogenInfo      PathogenInfo         `json:"pathogenInfo"`
	AntibioticInfo    AntibioticInfo       `json:"antibioticInfo"`
	ClinicalGuidance  string               `json:"clinicalGuidance"`
}

// NewCellTooltip resolves the cell's row and column in m. A cell that names a pathogen
// or antibiotic absent from m returns an error wrapping domain.ErrNotFound.
func NewCellTooltip(m *Matrix, cell Cell) (*CellTooltip, error) {
	row, err := m.Row(cell.PathogenID)
	if err != nil {
		return nil, fmt.Errorf("tooltip for %s: %w", cell.ID, err)
	}
	col, err := m.Column(cell.AntibioticID)
	if err != nil {
		return nil, fmt.Errorf("tooltip for %s: %w", cell.ID, err)
	}

	return &CellTooltip{
		Title:             fmt.Sprintf("%s vs %s", col.Name, row.Name),
		Effectiveness:     cell.Effectiveness,
		EffectivenessText: cell.DisplayText,
		Notes:             cell.Notes,
		PathogenInfo: PathogenInfo{
			Name:        row.Name,
			CommonName:  row.CommonName,
			GramStatus:  row.GramStatus,
			Severity:    row.Severity,
			Description: row.Description,
		},
		AntibioticInfo: AntibioticInfo{
			Name:        col.Name,
			Class:       col.Class,
			Mechanism:   col.Mechanism,
			Route:       col.Route,
			Description: col.Description,
		},
		ClinicalGuidance: visual.ClinicalGuidance(cell.Effectiveness, cell.Notes),
	}, nil
}
