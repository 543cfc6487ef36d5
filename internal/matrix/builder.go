package matrix

import (
	"slices"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/visual"
)

// Build derives the matrix from the reference tables. Rows are ordered by gram status
// (positive, negative, atypical) then name; columns by drug class then name. Names
// compare with English collation.
func Build(ds *domain.Dataset) *Matrix {
	names := newNameCollator()

	rows := make([]Row, 0, len(ds.Pathogens))
	for _, p := range ds.Pathogens {
		rows = append(rows, newRow(p))
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		if d := a.GramStatus.Rank() - b.GramStatus.Rank(); d != 0 {
			return d
		}
		return names.compare(a.Name, b.Name)
	})

	columns := make([]Column, 0, len(ds.Antibiotics))
	for _, a := range ds.Antibiotics {
		columns = append(columns, newColumn(a))
	}
	slices.SortStableFunc(columns, func(a, b Column) int {
		if d := names.compare(a.Class, b.Class); d != 0 {
			return d
		}
		return names.compare(a.Name, b.Name)
	})

	return assemble(rows, columns, newRelationIndex(ds))
}

func newRow(p domain.Pathogen) Row {
	return Row{
		ID:          p.ID,
		Name:        p.Name,
		CommonName:  p.CommonName,
		GramStatus:  p.GramStatus,
		Severity:    p.Severity,
		Shape:       p.Shape,
		Description: p.Description,
		Color:       visual.RowColor(p.GramStatus),
		GroupLabel:  visual.GramStatusLabel(p.GramStatus),
	}
}

func newColumn(a domain.Antibiotic) Column {
	return Column{
		ID:          a.ID,
		Name:        a.Name,
		Class:       a.Class,
		Category:    a.Category,
		Mechanism:   a.Mechanism,
		Route:       a.Route,
		Description: a.Description,
		Color:       visual.ColumnColor(a.Class),
		GroupLabel:  a.Class,
	}
}

// newRelationIndex gives O(1) pair lookup. Only the first tuple per pair is kept.
func newRelationIndex(ds *domain.Dataset) relationIndex {
	idx := make(relationIndex, len(ds.Relations))
	for pid, rel := range ds.Relations {
		byAntibiotic := make(map[int]domain.Activity, len(rel.Antibiotics))
		for _, a := range rel.Antibiotics {
			if _, ok := byAntibiotic[a.AntibioticID]; !ok {
				byAntibiotic[a.AntibioticID] = a
			}
		}
		idx[pid] = byAntibiotic
	}
	return idx
}

// assemble reassigns row and column indices in slice order, then regenerates every
// cell and the metadata. rows and columns must be owned by the caller.
func assemble(rows []Row, columns []Column, relations relationIndex) *Matrix {
	for i := range rows {
		rows[i].Index = i
	}
	for i := range columns {
		columns[i].Index = i
	}

	cells := make([]Cell, 0, len(rows)*len(columns))
	for _, r := range rows {
		for _, c := range columns {
			cells = append(cells, newCell(r, c, relations[r.ID][c.ID]))
		}
	}

	return &Matrix{
		Rows:      rows,
		Columns:   columns,
		Cells:     cells,
		Metadata:  newMetadata(rows, columns, cells),
		relations: relations,
	}
}

func newCell(r Row, c Column, a domain.Activity) Cell {
	return Cell{
		ID:             CellID(r.ID, c.ID),
		PathogenID:     r.ID,
		PathogenName:   r.Name,
		AntibioticID:   c.ID,
		AntibioticName: c.Name,
		Effectiveness:  a.Effectiveness,
		Notes:          a.Notes,
		RowIndex:       r.Index,
		ColumnIndex:    c.Index,
		Color:          visual.CellColor(a.Effectiveness),
		Value:          a.Effectiveness.Value(),
		DisplayText:    visual.DisplayText(a.Effectiveness),
		HasData:        a.Effectiveness.HasData(),
	}
}

func newMetadata(rows []Row, columns []Column, cells []Cell) Metadata {
	m := Metadata{
		TotalRows:             len(rows),
		TotalColumns:          len(columns),
		TotalCells:            len(cells),
		DrugClassDistribution: make(map[string]int),
	}

	for _, c := range cells {
		d := &m.EffectivenessDistribution
		switch c.Effectiveness {
		case domain.EffectivenessHigh:
			d.High++
		case domain.EffectivenessMedium:
			d.Medium++
		case domain.EffectivenessLow:
			d.Low++
		case domain.EffectivenessResistant:
			d.Resistant++
		case domain.EffectivenessNone:
			d.NoData++
		default:
			d.Unknown++
		}
	}

	for _, r := range rows {
		d := &m.GramStatusDistribution
		switch r.GramStatus {
		case domain.GramPositive:
			d.Positive++
		case domain.GramNegative:
			d.Negative++
		case domain.GramAtypical:
			d.Atypical++
		default:
			d.Unknown++
		}
	}

	for _, c := range columns {
		m.DrugClassDistribution[c.Class]++
	}

	return m
}
