package matrix

import (
	"slices"

	"github.com/pathogen-atlas/internal/domain"
)

// Filters restricts a matrix view. Empty whitelists do not filter.
type Filters struct {
	GramStatuses  []domain.GramStatus    `json:"gramStatuses,omitempty"`
	DrugClasses   []string               `json:"drugClasses,omitempty"`
	Effectiveness []domain.Effectiveness `json:"effectiveness,omitempty"`
}

// IsEmpty reports whether the filters select the whole matrix.
func (f Filters) IsEmpty() bool {
	return len(f.GramStatuses) == 0 && len(f.DrugClasses) == 0 && len(f.Effectiveness) == 0
}

// Filter returns a new matrix restricted to the whitelisted gram statuses and drug
// classes. The effectiveness whitelist keeps only rows and columns that appear in at
// least one matching cell of m itself, before the other filters are applied, so a
// surviving row is not guaranteed a matching cell among the surviving columns.
func Filter(m *Matrix, f Filters) *Matrix {
	rows := slices.Clone(m.Rows)
	columns := slices.Clone(m.Columns)

	if len(f.GramStatuses) > 0 {
		rows = slices.DeleteFunc(rows, func(r Row) bool { return !slices.Contains(f.GramStatuses, r.GramStatus) })
	}

	if len(f.DrugClasses) > 0 {
		columns = slices.DeleteFunc(columns, func(c Column) bool { return !slices.Contains(f.DrugClasses, c.Class) })
	}

	if len(f.Effectiveness) > 0 {
		pathogens := make(map[int]bool)
		antibiotics := make(map[int]bool)
		for _, c := range m.Cells {
			if c.Effectiveness.HasData() && slices.Contains(f.Effectiveness, c.Effectiveness) {
				pathogens[c.PathogenID] = true
				antibiotics[c.AntibioticID] = true
			}
		}
		rows = slices.DeleteFunc(rows, func(r Row) bool { return !pathogens[r.ID] })
		columns = slices.DeleteFunc(columns, func(c Column) bool { return !antibiotics[c.ID] })
	}

	return assemble(rows, columns, m.relations)
}
