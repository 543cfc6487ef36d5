package matrix

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RowSortKey selects the row ordering.
type RowSortKey string

const (
	RowSortName       RowSortKey = "name"
	RowSortGramStatus RowSortKey = "gramStatus"
	RowSortSeverity   RowSortKey = "severity"
)

// ColumnSortKey selects the column ordering.
type ColumnSortKey string

const (
	ColumnSortName  ColumnSortKey = "name"
	ColumnSortClass ColumnSortKey = "class"
)

// SortOptions configures Sort. Empty keys sort by name; the zero value sorts both axes
// by name ascending.
type SortOptions struct {
	RowSort    RowSortKey    `json:"rowSort,omitempty"`
	ColumnSort ColumnSortKey `json:"columnSort,omitempty"`
	Descending bool          `json:"descending,omitempty"`
}

// Sort returns a new matrix with rows and columns reordered, indices reassigned and
// cells regenerated. Sorting is stable, so equal keys keep their current relative
// order. An unrecognized key leaves that axis in its current order.
func Sort(m *Matrix, opts SortOptions) *Matrix {
	names := newNameCollator()
	sign := 1
	if opts.Descending {
		sign = -1
	}

	rows := slices.Clone(m.Rows)
	switch opts.RowSort {
	case RowSortName, "":
		slices.SortStableFunc(rows, func(a, b Row) int { return sign * names.compare(a.Name, b.Name) })
	case RowSortGramStatus:
		slices.SortStableFunc(rows, func(a, b Row) int { return sign * (a.GramStatus.Rank() - b.GramStatus.Rank()) })
	case RowSortSeverity:
		slices.SortStableFunc(rows, func(a, b Row) int { return sign * (a.Severity.Rank() - b.Severity.Rank()) })
	default:
		// keep current order
	}

	columns := slices.Clone(m.Columns)
	switch opts.ColumnSort {
	case ColumnSortName, "":
		slices.SortStableFunc(columns, func(a, b Column) int { return sign * names.compare(a.Name, b.Name) })
	case ColumnSortClass:
		slices.SortStableFunc(columns, func(a, b Column) int { return sign * names.compare(a.Class, b.Class) })
	default:
		// keep current order
	}

	return assemble(rows, columns, m.relations)
}

// Reverse returns a new matrix with the current row and column orders reversed.
func Reverse(m *Matrix) *Matrix {
	rows := slices.Clone(m.Rows)
	slices.Reverse(rows)
	columns := slices.Clone(m.Columns)
	slices.Reverse(columns)
	return assemble(rows, columns, m.relations)
}

// nameCollator compares display names with English collation. Collators are not safe
// for concurrent use; make one per call.
type nameCollator struct {
	c *collate.Collator
}

func newNameCollator() nameCollator {
	return nameCollator{c: collate.New(language.English)}
}

func (n nameCollator) compare(a, b string) int {
	return n.c.CompareString(a, b)
}
