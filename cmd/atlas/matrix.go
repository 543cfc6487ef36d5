package main

import (
	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/matrix"
)

var (
	matrixGram          []string
	matrixClasses       []string
	matrixEffectiveness []string
	matrixRowSort       string
	matrixColumnSort    string
	matrixDescending    bool
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the pathogen x antibiotic effectiveness matrix",
	Long: `Print the effectiveness matrix: one row per pathogen, one column per antibiotic
and a cell for every pair. Filters run before sorting.

Examples:
  atlas matrix
  atlas matrix --gram negative --row-sort severity --desc
  atlas matrix --effectiveness low --column-sort class`,
	Args: cobra.NoArgs,
	RunE: runMatrix,
}

func init() {
	addMatrixViewFlags(matrixCmd)
	rootCmd.AddCommand(matrixCmd)
}

// addMatrixViewFlags registers the filter and sort flags shared by matrix and export.
func addMatrixViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&matrixGram, "gram", nil, "Keep rows with these gram statuses (positive, negative, atypical)")
	cmd.Flags().StringSliceVar(&matrixClasses, "class", nil, "Keep columns in these drug classes")
	cmd.Flags().StringSliceVar(&matrixEffectiveness, "effectiveness", nil, "Keep rows and columns with a cell at these levels")
	cmd.Flags().StringVar(&matrixRowSort, "row-sort", "", "Row order (name, gramStatus, severity; default: gram status then name)")
	cmd.Flags().StringVar(&matrixColumnSort, "column-sort", "", "Column order (name, class; default: class then name)")
	cmd.Flags().BoolVar(&matrixDescending, "desc", false, "Reverse both orders; alone, reverses the default order")
}

func matrixViewOptions() (matrix.Filters, matrix.SortOptions) {
	filters := matrix.Filters{
		GramStatuses:  asEnum[domain.GramStatus](matrixGram),
		DrugClasses:   matrixClasses,
		Effectiveness: asEnum[domain.Effectiveness](matrixEffectiveness),
	}
	opts := matrix.SortOptions{
		RowSort:    matrix.RowSortKey(matrixRowSort),
		ColumnSort: matrix.ColumnSortKey(matrixColumnSort),
		Descending: matrixDescending,
	}
	return filters, opts
}

func runMatrix(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}
	return printJSON(cmd, atlas.MatrixView(matrixViewOptions()))
}
