package main

import (
	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/coverage"
)

var coverageCategories bool

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Place every antibiotic in the gram-positive/gram-negative/atypical diagram",
	Args:  cobra.NoArgs,
	RunE:  runCoverage,
}

func init() {
	coverageCmd.Flags().BoolVar(&coverageCategories, "categories", false, "Include the pathogen groups")
	rootCmd.AddCommand(coverageCmd)
}

type coverageResponse struct {
	Antibiotics []coverage.VennEntry `json:"antibiotics"`
	Categories  *coverage.Categories `json:"categories,omitempty"`
}

func runCoverage(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	resp := coverageResponse{Antibiotics: atlas.Coverage()}
	if coverageCategories {
		c := atlas.Categories()
		resp.Categories = &c
	}
	return printJSON(cmd, resp)
}
