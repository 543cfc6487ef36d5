package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the reference tables and the derived models",
	Long: `Validate the configured reference tables and run the structural checks over
the network graph, the matrix and the coverage diagram. Exits 1 when any check
reports a violation.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validateResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	violations := atlas.Validate()
	if violations == nil {
		violations = []string{}
	}
	if err := printJSON(cmd, validateResponse{Valid: len(violations) == 0, Violations: violations}); err != nil {
		return err
	}
	if len(violations) > 0 {
		return fmt.Errorf("self-check found %d violations", len(violations))
	}
	return nil
}
