package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var tooltipCmd = &cobra.Command{
	Use:   "tooltip",
	Short: "Describe a graph edge or matrix cell",
}

var tooltipEdgeCmd = &cobra.Command{
	Use:   "edge <edge-id>",
	Short: "Describe a network edge, e.g. edge-1-2",
	Args:  cobra.ExactArgs(1),
	RunE:  runTooltipEdge,
}

var tooltipCellCmd = &cobra.Command{
	Use:   "cell <pathogen-id> <antibiotic-id>",
	Short: "Describe a matrix cell",
	Args:  cobra.ExactArgs(2),
	RunE:  runTooltipCell,
}

func init() {
	tooltipCmd.AddCommand(tooltipEdgeCmd)
	tooltipCmd.AddCommand(tooltipCellCmd)
	rootCmd.AddCommand(tooltipCmd)
}

func runTooltipEdge(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	tip, err := atlas.EdgeTooltip(args[0])
	if err != nil {
		return fmt.Errorf("describing edge: %w", err)
	}
	return printJSON(cmd, tip)
}

func runTooltipCell(cmd *cobra.Command, args []string) error {
	pathogenID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pathogen id %q", args[0])
	}
	antibioticID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid antibiotic id %q", args[1])
	}

	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}
	tip, err := atlas.CellTooltip(pathogenID, antibioticID)
	if err != nil {
		return fmt.Errorf("describing cell: %w", err)
	}
	return printJSON(cmd, tip)
}
