package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/radar"
)

var radarStats bool

var radarCmd = &cobra.Command{
	Use:   "radar [antibiotic-id...]",
	Short: "Score antibiotics on the six radar chart axes",
	Long: `Score antibiotics for a radar (spider) chart comparison: gram-positive,
gram-negative and atypical coverage, resistance profile, route flexibility and
safety profile, each on a 0-100 scale. Without ids every antibiotic is scored.

Examples:
  atlas radar
  atlas radar 1 2 3
  atlas radar --stats`,
	RunE: runRadar,
}

func init() {
	radarCmd.Flags().BoolVar(&radarStats, "stats", false, "Include min/max/avg per axis over all antibiotics")
	rootCmd.AddCommand(radarCmd)
}

type radarResponse struct {
	Antibiotics []radar.Series    `json:"antibiotics"`
	Statistics  *radar.Statistics `json:"statistics,omitempty"`
}

func runRadar(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid antibiotic id %q", arg)
		}
		ids = append(ids, id)
	}

	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}
	series, err := atlas.CompareRadar(ids...)
	if err != nil {
		return err
	}

	resp := radarResponse{Antibiotics: series}
	if radarStats {
		stats := atlas.RadarStatistics()
		resp.Statistics = &stats
	}
	return printJSON(cmd, resp)
}
