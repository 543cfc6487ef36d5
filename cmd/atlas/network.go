package main

import (
	"github.com/spf13/cobra"

	"github.com/pathogen-atlas/internal/domain"
	"github.com/pathogen-atlas/internal/network"
)

var (
	networkEffectiveness []string
	networkClasses       []string
	networkGram          []string
	networkForces        bool
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Print the pathogen/antibiotic network graph",
	Long: `Print the network graph: one node per antibiotic and pathogen, one edge per
effectiveness entry. Filters are ANDed; nodes left without edges are dropped.

Examples:
  atlas network
  atlas network --effectiveness high,medium
  atlas network --class Penicillin --gram positive
  atlas network --forces`,
	Args: cobra.NoArgs,
	RunE: runNetwork,
}

func init() {
	networkCmd.Flags().StringSliceVar(&networkEffectiveness, "effectiveness", nil, "Keep edges with these levels (high, medium, low, resistant)")
	networkCmd.Flags().StringSliceVar(&networkClasses, "class", nil, "Keep edges whose antibiotic is in these drug classes")
	networkCmd.Flags().StringSliceVar(&networkGram, "gram", nil, "Keep edges whose pathogen has these gram statuses")
	networkCmd.Flags().BoolVar(&networkForces, "forces", false, "Include the force simulation settings")
	rootCmd.AddCommand(networkCmd)
}

type networkResponse struct {
	*network.Graph
	Forces *network.ForceConfig `json:"forces,omitempty"`
}

func runNetwork(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	g := atlas.FilterGraph(network.Filters{
		Effectiveness: asEnum[domain.Effectiveness](networkEffectiveness),
		DrugClasses:   networkClasses,
		GramStatuses:  asEnum[domain.GramStatus](networkGram),
	})

	resp := networkResponse{Graph: g}
	if networkForces {
		resp.Forces = atlas.ForceConfig(g)
	}
	return printJSON(cmd, resp)
}
