package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <source-node> <target-node>",
	Short: "Find a shortest path between two graph nodes",
	Long: `Find a shortest path (fewest edges) between two nodes of the network graph.
Node ids look like pathogen-<id> or antibiotic-<id>.

Examples:
  atlas path antibiotic-12 antibiotic-13
  atlas path pathogen-1 pathogen-4`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <node>",
	Short: "List the nodes adjacent to a graph node",
	Args:  cobra.ExactArgs(1),
	RunE:  runNeighbors,
}

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Group graph nodes by drug class and gram status, and edges by effectiveness",
	Args:  cobra.NoArgs,
	RunE:  runClusters,
}

func init() {
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(neighborsCmd)
	rootCmd.AddCommand(clustersCmd)
}

type pathResponse struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Found  bool     `json:"found"`
	Path   []string `json:"path"`
	Hops   int      `json:"hops"`
}

func runPath(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	path, ok := atlas.ShortestPath(args[0], args[1])
	resp := pathResponse{Source: args[0], Target: args[1], Found: ok, Path: path}
	if ok {
		resp.Hops = len(path) - 1
	}
	return printJSON(cmd, resp)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}

	n, err := atlas.Neighbors(args[0])
	if err != nil {
		return fmt.Errorf("finding neighbors: %w", err)
	}
	return printJSON(cmd, n)
}

func runClusters(cmd *cobra.Command, args []string) error {
	atlas, _, _, err := newAtlas(cmd)
	if err != nil {
		return err
	}
	return printJSON(cmd, atlas.Clusters())
}
