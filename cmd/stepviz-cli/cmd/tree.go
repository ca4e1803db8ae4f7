package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
)

type treeOpts struct {
	nodes  int
	values string
	edges  string
}

var treeOpt treeOpts

var treeCmd = &cobra.Command{
	Use:   "tree [preset]",
	Short: "Build a tree and show its nodes",
	Long: `Build a tree from a preset or from --nodes/--values/--edges and print
each node with its depth and children. Dropped edges and unreachable
nodes are reported.

Examples:
  stepviz-cli tree sample
  stepviz-cli tree --nodes 5 --values "A B C D E"
  stepviz-cli tree --nodes 4 --edges "0-1 0-2 2-3"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := buildTree(context.Background(), args, treeOpt)
		if err != nil {
			return err
		}

		printStructure(result.Structure)
		fmt.Println(result.Message)
		for _, issue := range result.Issues {
			fmt.Println("  " + issue)
		}
		return nil
	},
}

// buildTree runs the build command for a preset argument or the tree flags
func buildTree(ctx context.Context, args []string, opts treeOpts) (*commands.BuildTreeResult, error) {
	if len(args) == 1 {
		if opts.nodes != 0 {
			return nil, fmt.Errorf("give either a preset or --nodes, not both")
		}
		return commands.NewBuildTreeCommand(GetRepo(), args[0]).Execute(ctx)
	}
	if opts.nodes == 0 {
		return commands.NewBuildTreeCommand(GetRepo(), domain.SamplePreset().Name).Execute(ctx)
	}

	edges, err := application.ParseEdges(opts.edges)
	if err != nil {
		return nil, err
	}
	req := application.BuildRequest{
		NodeCount: opts.nodes,
		Values:    strings.FieldsFunc(opts.values, func(r rune) bool { return r == ',' || r == ' ' }),
		Edges:     edges,
		Auto:      len(edges) == 0,
	}
	return commands.NewBuildTreeFromRequestCommand(req).Execute(ctx)
}

func printStructure(s *domain.Structure) {
	parent := make(map[int]int, len(s.Nodes))
	for _, n := range s.Nodes {
		for _, c := range n.Children {
			parent[c] = n.ID
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"index", "value", "depth", "parent", "children"})
	for _, n := range s.Nodes {
		depth := strconv.Itoa(n.Depth)
		if n.Depth < 0 {
			depth = "unreachable"
		}
		p := "-"
		if id, ok := parent[n.ID]; ok {
			p = s.Nodes[id].Label
		}
		children := make([]string, len(n.Children))
		for i, c := range n.Children {
			children[i] = s.Nodes[c].Label
		}
		table.Append([]string{strconv.Itoa(n.ID), n.Label, depth, p, strings.Join(children, " ")})
	}
	table.Render()
}

func addTreeFlags(cmd *cobra.Command, opts *treeOpts) {
	cmd.Flags().IntVarP(&opts.nodes, "nodes", "n", 0, "number of nodes (1-31) for an ad-hoc tree")
	cmd.Flags().StringVar(&opts.values, "values", "", "node values separated by spaces or commas")
	cmd.Flags().StringVar(&opts.edges, "edges", "", "parent-child index pairs, e.g. \"0-1 0-2\" (default complete binary tree)")
}

func init() {
	addTreeFlags(treeCmd, &treeOpt)
	rootCmd.AddCommand(treeCmd)
}
