package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
)

type searchOpts struct {
	tree       treeOpts
	discipline string
	target     string
	maxSteps   int
	animate    bool
	save       bool
}

var searchOpt searchOpts

var searchCmd = &cobra.Command{
	Use:   "search [preset]",
	Short: "Run BFS, DFS or DLS over a tree",
	Long: `Run a search over a preset or ad-hoc tree and print every step.
Without --target the whole reachable tree is traversed.

Examples:
  stepviz-cli search sample --discipline dfs --target E
  stepviz-cli search --nodes 15 --discipline dls --depth-limit 2
  stepviz-cli search sample --animate --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		built, err := buildTree(ctx, args, searchOpt.tree)
		if err != nil {
			return err
		}
		for _, issue := range built.Issues {
			fmt.Println("warning: " + issue)
		}

		req := searchRequest(cmd, built.Preset)
		preset := ""
		if built.Preset != nil {
			preset = built.Preset.Name
		}

		var sess *application.SearchSession
		if searchOpt.animate {
			sess, err = animateSearch(ctx, built.Structure, preset, req)
		} else {
			sess, err = runSearch(ctx, built.Structure, preset, req)
		}
		if err != nil {
			return err
		}

		v := sess.Search.View()
		fmt.Println()
		printVisits(v)
		fmt.Printf("%s: %s\n", v.Status, v.StatusMessage)

		if searchOpt.save {
			return saveReport(ctx, func(now time.Time) (*domain.Report, error) { return sess.Report(now) })
		}
		return nil
	},
}

// searchRequest combines the flags with the preset's default target and limit
func searchRequest(cmd *cobra.Command, p *domain.Preset) application.SearchRequest {
	req := application.SearchRequest{
		Discipline: searchOpt.discipline,
		Target:     searchOpt.target,
		DepthLimit: cfg.DepthLimit,
	}
	if p != nil {
		if !cmd.Flags().Changed("target") {
			req.Target = p.Target
		}
		if !cmd.Flags().Changed("depth-limit") && p.DepthLimit > 0 {
			req.DepthLimit = p.DepthLimit
		}
	}
	return req
}

func runSearch(ctx context.Context, s *domain.Structure, preset string, req application.SearchRequest) (*application.SearchSession, error) {
	run := commands.NewRunSearchCommand(s, req)
	run.Preset = preset
	run.MaxSteps = searchOpt.maxSteps
	run.Observers = []domain.Observer{printEvent}

	result, err := run.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return result.Session, nil
}

// animateSearch drives the controller on the configured tick interval
func animateSearch(ctx context.Context, s *domain.Structure, preset string, req application.SearchRequest) (*application.SearchSession, error) {
	sess, err := application.NewSearchSession(s, preset, req)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	err = sess.Controller.Drive(ctx, ticker.C, func() {
		v := sess.Search.View()
		fmt.Printf("%3d  %-40s frontier: %s\n", v.Step, v.StatusMessage, strings.Join(v.Frontier, " "))
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func printEvent(e domain.Event) {
	fmt.Printf("%3d  %s\n", e.Step, e.Message)
}

func printVisits(v domain.SearchView) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"order", "value", "depth"})
	visited := make([]domain.NodeView, 0, v.Visited)
	for _, n := range v.Nodes {
		if n.VisitOrder > 0 {
			visited = append(visited, n)
		}
	}
	sort.Slice(visited, func(i, j int) bool { return visited[i].VisitOrder < visited[j].VisitOrder })
	for _, n := range visited {
		table.Append([]string{fmt.Sprint(n.VisitOrder), n.Label, fmt.Sprint(n.Depth)})
	}
	table.Render()
}

func init() {
	addTreeFlags(searchCmd, &searchOpt.tree)
	searchCmd.Flags().StringVarP(&searchOpt.discipline, "discipline", "D", "bfs", "bfs, dfs or dls")
	searchCmd.Flags().StringVarP(&searchOpt.target, "target", "t", "", "value to search for (default: preset target, or full traversal)")
	searchCmd.Flags().Int("depth-limit", 0, "deepest level DLS expands (default from config)")
	searchCmd.Flags().IntVar(&searchOpt.maxSteps, "max-steps", 0, "stop after this many steps")
	searchCmd.Flags().BoolVar(&searchOpt.animate, "animate", false, "print one step per tick interval")
	searchCmd.Flags().BoolVar(&searchOpt.save, "save", false, "save the finished run as a report")
	rootCmd.AddCommand(searchCmd)
}
