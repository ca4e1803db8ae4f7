package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"stepviz/internal/application"
	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
)

type linearOpts struct {
	capacity int
	verbose  bool
	save     bool
}

var linearOpt linearOpts

var linearCmd = &cobra.Command{
	Use:   "linear <stack|queue|circular> <program>",
	Short: "Run an operation program against a stack or queue",
	Long: `Create an empty bounded structure and run a program of push, pop and
peek instructions against it. Overflowing pushes and underflowing pops
are rejected and reported without stopping the program.

Examples:
  stepviz-cli linear stack "push a, push b, pop, peek"
  stepviz-cli linear queue "enqueue 1; enqueue 2; dequeue" --capacity 2
  stepviz-cli linear circular "push x, push y, pop, push z" -c 3 --save`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		capacity := linearOpt.capacity
		if !cmd.Flags().Changed("capacity") {
			capacity = cfg.StackCapacity
			if args[0] == "circular" {
				capacity = cfg.CircularCapacity
			}
		}

		run := commands.NewRunLinearCommand(application.LinearRequest{Kind: args[0], Capacity: capacity}, args[1])
		if linearOpt.verbose {
			run.Observers = []domain.Observer{printEvent}
		}
		result, err := run.Execute(ctx)
		if err != nil {
			return err
		}

		printSlots(result.View)
		for _, r := range result.Rejected {
			fmt.Println("rejected: " + r)
		}
		fmt.Println(result.Message)

		if linearOpt.save {
			sess := result.Session
			return saveReport(ctx, func(now time.Time) (*domain.Report, error) { return sess.Report(now) })
		}
		return nil
	},
}

func printSlots(v domain.LinearView) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"slot", "value", "marker"})
	for _, s := range v.Slots {
		value := "-"
		if s.Occupied {
			value = s.Value
		}
		table.Append([]string{fmt.Sprint(s.Index), value, slotMarker(v, s.Index)})
	}
	table.Render()
}

func slotMarker(v domain.LinearView, i int) string {
	var tags []string
	if v.Kind == domain.LinearStack {
		if i == v.Top {
			tags = append(tags, "top")
		}
		return strings.Join(tags, " ")
	}
	if !v.Empty && i == v.Front {
		tags = append(tags, "front")
	}
	if !v.Empty && i == v.Rear {
		tags = append(tags, "rear")
	}
	return strings.Join(tags, " ")
}

func init() {
	linearCmd.Flags().IntVarP(&linearOpt.capacity, "capacity", "c", 0, "number of slots (default from config)")
	linearCmd.Flags().BoolVarP(&linearOpt.verbose, "verbose", "v", false, "print every step")
	linearCmd.Flags().BoolVar(&linearOpt.save, "save", false, "save the result as a report")
	rootCmd.AddCommand(linearCmd)
}
