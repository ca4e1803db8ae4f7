package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stepviz/internal/application/commands"
	"stepviz/internal/domain"
)

var reportsLimit int

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List and show saved run reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := commands.NewListReportsCommand(store, reportsLimit).Execute(context.Background())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"id", "created", "kind", "subject", "outcome", "steps"})
		for _, r := range result.Reports {
			table.Append([]string{
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				string(r.Kind),
				r.Subject,
				r.Outcome,
				fmt.Sprint(r.Steps),
			})
		}
		table.Render()
		fmt.Println(result.Message)
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one report with its step log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := commands.NewShowReportCommand(store, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		r := result.Report
		fmt.Println(result.Message)
		if r.Target != "" {
			fmt.Printf("target: %s\n", r.Target)
		}
		fmt.Printf("order: %s\n\n", strings.Join(r.VisitOrder, " "))
		for _, e := range r.Log {
			fmt.Printf("%3d  %s\n", e.Index, e.Message)
		}
		return nil
	},
}

// saveReport stores the report produced by build in the report database
func saveReport(ctx context.Context, build func(time.Time) (*domain.Report, error)) error {
	r, err := build(time.Now())
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := commands.NewSaveReportCommand(store, r).Execute(ctx)
	if err != nil {
		return err
	}
	logrus.WithField("path", store.Path()).Debug("report saved")
	fmt.Println(result.Message)
	return nil
}

func init() {
	reportsListCmd.Flags().IntVarP(&reportsLimit, "limit", "l", 20, "maximum number of reports, 0 for all")
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}
