package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"stepviz/internal/adapters/editor"
	"stepviz/internal/application/commands"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List, locate and edit preset trees",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListPresetsCommand(GetRepo()).Execute(context.Background())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"name", "nodes", "target", "description"})
		for _, p := range result.Presets {
			table.Append([]string{p.Name, fmt.Sprint(p.Spec.NodeCount), p.Target, p.Description})
		}
		table.Render()
		return nil
	},
}

var presetsPathCmd = &cobra.Command{
	Use:   "path <name>",
	Short: "Print the file backing a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := GetRepo().PresetPath(args[0])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var presetsEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a preset in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := GetRepo().PresetPath(args[0])
		if err != nil {
			return err
		}
		proc, err := editor.NewOpener().EditCommand(path)
		if err != nil {
			return err
		}
		if err := proc.Run(); err != nil {
			return fmt.Errorf("editor exited: %w", err)
		}

		// Reload so a broken edit is reported right away
		if _, err := GetRepo().LoadPreset(args[0]); err != nil {
			return fmt.Errorf("preset %s no longer loads: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	presetsCmd.AddCommand(presetsPathCmd)
	presetsCmd.AddCommand(presetsEditCmd)
	rootCmd.AddCommand(presetsCmd)
}
