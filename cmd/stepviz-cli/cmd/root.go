package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stepviz/internal/adapters/filesystem"
	"stepviz/internal/adapters/sqlite"
	"stepviz/internal/config"
	"stepviz/internal/logger"
	"stepviz/internal/ports"
)

type rootOpts struct {
	cfgFile     string
	hideLogTime bool
	noColor     bool
	logToFile   bool
}

var (
	rootOpt rootOpts
	cfg     config.Config
	repo    ports.SpecRepository
)

var rootCmd = &cobra.Command{
	Use:   "stepviz-cli",
	Short: "Step through tree searches and linear structures from the shell",
	Long: `stepviz-cli builds small trees and runs breadth-first, depth-first and
depth-limited searches over them one step at a time. It also drives
bounded stacks, queues and circular queues with operation programs.

Finished runs can be saved as reports and listed later.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initConfig(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpt.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/stepviz/config.yaml)")
	flags.BoolP("debug", "d", false, "turn on debug logging")
	flags.BoolVar(&rootOpt.hideLogTime, "hide-time", true, "hide the log time")
	flags.BoolVar(&rootOpt.noColor, "no-color", false, "disable colored log output")
	flags.BoolVar(&rootOpt.logToFile, "log-to-file", false, "also write logs to the log directory")
	flags.String("presets-dir", "", "directory holding preset YAML files")
	flags.String("data-dir", "", "directory holding the report database")
	flags.String("log-dir", "", "directory for log files")
}

// initConfig reads the config file, environment and flags, then sets up logging
func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadFlags(rootOpt.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	opts := logger.Options{
		Verbose:      cfg.Debug,
		DisableColor: rootOpt.noColor,
		HideLogTime:  rootOpt.hideLogTime,
	}
	if rootOpt.logToFile {
		opts.FileDir = cfg.LogDir
	}
	if err := logger.Init(opts); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	repo = filesystem.NewPresetRepository(cfg.PresetsDir)
	logrus.WithFields(logrus.Fields{
		"presets": cfg.PresetsDir,
		"data":    cfg.DataDir,
	}).Debug("configuration loaded")
	return nil
}

// GetRepo returns the initialized preset repository
func GetRepo() ports.SpecRepository {
	return repo
}

// openStore opens the report database; callers close it
func openStore() (*sqlite.Store, error) {
	store := sqlite.NewStore()
	if err := store.Open(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("failed to open report store: %w", err)
	}
	return store, nil
}
