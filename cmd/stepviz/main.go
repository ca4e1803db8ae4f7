package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"stepviz/internal/adapters/editor"
	"stepviz/internal/adapters/filesystem"
	"stepviz/internal/adapters/sqlite"
	"stepviz/internal/adapters/tui"
	"stepviz/internal/config"
	"stepviz/internal/logger"
	"stepviz/internal/ports"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default is $XDG_CONFIG_HOME/stepviz/config.yaml)")
	preset := flag.StringP("preset", "p", "", "preset to load on start")
	flag.Duration("tick", config.DefaultTickInterval, "delay between steps while running")
	flag.Int("depth-limit", config.DefaultDepthLimit, "default depth limit for DLS")
	flag.String("presets-dir", "", "directory holding preset YAML files")
	flag.String("data-dir", "", "directory holding the report database")
	flag.String("log-dir", "", "directory for log files")
	flag.BoolP("debug", "d", false, "log at debug level")
	flag.Parse()

	cfg, err := config.LoadFlags(*cfgFile, flag.CommandLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs only go to the file
	if err := logger.Init(logger.Options{
		Verbose: cfg.Debug,
		Quiet:   true,
		FileDir: cfg.LogDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize adapters
	repo := filesystem.NewPresetRepository(cfg.PresetsDir)
	editorOpener := editor.NewOpener()

	var store ports.ReportStore
	db := sqlite.NewStore()
	if err := db.Open(cfg.DataDir); err != nil {
		logrus.WithError(err).Warn("report store unavailable, saving reports is disabled")
	} else {
		defer db.Close()
		store = db
	}

	// Create and run TUI app
	app := tui.NewApp(repo, store, editorOpener, cfg).StartWith(*preset)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
