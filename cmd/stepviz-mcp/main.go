package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"stepviz/internal/adapters/filesystem"
	mcpadapter "stepviz/internal/adapters/mcp"
	"stepviz/internal/adapters/sqlite"
	"stepviz/internal/config"
	"stepviz/internal/logger"
	"stepviz/internal/ports"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default is $XDG_CONFIG_HOME/stepviz/config.yaml)")
	flag.Int("depth-limit", config.DefaultDepthLimit, "default depth limit for DLS")
	flag.String("presets-dir", "", "directory holding preset YAML files")
	flag.String("data-dir", "", "directory holding the report database")
	flag.String("log-dir", "", "directory for log files")
	flag.BoolP("debug", "d", false, "log at debug level")
	flag.Parse()

	cfg, err := config.LoadFlags(*cfgFile, flag.CommandLine)
	if err != nil {
		logrus.Fatalf("stepviz-mcp: %v", err)
	}

	// stdout carries the protocol; logs go to the file only
	if err := logger.Init(logger.Options{Verbose: cfg.Debug, Quiet: true, FileDir: cfg.LogDir}); err != nil {
		logrus.Fatalf("stepviz-mcp: %v", err)
	}

	repo := filesystem.NewPresetRepository(cfg.PresetsDir)

	var store ports.ReportStore
	db := sqlite.NewStore()
	if err := db.Open(cfg.DataDir); err != nil {
		logrus.WithError(err).Warn("report store unavailable")
	} else {
		defer db.Close()
		store = db
	}

	mcpServer := server.NewMCPServer(
		"stepviz-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	w := mcpadapter.NewWorkspace(repo, store, cfg.DepthLimit)
	mcpadapter.RegisterSearchTools(mcpServer, w)
	mcpadapter.RegisterLinearTools(mcpServer, w)
	mcpadapter.RegisterReportTools(mcpServer, w)

	logrus.Info("stepviz-mcp serving on stdio")
	if err := server.ServeStdio(mcpServer); err != nil {
		logrus.Fatalf("stepviz-mcp: %v", err)
	}
}
