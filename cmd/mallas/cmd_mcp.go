package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JairAlexey/AnalisisDeMallas/internal/logging"
	"github.com/JairAlexey/AnalisisDeMallas/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Starts a Model Context Protocol server exposing the analysis tools
(mallas_analyze, mallas_equivalences, mallas_clusters, mallas_stats) and
the dataset summary resource to agent clients over stdio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "mallas",
				Version:  version,
				DBPath:   cfg.Storage.DBPath,
				Analysis: cfg.Analysis,
				Logger:   logging.NewLogger(cfg.Logging.Level, os.Stderr),
			})
			if err != nil {
				return fmt.Errorf("starting MCP server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}
}
