// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server exposing check-ins, the series, and the survey.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/journey/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "journey": {
        "command": "journey",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  record_checkin         Record a check-in from the prompt IDs answered yes
  next_anchor            Get the next writable check-in date
  get_series             Get the dense journey series
  list_prompts           List the daily belief prompts
  record_survey_answer   Answer one survey statement
  get_strengths          Get the per-domain strengths
  reset_checkins         Delete all or only demo check-ins

AVAILABLE RESOURCES:

  journey://today        Today's anchor and check-in status
  journey://series       Series up to the latest check-in
  journey://strengths    Domain strengths`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, cfg.GetDisplayBand())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Debug("starting MCP server")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
