// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to drive meeting tools via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/quorumlabs/quorum/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Quorum as an MCP (Model Context Protocol) server, enabling LLM
agents like Claude to add discussion points, ingest documents, process
transcripts, and generate agendas and summaries via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP host)
  quorum mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "quorum": {
  #       "command": "quorum",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	sess, err := loadPipeline()
	if err != nil {
		return err
	}
	defer sess.Close()

	if verbose {
		log.Printf("Index open at %s", sess.db.Path())
	}

	server := mcpserver.NewMCPServer(
		"Quorum Meeting Assistant",
		"0.1.0",
	)

	mcp.RegisterTools(server, sess.pipeline, sess.index)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Quorum MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
