package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/navbind"
	"github.com/aretw0/navbind/pkg/adapters/mcp"
	"github.com/aretw0/navbind/pkg/navigation"
	"github.com/aretw0/navbind/pkg/observability"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Binds the page and exposes it as an MCP Server, so agents can list the
bindings (list_bindings) and activate triggers (activate_trigger).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		p, err := loadProject(flagsFrom(cmd))
		if err != nil {
			return err
		}

		binder := navbind.New(navigation.NewNavigator(unscopedNavigator(logger)), p.binderOptions(
			navbind.WithLogger(logger),
			navbind.WithLifecycleHooks(observability.LoggingHooks(logger)),
		)...)
		if err := bindPage(cmd.Context(), binder, p); err != nil {
			return err
		}

		srv := mcp.NewServer(p.page, binder, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting navbind MCP Server (Stdio)...")
			return srv.ServeStdio()
		case "sse":
			logger.Info("Starting navbind MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("MCP Server execution failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
