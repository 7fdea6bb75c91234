package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/quickmenu/mcp-server/internal/config"
	"github.com/quickmenu/mcp-server/tools"
)

const (
	version     = "0.3.0"
	serverName  = "quickmenu-mcp-server"
	description = "MCP server for fuzzy navigation of application menus"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to YAML config (defaults to $"+config.EnvVar+")")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// Set up logging to stderr (MCP uses stdout for protocol)
	log.SetOutput(os.Stderr)
	log.Printf("%s v%s starting...", serverName, version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	svc, err := tools.NewService(cfg, tools.NewEmbeddedDataProvider(), logger)
	if err != nil {
		log.Fatalf("Failed to build menu index: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Printf("Error closing description index: %v", err)
		}
	}()

	server := createMCPServer()
	tools.RegisterMenuSearchTools(server, svc)
	log.Printf("✓ All tools registered: 4 tools (search_menu, search_menu_descriptions, lookup_abbreviation, get_menu_item)")

	log.Printf("✓ Server ready and waiting for connections")

	// Run server with stdio transport
	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Printf("Server error: %v", err)
	}
}

// createMCPServer initializes the MCP server
func createMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		&mcp.ServerOptions{
			Instructions: description,
		},
	)

	log.Printf("Server initialized: %s v%s", serverName, version)
	return server
}
