package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/patrickmn/go-cache"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/config"
)

// Config holds server configuration.
type Config struct {
	Name         string
	Version      string
	Port         int
	CacheTTL     time.Duration
	CacheCleanup time.Duration
}

// ConfigFrom takes the server settings out of the application config.
func ConfigFrom(cfg *config.Config, version string) Config {
	return Config{
		Name:         cfg.Tracing.ServiceName,
		Version:      version,
		Port:         cfg.Server.Port,
		CacheTTL:     cfg.Server.CacheTTL,
		CacheCleanup: cfg.Server.CacheCleanup,
	}
}

// Catalog is the subset of the published-blueprint catalog the tools use.
type Catalog interface {
	Publish(ctx context.Context, bp *blueprint.Blueprint) (*catalog.Record, error)
	Fetch(ctx context.Context, id string) (*blueprint.Blueprint, *catalog.Record, error)
	List(ctx context.Context, limit int, cursor string) ([]catalog.Record, string, error)
}

// Server is the MCP server for blueprint generation.
type Server struct {
	cfg      Config
	mcp      *server.MCPServer
	http     *server.StreamableHTTPServer
	handlers *Handlers
	log      *slog.Logger
}

// New creates and configures the MCP server. cat may be nil, in which case
// blueprints live only in the in-memory cache and list_blueprints is
// unavailable.
func New(cfg Config, cat Catalog, logger *slog.Logger) *Server {
	if cfg.Name == "" {
		cfg.Name = "vidblueprint"
	}
	handlers := NewHandlers(cat, cache.New(cfg.CacheTTL, cfg.CacheCleanup), logger)

	mcpServer := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
	)

	tools := ToolDefs()
	mcpServer.AddTool(tools[0], handlers.HandleGenerateBlueprint)
	mcpServer.AddTool(tools[1], handlers.HandleGetBlueprint)
	mcpServer.AddTool(tools[2], handlers.HandleListBlueprints)
	mcpServer.AddTool(tools[3], handlers.HandleListThemes)

	return &Server{
		cfg: cfg,
		mcp: mcpServer,
		http: server.NewStreamableHTTPServer(mcpServer,
			server.WithStateLess(true),
		),
		handlers: handlers,
		log:      logger,
	}
}

// Start runs the HTTP MCP server. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info("Starting MCP server", "addr", addr, "catalog", s.handlers.catalog != nil)
	return s.http.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight calls.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
