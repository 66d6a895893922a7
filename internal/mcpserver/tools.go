package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/render"
)

var tracer = otel.Tracer("vidblueprint-mcp")

// ToolDefs returns the MCP tool definitions.
func ToolDefs() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "generate_blueprint",
			Description: "Generate a complete 15-minute kids' video production blueprint (strategy, script, visuals, voices, sound, retention, monetization and copyright rules) from a one-line story idea. Returns a blueprint ID usable with get_blueprint.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"idea": map[string]any{
						"type":        "string",
						"description": "Story idea. Leave empty for the default superhero family story.",
					},
					"format": map[string]any{
						"type":        "string",
						"description": "Document format: json, yaml, markdown",
						"default":     "json",
					},
					"publish": map[string]any{
						"type":        "boolean",
						"description": "Store the blueprint in the catalog and return its URL",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "get_blueprint",
			Description: "Get a previously generated or published blueprint by ID.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"blueprint_id": map[string]any{
						"type":        "string",
						"description": "The blueprint ID returned from generate_blueprint",
					},
					"format": map[string]any{
						"type":        "string",
						"description": "Document format: json, yaml, markdown",
						"default":     "json",
					},
				},
				Required: []string{"blueprint_id"},
			},
		},
		{
			Name:        "list_blueprints",
			Description: "List published blueprints, newest first. Returns IDs, ideas, themes and URLs.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]any{
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of results (default 20)",
						"default":     20,
					},
					"cursor": map[string]any{
						"type":        "string",
						"description": "Pagination cursor from a previous list_blueprints call",
					},
				},
			},
		},
		{
			Name:        "list_themes",
			Description: "List the story themes the generator recognizes and the keywords that trigger each one.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]any{},
			},
		},
	}
}

// Handlers contains tool handler implementations.
type Handlers struct {
	catalog Catalog
	cache   *cache.Cache
	log     *slog.Logger
	now     func() time.Time
}

// NewHandlers creates tool handlers. cat may be nil.
func NewHandlers(cat Catalog, c *cache.Cache, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{catalog: cat, cache: c, log: logger, now: time.Now}
}

// HandleGenerateBlueprint generates a blueprint, caches it and optionally
// publishes it to the catalog.
func (h *Handlers) HandleGenerateBlueprint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.generate_blueprint")
	defer span.End()

	idea := mcp.ParseString(req, "idea", "")
	publish := mcp.ParseBoolean(req, "publish", false)
	format, err := parseDocFormat(req)
	if err != nil {
		span.SetStatus(codes.Error, "bad format")
		return mcp.NewToolResultError(err.Error()), nil
	}

	span.SetAttributes(
		attribute.Int("idea_length", len(idea)),
		attribute.String("format", string(format)),
		attribute.Bool("publish", publish),
	)

	if publish && h.catalog == nil {
		span.SetStatus(codes.Error, "catalog not configured")
		return mcp.NewToolResultError("publishing is not available: this server has no catalog configured"), nil
	}

	bp := blueprint.Generate(idea)
	if err := blueprint.Validate(bp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return mcp.NewToolResultError(fmt.Sprintf("generated blueprint is invalid: %v", err)), nil
	}

	result := map[string]any{
		"idea":        bp.Idea,
		"themes":      bp.Themes,
		"runtime":     bp.Runtime,
		"scene_count": bp.SceneCount(),
		"published":   false,
	}

	var id string
	if publish {
		rec, err := h.catalog.Publish(ctx, &bp)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "publish failed")
			return mcp.NewToolResultError(fmt.Sprintf("failed to publish blueprint: %v", err)), nil
		}
		id = rec.BlueprintID
		result["published"] = true
		if rec.URL != "" {
			result["url"] = rec.URL
		}
	} else {
		id, err = catalog.NewBlueprintID(h.now())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "id failed")
			return mcp.NewToolResultError(fmt.Sprintf("failed to assign blueprint id: %v", err)), nil
		}
	}
	h.cache.Set(id, &bp, cache.DefaultExpiration)

	result["blueprint_id"] = id
	if err := attachDocument(result, &bp, format); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	span.SetAttributes(attribute.String("blueprint_id", id))
	h.log.InfoContext(ctx, "Blueprint generated", "blueprint_id", id, "themes", bp.Themes, "published", publish)
	return jsonResult(result)
}

// HandleGetBlueprint returns a blueprint from the cache, falling back to the
// catalog.
func (h *Handlers) HandleGetBlueprint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.get_blueprint")
	defer span.End()

	id := mcp.ParseString(req, "blueprint_id", "")
	if id == "" {
		span.SetStatus(codes.Error, "missing blueprint_id")
		return mcp.NewToolResultError("blueprint_id is required"), nil
	}
	format, err := parseDocFormat(req)
	if err != nil {
		span.SetStatus(codes.Error, "bad format")
		return mcp.NewToolResultError(err.Error()), nil
	}
	span.SetAttributes(attribute.String("blueprint_id", id))

	result := map[string]any{"blueprint_id": id}

	var bp *blueprint.Blueprint
	if v, ok := h.cache.Get(id); ok {
		bp = v.(*blueprint.Blueprint)
		span.SetAttributes(attribute.Bool("cache_hit", true))
	} else {
		if h.catalog == nil {
			span.SetStatus(codes.Error, "not found")
			return mcp.NewToolResultError(fmt.Sprintf("blueprint %s not found", id)), nil
		}
		fetched, rec, err := h.catalog.Fetch(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			span.SetStatus(codes.Error, "not found")
			return mcp.NewToolResultError(fmt.Sprintf("blueprint %s not found", id)), nil
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "fetch failed")
			return mcp.NewToolResultError(fmt.Sprintf("failed to get blueprint: %v", err)), nil
		}
		bp = fetched
		h.cache.Set(id, bp, cache.DefaultExpiration)
		result["created_at"] = rec.CreatedAt
		if rec.URL != "" {
			result["url"] = rec.URL
		}
	}

	result["idea"] = bp.Idea
	result["themes"] = bp.Themes
	result["runtime"] = bp.Runtime
	result["scene_count"] = bp.SceneCount()
	if err := attachDocument(result, bp, format); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// HandleListBlueprints returns a paginated list of published blueprints.
func (h *Handlers) HandleListBlueprints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, span := tracer.Start(ctx, "tool.list_blueprints")
	defer span.End()

	if h.catalog == nil {
		span.SetStatus(codes.Error, "catalog not configured")
		return mcp.NewToolResultError("listing is not available: this server has no catalog configured"), nil
	}

	limit := parseIntParam(req, "limit", 20)
	cursor := mcp.ParseString(req, "cursor", "")

	span.SetAttributes(
		attribute.Int("limit", limit),
		attribute.String("cursor", cursor),
	)

	recs, nextCursor, err := h.catalog.List(ctx, limit, cursor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list blueprints failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list blueprints: %v", err)), nil
	}

	span.SetAttributes(attribute.Int("result_count", len(recs)))

	items := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		item := map[string]any{
			"blueprint_id": rec.BlueprintID,
			"idea":         rec.Idea,
			"runtime":      rec.Runtime,
			"scene_count":  rec.SceneCount,
			"created_at":   rec.CreatedAt,
		}
		if len(rec.Themes) > 0 {
			item["themes"] = rec.Themes
		}
		if rec.URL != "" {
			item["url"] = rec.URL
		}
		items = append(items, item)
	}

	result := map[string]any{
		"blueprints": items,
		"count":      len(items),
	}
	if nextCursor != "" {
		result["next_cursor"] = nextCursor
	}
	return jsonResult(result)
}

// HandleListThemes returns the recognized themes in priority order.
func (h *Handlers) HandleListThemes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	_, span := tracer.Start(ctx, "tool.list_themes")
	defer span.End()

	keywords := blueprint.ThemeKeywords()
	themes := make([]map[string]any, 0, len(keywords))
	for _, t := range blueprint.ThemeOrder() {
		themes = append(themes, map[string]any{
			"theme":    string(t),
			"keywords": keywords[t],
		})
	}
	return jsonResult(map[string]any{"themes": themes, "count": len(themes)})
}

func parseDocFormat(req mcp.CallToolRequest) (render.Format, error) {
	f, err := render.ParseFormat(mcp.ParseString(req, "format", "json"))
	if err != nil {
		return "", err
	}
	if f == render.FormatTerm {
		return "", fmt.Errorf("format %q is only available on the command line", f)
	}
	return f, nil
}

// attachDocument embeds the blueprint as an object for JSON and as a text
// document for the other formats.
func attachDocument(result map[string]any, bp *blueprint.Blueprint, f render.Format) error {
	result["format"] = string(f)
	if f == render.FormatJSON {
		result["blueprint"] = bp
		return nil
	}
	data, err := render.Marshal(bp, f)
	if err != nil {
		return fmt.Errorf("render blueprint: %w", err)
	}
	result["document"] = string(data)
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func parseIntParam(req mcp.CallToolRequest, key string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	raw, ok := args[key]
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return defaultVal
	}
}
