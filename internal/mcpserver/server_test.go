package mcpserver

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/apresai/vidblueprint/internal/config"
)

func TestConfigFromLoadedConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9200")
	t.Setenv("BLUEPRINT_CACHE_TTL", "2m")
	t.Setenv("OTEL_SERVICE_NAME", "bp-test")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := ConfigFrom(cfg, "1.2.3")
	if got.Port != 9200 {
		t.Fatalf("Port: want=%d got=%d", 9200, got.Port)
	}
	if got.CacheTTL != 2*time.Minute {
		t.Fatalf("CacheTTL: want=%v got=%v", 2*time.Minute, got.CacheTTL)
	}
	if got.Name != "bp-test" || got.Version != "1.2.3" {
		t.Fatalf("Name/Version: got=%q/%q", got.Name, got.Version)
	}

	srv := New(got, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if srv.handlers.catalog != nil {
		t.Fatalf("server without a catalog should keep a nil catalog")
	}
	if srv.cfg.Port != 9200 {
		t.Fatalf("server port: want=%d got=%d", 9200, srv.cfg.Port)
	}
}
