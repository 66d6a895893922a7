package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BLUEPRINT_OUTPUT_DIR", "BLUEPRINT_FORMAT", "DYNAMODB_TABLE", "S3_BUCKET", "CDN_BASE_URL",
		"AWS_REGION", "LOG_LEVEL", "OTEL_SERVICE_NAME", "PORT", "BLUEPRINT_CACHE_TTL", "TRACING_ENABLED",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Fatalf("Port: want=%d got=%d", 8000, cfg.Server.Port)
	}
	if cfg.Output.Format != "json" {
		t.Fatalf("Format: want=%q got=%q", "json", cfg.Output.Format)
	}
	if cfg.Catalog.Enabled() {
		t.Fatalf("catalog should be disabled without a bucket")
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "vidblueprint.yaml")
	doc := `
output:
  dir: out
  format: yaml
catalog:
  table_name: bp-table
  bucket: bp-bucket
  cdn_base_url: https://cdn.example.com
server:
  port: 9000
  cache_ttl: 5m
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("S3_BUCKET", "env-bucket")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Dir != "out" {
		t.Fatalf("Output.Dir: want=%q got=%q", "out", cfg.Output.Dir)
	}
	if cfg.Catalog.TableName != "bp-table" {
		t.Fatalf("TableName: want=%q got=%q", "bp-table", cfg.Catalog.TableName)
	}
	if cfg.Catalog.Bucket != "env-bucket" {
		t.Fatalf("Bucket: want=%q got=%q", "env-bucket", cfg.Catalog.Bucket)
	}
	if cfg.Server.Port != 9100 {
		t.Fatalf("Port: want=%d got=%d", 9100, cfg.Server.Port)
	}
	if cfg.Server.CacheTTL != 5*time.Minute {
		t.Fatalf("CacheTTL: want=%v got=%v", 5*time.Minute, cfg.Server.CacheTTL)
	}
	if cfg.Server.CacheCleanup != 10*time.Minute {
		t.Fatalf("CacheCleanup should keep its default, got %v", cfg.Server.CacheCleanup)
	}
	if !cfg.Catalog.Enabled() {
		t.Fatalf("catalog should be enabled")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("Load: expected error, got nil")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "abc"},
		{"PORT", "70000"},
		{"BLUEPRINT_CACHE_TTL", "soon"},
		{"LOG_LEVEL", "loud"},
		{"TRACING_ENABLED", "maybe"},
	}
	for _, tt := range tests {
		clearEnv(t)
		t.Setenv(tt.key, tt.value)
		if _, err := Load(""); err == nil {
			t.Fatalf("%s=%s: expected error, got nil", tt.key, tt.value)
		}
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("S3_BUCKET=from-file\nCDN_BASE_URL=https://file.example.com\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("S3_BUCKET", "from-env")
	t.Setenv("CDN_BASE_URL", "")
	os.Unsetenv("CDN_BASE_URL")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("S3_BUCKET"); got != "from-env" {
		t.Fatalf("S3_BUCKET: want=%q got=%q", "from-env", got)
	}
	if got := os.Getenv("CDN_BASE_URL"); got != "https://file.example.com" {
		t.Fatalf("CDN_BASE_URL: want=%q got=%q", "https://file.example.com", got)
	}
}
