package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apresai/vidblueprint/internal/blueprint"
)

// Format selects an output encoding for a blueprint.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatTerm     Format = "term"
)

// FormatNames returns all valid format values.
func FormatNames() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatMarkdown),
		string(FormatTerm),
	}
}

// FormatLabel returns a human-readable label for display.
func FormatLabel(f Format) string {
	labels := map[Format]string{
		FormatJSON:     "JSON document",
		FormatYAML:     "YAML document",
		FormatMarkdown: "Markdown production brief",
		FormatTerm:     "Styled terminal view",
	}
	if l, ok := labels[f]; ok {
		return l
	}
	return "JSON document"
}

// ParseFormat accepts the format names plus the common aliases yml and md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "term", "terminal":
		return FormatTerm, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: %s)", s, strings.Join(FormatNames(), ", "))
}

// FormatForPath picks a format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatJSON
}

// Marshal encodes a blueprint in the given format.
func Marshal(bp *blueprint.Blueprint, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, bp, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes a blueprint to w. List order is preserved in every format.
func Encode(w io.Writer, bp *blueprint.Blueprint, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(bp); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(bp); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(bp))
		if err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}
		return nil
	case FormatTerm:
		_, err := io.WriteString(w, Terminal(bp, 0))
		if err != nil {
			return fmt.Errorf("write terminal view: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}

// Save writes the blueprint to path in the format implied by its extension.
func Save(bp *blueprint.Blueprint, path string) error {
	data, err := Marshal(bp, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("marshal blueprint: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write blueprint to %s: %w", path, err)
	}
	return nil
}

// Load reads a JSON or YAML blueprint from path.
func Load(path string) (*blueprint.Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint from %s: %w", path, err)
	}
	bp, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("parse blueprint from %s: %w", path, err)
	}
	return bp, nil
}

// Decode parses a JSON or YAML document into a blueprint.
func Decode(data []byte, f Format) (*blueprint.Blueprint, error) {
	var bp blueprint.Blueprint
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &bp); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &bp); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("format %q cannot be decoded", f)
	}
	if len(bp.Script) == 0 {
		return nil, fmt.Errorf("blueprint has no script")
	}
	return &bp, nil
}
