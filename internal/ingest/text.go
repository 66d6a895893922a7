package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TextIngester reads an idea from a plain text or markdown file.
type TextIngester struct{}

func (t *TextIngester) Ingest(ctx context.Context, source string) (*Content, error) {
	if err := validateFile(source); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", source, err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("file %s is empty", source)
	}

	return &Content{
		Idea:      IdeaFromText(text),
		Title:     titleFromText(text, 80),
		Source:    filepath.Base(source),
		Type:      SourceFile,
		WordCount: wordCount(text),
	}, nil
}
