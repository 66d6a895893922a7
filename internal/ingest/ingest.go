package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/apresai/vidblueprint/internal/blueprint"
)

type SourceType string

const (
	SourceURL     SourceType = "url"
	SourcePDF     SourceType = "pdf"
	SourceFile    SourceType = "file"
	SourceLiteral SourceType = "literal"

	// maxInputSize is the maximum allowed size for input content (25 MB).
	maxInputSize = 25 * 1024 * 1024
)

func (s SourceType) String() string {
	return string(s)
}

// Content is a story idea pulled from some source, plus what the source
// looked like.
type Content struct {
	Idea      string
	Title     string
	Source    string
	Type      SourceType
	WordCount int
}

type Ingester interface {
	Ingest(ctx context.Context, source string) (*Content, error)
}

// DetectSource classifies input as a URL, a PDF path, an existing file or
// the literal idea text.
func DetectSource(input string) SourceType {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return SourceURL
	}
	if strings.HasSuffix(strings.ToLower(input), ".pdf") {
		return SourcePDF
	}
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		return SourceFile
	}
	return SourceLiteral
}

func NewIngester(input string) Ingester {
	switch DetectSource(input) {
	case SourceURL:
		return &URLIngester{}
	case SourcePDF:
		return &PDFIngester{}
	case SourceFile:
		return &TextIngester{}
	default:
		return &LiteralIngester{}
	}
}

// Ingest detects the source type of input and extracts an idea from it.
func Ingest(ctx context.Context, input string) (*Content, error) {
	return NewIngester(input).Ingest(ctx, input)
}

// LiteralIngester treats the source string as the idea itself.
type LiteralIngester struct{}

func (l *LiteralIngester) Ingest(ctx context.Context, source string) (*Content, error) {
	idea := blueprint.NormalizeIdea(source)
	return &Content{
		Idea:      idea,
		Title:     titleFromText(idea, 80),
		Source:    "argument",
		Type:      SourceLiteral,
		WordCount: wordCount(idea),
	}, nil
}

// IdeaFromText picks the opening paragraph of a longer document and trims it
// to a usable idea. Markdown headings and blank lines are skipped.
// When the paragraph runs past blueprint.MaxIdeaRunes it is cut after the
// last full sentence that fits.
func IdeaFromText(text string) string {
	var para []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			if len(para) > 0 {
				break
			}
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, ">*- "))
		if line == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, line)
	}
	idea := strings.Join(strings.Fields(strings.Join(para, " ")), " ")
	if utf8.RuneCountInString(idea) <= blueprint.MaxIdeaRunes {
		return idea
	}

	cut := string([]rune(idea)[:blueprint.MaxIdeaRunes])
	if i := lastSentenceEnd(cut); i > 0 {
		return cut[:i]
	}
	return blueprint.NormalizeIdea(idea)
}

func lastSentenceEnd(s string) int {
	end := -1
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '.', '!', '?':
			if s[i+1] == ' ' {
				end = i + 1
			}
		}
	}
	return end
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func titleFromText(text string, maxLen int) string {
	line := text
	if idx := strings.IndexByte(text, '\n'); idx > 0 {
		line = text[:idx]
	}
	line = strings.TrimSpace(strings.TrimLeft(line, "# "))
	if r := []rune(line); len(r) > maxLen {
		line = string(r[:maxLen]) + "..."
	}
	if line == "" {
		return "Untitled"
	}
	return line
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() > maxInputSize {
		return fmt.Errorf("%s is too large (%d MB, max %d MB)", path, info.Size()/(1024*1024), maxInputSize/(1024*1024))
	}
	return nil
}
