package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/render"
)

type fakeCatalog struct {
	published []*blueprint.Blueprint
	deleted   []string
	docs      map[string]*blueprint.Blueprint
}

func (f *fakeCatalog) Publish(ctx context.Context, bp *blueprint.Blueprint) (*catalog.Record, error) {
	f.published = append(f.published, bp)
	return &catalog.Record{BlueprintID: "01CLITEST", Runtime: bp.Runtime, SceneCount: bp.SceneCount(), URL: "https://cdn.example.com/blueprints/01CLITEST.json"}, nil
}

func (f *fakeCatalog) List(ctx context.Context, limit int, cursor string) ([]catalog.Record, string, error) {
	return []catalog.Record{{BlueprintID: "01CLITEST", Idea: "A dragon", Themes: []string{"fantasy"}, CreatedAt: "2026-01-02T03:04:05Z"}}, "cursor-2", nil
}

func (f *fakeCatalog) Fetch(ctx context.Context, id string) (*blueprint.Blueprint, *catalog.Record, error) {
	bp, ok := f.docs[id]
	if !ok {
		return nil, nil, catalog.ErrNotFound
	}
	return bp, &catalog.Record{BlueprintID: id}, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func useFakeCatalog(t *testing.T) *fakeCatalog {
	t.Helper()
	fake := &fakeCatalog{docs: map[string]*blueprint.Blueprint{}}
	prev := openCatalog
	openCatalog = func(ctx context.Context) (catalogAPI, error) { return fake, nil }
	t.Cleanup(func() { openCatalog = prev })
	return fake
}

// execute runs the root command with args and returns stdout. Flags are
// reset first because cobra keeps their values between runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("S3_BUCKET", "")
	t.Setenv("BLUEPRINT_OUTPUT_DIR", "")
	flagInput, flagOutput, flagFormat, flagConfig = "", "", "", ""
	flagPublish, flagVerbose, flagTUI = false, false, false
	flagFetchOutput, flagFetchFormat, flagListCursor = "", "", ""
	for _, c := range []string{"format", "output", "input", "publish"} {
		if f := generateCmd.Flags().Lookup(c); f != nil {
			f.Changed = false
		}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateToFileThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dragon.yaml")
	if _, err := execute(t, "generate", "-o", path, "A dragon teaches a lonely dragon kid about friendship"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	bp, err := render.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bp.Themes[0] != "friendship" {
		t.Fatalf("primary theme: want=%q got=%q", "friendship", bp.Themes[0])
	}

	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok (11 scenes, 15:00, 3 mid-rolls)") {
		t.Fatalf("validate output: %q", out)
	}
}

func TestGenerateToStdout(t *testing.T) {
	out, err := execute(t, "generate", "-F", "markdown")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(out, "# Video Blueprint") {
		t.Fatalf("stdout should be markdown, got %.40q", out)
	}
}

func TestGenerateUsesConfigFile(t *testing.T) {
	t.Setenv("BLUEPRINT_FORMAT", "")
	path := filepath.Join(t.TempDir(), "vidblueprint.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "generate", "-c", path, "A robot finds a friend")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if cfg.Output.Format != "yaml" {
		t.Fatalf("cfg.Output.Format: want=%q got=%q", "yaml", cfg.Output.Format)
	}
	if !strings.HasPrefix(out, "idea: A robot finds a friend") {
		t.Fatalf("stdout should be yaml, got %.40q", out)
	}
}

func TestGenerateRejectsArgsAndInput(t *testing.T) {
	if _, err := execute(t, "generate", "-i", "idea.txt", "also", "args"); err == nil {
		t.Fatalf("expected error for idea given twice")
	}
}

func TestGeneratePublishWithoutCatalog(t *testing.T) {
	_, err := execute(t, "generate", "--publish")
	if err == nil || !strings.Contains(err.Error(), "catalog is not configured") {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	bp := blueprint.Generate("")
	bp.Visuals = bp.Visuals[:3]
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := render.Save(&bp, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := execute(t, "validate", path)
	var verr *blueprint.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(out, "  x ") {
		t.Fatalf("problems should be listed, got %q", out)
	}
}

func TestPublishListFetchDelete(t *testing.T) {
	fake := useFakeCatalog(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bp.json")
	bp := blueprint.Generate("")
	if err := render.Save(&bp, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := execute(t, "publish", path)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(out, "Published 01CLITEST (11 scenes, 15:00)") {
		t.Fatalf("publish output: %q", out)
	}
	if len(fake.published) != 1 {
		t.Fatalf("published: want=1 got=%d", len(fake.published))
	}

	out, err = execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "01CLITEST") || !strings.Contains(out, "--cursor cursor-2") {
		t.Fatalf("list output: %q", out)
	}

	fake.docs["01CLITEST"] = &bp
	fetched := filepath.Join(dir, "fetched.md")
	if _, err := execute(t, "fetch", "01CLITEST", "-o", fetched); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	data, err := os.ReadFile(fetched)
	if err != nil {
		t.Fatalf("read fetched: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Video Blueprint") {
		t.Fatalf("fetched file should be markdown by extension")
	}

	if _, err := execute(t, "fetch", "missing"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("fetch missing: want ErrNotFound got %v", err)
	}

	if _, err := execute(t, "delete", "01CLITEST"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != "01CLITEST" {
		t.Fatalf("deleted: got %v", fake.deleted)
	}
}

func TestThemesAndVersion(t *testing.T) {
	out, err := execute(t, "themes")
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	for _, th := range blueprint.ThemeOrder() {
		if !strings.Contains(out, string(th)) {
			t.Fatalf("themes output missing %s", th)
		}
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "vidblueprint "+Version+"\n" {
		t.Fatalf("version: got %q", out)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		explicit   bool
		flag, out  string
		configured string
		want       render.Format
	}{
		{true, "yaml", "plan.json", "json", render.FormatYAML},
		{false, "", "plan.md", "json", render.FormatMarkdown},
		{false, "", "", "yaml", render.FormatYAML},
		{false, "", "-", "markdown", render.FormatMarkdown},
		{false, "", "noext", "json", render.FormatJSON},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.explicit, tt.flag, tt.out, tt.configured)
		if err != nil {
			t.Fatalf("resolveFormat(%v,%q,%q,%q): %v", tt.explicit, tt.flag, tt.out, tt.configured, err)
		}
		if got != tt.want {
			t.Fatalf("resolveFormat(%v,%q,%q,%q): want=%q got=%q", tt.explicit, tt.flag, tt.out, tt.configured, tt.want, got)
		}
	}
}

func TestResolveOutput(t *testing.T) {
	tests := []struct{ out, dir, want string }{
		{"", "plans", ""},
		{"-", "plans", ""},
		{"a.json", "plans", filepath.Join("plans", "a.json")},
		{"a.json", ".", "a.json"},
		{filepath.Join("x", "a.json"), "plans", filepath.Join("x", "a.json")},
	}
	for _, tt := range tests {
		if got := resolveOutput(tt.out, tt.dir); got != tt.want {
			t.Fatalf("resolveOutput(%q,%q): want=%q got=%q", tt.out, tt.dir, tt.want, got)
		}
	}
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func TestWizardFlow(t *testing.T) {
	flagInput, flagOutput, flagFormat, flagPublish = "", "", "", false

	var m tea.Model = initialTUIModel(true)
	// Type the idea.
	m = press(m, keyEnter, runes("A"), keySpace, runes("robot"), keyEnter)
	// Skip output, open format and pick yaml (second option).
	m = press(m, keyDown, keyEnter, keyDown, keyEnter)
	// Publish: pick yes.
	m = press(m, keyEnter, keyDown, keyEnter)
	// Generate.
	m = press(m, keyEnter)

	final := m.(tuiModel)
	if !final.confirmed {
		t.Fatalf("wizard should be confirmed, cursor=%d state=%d", final.cursor, final.state)
	}
	applySelections(final)
	if flagInput != "A robot" {
		t.Fatalf("flagInput: want=%q got=%q", "A robot", flagInput)
	}
	if flagFormat != "yaml" {
		t.Fatalf("flagFormat: want=%q got=%q", "yaml", flagFormat)
	}
	if !strings.HasSuffix(flagOutput, ".yaml") {
		t.Fatalf("auto-named output should follow the format, got %q", flagOutput)
	}
	if !flagPublish {
		t.Fatalf("flagPublish: want=true")
	}
	if !strings.Contains(final.View(), "robot") {
		t.Fatalf("view should show the typed idea")
	}
}

func TestWizardWithoutCatalogCannotPublish(t *testing.T) {
	flagInput, flagOutput, flagFormat, flagPublish = "", "", "", true
	m := initialTUIModel(false)
	if got := m.items[idxPublish].value; got != "no" {
		t.Fatalf("publish: want=%q got=%q", "no", got)
	}
	if len(m.items[idxPublish].options) != 1 {
		t.Fatalf("publish options: want=1 got=%d", len(m.items[idxPublish].options))
	}
	flagPublish = false
}

func TestWizardQuit(t *testing.T) {
	m := press(initialTUIModel(false), runes("q"))
	if !m.(tuiModel).cancelled {
		t.Fatalf("q should cancel")
	}
}
