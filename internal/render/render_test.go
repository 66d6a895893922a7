package render

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/apresai/vidblueprint/internal/blueprint"
)

func TestSaveLoadJSONAndYAML(t *testing.T) {
	bp := blueprint.Generate(blueprint.DefaultIdea)
	dir := t.TempDir()

	for _, name := range []string{"bp.json", "nested/bp.yaml", "bp.yml"} {
		path := filepath.Join(dir, name)
		if err := Save(&bp, path); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if !reflect.DeepEqual(&bp, got) {
			t.Fatalf("%s: loaded blueprint differs from saved", name)
		}
	}
}

func TestJSONPreservesOrderAndFieldNames(t *testing.T) {
	bp := blueprint.Generate("")
	data, err := Marshal(&bp, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"targetAudience"`, `"startTime"`, `"sceneId"`, `"ageTone"`, `"midRollMoments"`, `"retentionBoosters"`} {
		if !strings.Contains(s, key) {
			t.Fatalf("json missing key %s", key)
		}
	}
	if strings.Index(s, `"scene-01"`) > strings.Index(s, `"scene-02"`) {
		t.Fatalf("scene order not preserved")
	}
	if strings.Contains(s, `&`) {
		t.Fatalf("html escaping should be disabled")
	}
}

func TestLoadRejectsEmptyScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"idea":"x"}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load: expected error, got nil")
	}
}

func TestMarkdownSections(t *testing.T) {
	bp := blueprint.Generate("A dragon teaches a lonely dragon kid about friendship")
	md := Markdown(&bp)

	for _, h := range []string{headStrategy, headScript, headVisuals, headVoices, headSound, headRetention, headMonetization, headCopyright} {
		if !strings.Contains(md, "## "+h) {
			t.Fatalf("markdown missing section %q", h)
		}
	}
	for _, sc := range bp.Scenes() {
		if !strings.Contains(md, sc.ID) {
			t.Fatalf("markdown missing scene %s", sc.ID)
		}
	}
	for _, m := range bp.Monetization.MidRollMoments {
		if !strings.Contains(md, "**"+m.Time+"**") {
			t.Fatalf("markdown missing mid-roll %s", m.Time)
		}
	}
}

func TestTerminalView(t *testing.T) {
	bp := blueprint.Generate("")
	out := Terminal(&bp, 100)
	for _, want := range []string{"VIDEO BLUEPRINT", headStrategy, headCopyright, "HOOK"} {
		if !strings.Contains(out, want) {
			t.Fatalf("terminal view missing %q", want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"terminal", FormatTerm, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q): want=%q got=%q", tt.in, tt.want, got)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"out.json":      FormatJSON,
		"out.YAML":      FormatYAML,
		"brief.md":      FormatMarkdown,
		"no-extension":  FormatJSON,
		"dir/plan.yml":  FormatYAML,
		"dir/plan.json": FormatJSON,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Fatalf("FormatForPath(%q): want=%q got=%q", path, want, got)
		}
	}
}
