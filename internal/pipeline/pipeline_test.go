package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/progress"
	"github.com/apresai/vidblueprint/internal/render"
)

type fakePublisher struct {
	got *blueprint.Blueprint
	err error
}

func (f *fakePublisher) Publish(ctx context.Context, bp *blueprint.Blueprint) (*catalog.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.got = bp
	return &catalog.Record{BlueprintID: "01TESTBLUEPRINT", URL: "https://cdn.example.com/blueprints/01TESTBLUEPRINT.json"}, nil
}

func TestRunWritesFileAndReportsProgress(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plans", "dragon.yaml")
	var events []progress.Event

	res, err := Run(context.Background(), Options{
		Input:      "A dragon teaches a lonely dragon kid about friendship",
		Output:     out,
		OnProgress: func(e progress.Event) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OutputFile != out {
		t.Fatalf("OutputFile: want=%q got=%q", out, res.OutputFile)
	}

	loaded, err := render.Load(out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Idea != res.Blueprint.Idea {
		t.Fatalf("Idea: want=%q got=%q", res.Blueprint.Idea, loaded.Idea)
	}

	var steps int
	for _, e := range events {
		if e.Stage == progress.StageGenerate {
			steps++
		}
	}
	if steps != len(blueprint.Stages()) {
		t.Fatalf("generate events: want=%d got=%d", len(blueprint.Stages()), steps)
	}
	last := events[len(events)-1]
	if last.Stage != progress.StageComplete {
		t.Fatalf("last stage: want=%q got=%q", progress.StageComplete, last.Stage)
	}
	if last.SceneCount != 11 || last.Runtime != "15:00" {
		t.Fatalf("complete event: want 11 scenes 15:00, got %d %s", last.SceneCount, last.Runtime)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Percent < events[i-1].Percent {
			t.Fatalf("percent went backwards at event %d: %v -> %v", i, events[i-1].Percent, events[i].Percent)
		}
	}
}

func TestRunWritesStdoutWhenNoOutput(t *testing.T) {
	var stdout bytes.Buffer
	res, err := Run(context.Background(), Options{Stdout: &stdout, Format: render.FormatMarkdown})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.OutputFile != "" {
		t.Fatalf("OutputFile: want empty got %q", res.OutputFile)
	}
	if !strings.HasPrefix(stdout.String(), "# Video Blueprint") {
		t.Fatalf("stdout should hold the markdown brief, got %.40q", stdout.String())
	}
	if res.Blueprint.Idea != blueprint.DefaultIdea {
		t.Fatalf("empty input should use the default idea, got %q", res.Blueprint.Idea)
	}
}

func TestRunReadsIdeaFromFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "pitch.txt")
	if err := os.WriteFile(in, []byte("A dragon teaches a lonely dragon kid about friendship\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := Run(context.Background(), Options{Input: in, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Content.Type.String() != "file" {
		t.Fatalf("Type: want=%q got=%q", "file", res.Content.Type)
	}
	if res.Blueprint.Themes[0] != "friendship" {
		t.Fatalf("primary theme: want=%q got=%q", "friendship", res.Blueprint.Themes[0])
	}
}

func TestRunPublishes(t *testing.T) {
	pub := &fakePublisher{}
	res, err := Run(context.Background(), Options{Stdout: &bytes.Buffer{}, Publish: true, Publisher: pub})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if pub.got == nil {
		t.Fatalf("publisher was not called")
	}
	if res.Record == nil || res.Record.BlueprintID != "01TESTBLUEPRINT" {
		t.Fatalf("Record: got %+v", res.Record)
	}
}

func TestRunPublishErrors(t *testing.T) {
	boom := errors.New("bucket unavailable")
	tests := []struct {
		name string
		pub  Publisher
	}{
		{"no publisher", nil},
		{"publish fails", &fakePublisher{err: boom}},
	}
	for _, tt := range tests {
		_, err := Run(context.Background(), Options{Stdout: &bytes.Buffer{}, Publish: true, Publisher: tt.pub})
		var pe *PipelineError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: expected PipelineError, got %v", tt.name, err)
		}
		if pe.Stage != "publish" {
			t.Fatalf("%s: Stage: want=%q got=%q", tt.name, "publish", pe.Stage)
		}
	}

	_, err := Run(context.Background(), Options{Stdout: &bytes.Buffer{}, Publish: true, Publisher: &fakePublisher{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("publish error should unwrap to the cause, got %v", err)
	}
}

func TestRunIngestError(t *testing.T) {
	var events []progress.Event
	_, err := Run(context.Background(), Options{
		Input:      filepath.Join(t.TempDir(), "missing.pdf"),
		OnProgress: func(e progress.Event) { events = append(events, e) },
	})
	var pe *PipelineError
	if !errors.As(err, &pe) || pe.Stage != "ingest" {
		t.Fatalf("expected ingest PipelineError, got %v", err)
	}
	if last := events[len(events)-1]; last.Error == nil {
		t.Fatalf("last event should carry the error")
	}
}

func TestPipelineErrorFormat(t *testing.T) {
	err := &PipelineError{Stage: "render", Message: "failed to save blueprint", Err: errors.New("disk full")}
	if got := err.Error(); got != "[render] failed to save blueprint: disk full" {
		t.Fatalf("Error: got %q", got)
	}
	if got := (&PipelineError{Stage: "publish", Message: "no catalog"}).Error(); got != "[publish] no catalog" {
		t.Fatalf("Error: got %q", got)
	}
}
