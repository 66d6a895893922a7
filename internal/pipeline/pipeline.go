package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/apresai/vidblueprint/internal/blueprint"
	"github.com/apresai/vidblueprint/internal/catalog"
	"github.com/apresai/vidblueprint/internal/ingest"
	"github.com/apresai/vidblueprint/internal/progress"
	"github.com/apresai/vidblueprint/internal/render"
)

var tracer = otel.Tracer("vidblueprint/pipeline")

// Publisher stores a finished blueprint somewhere shareable.
type Publisher interface {
	Publish(ctx context.Context, bp *blueprint.Blueprint) (*catalog.Record, error)
}

type Options struct {
	// Input is the idea itself, a text or markdown file, a PDF or a URL.
	// Empty means the built-in default idea.
	Input string
	// Output is the destination file. Empty or "-" writes to Stdout.
	Output string
	// Format overrides the format implied by Output's extension.
	Format    render.Format
	Publish   bool
	Publisher Publisher

	OnProgress progress.Callback
	Stdout     io.Writer
	Logger     *slog.Logger
}

// Result describes what a run produced.
type Result struct {
	Blueprint  *blueprint.Blueprint
	Content    *ingest.Content
	OutputFile string
	Record     *catalog.Record
	Elapsed    time.Duration
}

type PipelineError struct {
	Stage   string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run ingests the idea, generates and validates the blueprint, writes it
// out and optionally publishes it.
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	emit := opts.OnProgress
	if emit == nil {
		emit = progress.NopCallback
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	fail := func(pe *PipelineError) (*Result, error) {
		span.RecordError(pe)
		span.SetStatus(codes.Error, pe.Stage)
		ev := progress.NewEvent(progress.Stage(pe.Stage), pe.Message, 0, start)
		ev.Error = pe
		emit(ev)
		return nil, pe
	}

	if opts.Publish && opts.Publisher == nil {
		return fail(&PipelineError{Stage: "publish", Message: "publishing requested but no catalog is configured (set S3_BUCKET and DYNAMODB_TABLE)"})
	}

	// Stage 1: Ingest
	emit(progress.NewEvent(progress.StageIngest, "Reading idea...", 0.02, start))
	content, err := ingest.Ingest(ctx, opts.Input)
	if err != nil {
		return fail(&PipelineError{Stage: "ingest", Message: "failed to read idea", Err: err})
	}
	logger.DebugContext(ctx, "Idea ingested",
		"source", content.Source, "type", content.Type.String(), "words", content.WordCount)

	// Stage 2: Generate
	stages := blueprint.Stages()
	step := 0
	bp := blueprint.GenerateObserved(content.Idea, func(s blueprint.Stage) {
		step++
		ev := progress.NewEvent(progress.StageGenerate, "Building "+string(s), 0.05+0.75*float64(step)/float64(len(stages)), start)
		ev.Step = step
		ev.StepTotal = len(stages)
		emit(ev)
	})
	if err := blueprint.Validate(bp); err != nil {
		return fail(&PipelineError{Stage: "generate", Message: "generated blueprint failed validation", Err: err})
	}
	span.SetAttributes(
		attribute.Int("blueprint.scenes", bp.SceneCount()),
		attribute.StringSlice("blueprint.themes", bp.Themes),
	)

	res := &Result{Blueprint: &bp, Content: content}

	// Stage 3: Render
	emit(progress.NewEvent(progress.StageRender, "Writing blueprint...", 0.85, start))
	format := opts.Format
	if opts.Output == "" || opts.Output == "-" {
		if format == "" {
			format = render.FormatJSON
		}
		if err := render.Encode(stdout, &bp, format); err != nil {
			return fail(&PipelineError{Stage: "render", Message: "failed to write blueprint", Err: err})
		}
	} else {
		if format == "" {
			format = render.FormatForPath(opts.Output)
		}
		if err := writeFile(&bp, opts.Output, format); err != nil {
			return fail(&PipelineError{Stage: "render", Message: "failed to save blueprint", Err: err})
		}
		res.OutputFile = opts.Output
	}

	// Stage 4: Publish
	if opts.Publish {
		emit(progress.NewEvent(progress.StagePublish, "Publishing to catalog...", 0.92, start))
		rec, err := opts.Publisher.Publish(ctx, &bp)
		if err != nil {
			return fail(&PipelineError{Stage: "publish", Message: "failed to publish blueprint", Err: err})
		}
		res.Record = rec
		span.SetAttributes(attribute.String("blueprint.id", rec.BlueprintID))
	}

	res.Elapsed = time.Since(start)
	done := progress.NewEvent(progress.StageComplete, "Blueprint ready", 1.0, start)
	done.OutputFile = res.OutputFile
	done.Runtime = bp.Runtime
	done.SceneCount = bp.SceneCount()
	if res.Record != nil {
		done.BlueprintID = res.Record.BlueprintID
		done.URL = res.Record.URL
	}
	emit(done)

	logger.InfoContext(ctx, "Blueprint generated",
		"idea", bp.Idea,
		"themes", bp.Themes,
		"scenes", bp.SceneCount(),
		"output", res.OutputFile,
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res, nil
}

func writeFile(bp *blueprint.Blueprint, path string, f render.Format) error {
	data, err := render.Marshal(bp, f)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
