package progress

import "time"

// Stage identifies which pipeline stage is active.
type Stage string

const (
	StageIngest   Stage = "ingest"
	StageGenerate Stage = "generate"
	StageRender   Stage = "render"
	StagePublish  Stage = "publish"
	StageComplete Stage = "complete"
)

// Event carries progress information from the pipeline to the renderer.
type Event struct {
	Stage     Stage
	Message   string
	Percent   float64 // 0.0–1.0
	Step      int     // engine step within StageGenerate
	StepTotal int
	Elapsed   time.Duration
	Error     error
	// OutputFile is set on StageComplete when the blueprint was written to disk.
	OutputFile string
	// Runtime is the blueprint runtime (e.g. "15:00"), set on StageComplete.
	Runtime string
	// SceneCount is set on StageComplete.
	SceneCount int
	// BlueprintID and URL are set on StageComplete when the blueprint was published.
	BlueprintID string
	URL         string
}

// Callback is the function signature for progress event handlers.
type Callback func(Event)

// NopCallback is a no-op progress callback for tests and silent mode.
func NopCallback(Event) {}

// NewEvent creates an Event with common fields populated.
func NewEvent(stage Stage, msg string, pct float64, start time.Time) Event {
	return Event{
		Stage:   stage,
		Message: msg,
		Percent: pct,
		Elapsed: time.Since(start),
	}
}
