package blueprint

// Blueprint is the complete production plan produced for one idea.
type Blueprint struct {
	Idea              string            `json:"idea" yaml:"idea"`
	Themes            []string          `json:"themes" yaml:"themes"`
	Runtime           string            `json:"runtime" yaml:"runtime"`
	Strategy          Strategy          `json:"strategy" yaml:"strategy"`
	Script            []Act             `json:"script" yaml:"script"`
	Visuals           []SceneVisual     `json:"visuals" yaml:"visuals"`
	Voices            []VoiceProfile    `json:"voices" yaml:"voices"`
	Sound             SoundDesign       `json:"sound" yaml:"sound"`
	RetentionBoosters RetentionBoosters `json:"retentionBoosters" yaml:"retentionBoosters"`
	Monetization      Monetization      `json:"monetization" yaml:"monetization"`
	Copyright         []string          `json:"copyright" yaml:"copyright"`
}

type Strategy struct {
	TargetAudience    string   `json:"targetAudience" yaml:"targetAudience"`
	EmotionalTriggers []string `json:"emotionalTriggers" yaml:"emotionalTriggers"`
	RetentionStrategy []string `json:"retentionStrategy" yaml:"retentionStrategy"`
	TrendingReasons   []string `json:"trendingReasons" yaml:"trendingReasons"`
}

// Act is a top-level narrative segment holding an ordered run of scenes.
type Act struct {
	Title     string  `json:"title" yaml:"title"`
	StartTime string  `json:"startTime" yaml:"startTime"`
	Focus     string  `json:"focus" yaml:"focus"`
	Scenes    []Scene `json:"scenes" yaml:"scenes"`
}

type Scene struct {
	ID            string         `json:"id" yaml:"id"`
	Timestamp     string         `json:"timestamp" yaml:"timestamp"`
	Duration      string         `json:"duration" yaml:"duration"`
	Title         string         `json:"title" yaml:"title"`
	EmotionalTone string         `json:"emotionalTone" yaml:"emotionalTone"`
	Pacing        string         `json:"pacing" yaml:"pacing"`
	Beats         []string       `json:"beats" yaml:"beats"`
	Dialogue      []DialogueLine `json:"dialogue" yaml:"dialogue"`
}

type DialogueLine struct {
	Speaker string `json:"speaker" yaml:"speaker"`
	Line    string `json:"line" yaml:"line"`
}

// SceneVisual is the visual direction for exactly one Scene, joined on SceneID.
type SceneVisual struct {
	SceneID             string `json:"sceneId" yaml:"sceneId"`
	Title               string `json:"title" yaml:"title"`
	CharacterAppearance string `json:"characterAppearance" yaml:"characterAppearance"`
	Camera              string `json:"camera" yaml:"camera"`
	Lighting            string `json:"lighting" yaml:"lighting"`
	Environment         string `json:"environment" yaml:"environment"`
	Action              string `json:"action" yaml:"action"`
}

// VoiceProfile describes how one speaking character should sound.
type VoiceProfile struct {
	Character      string `json:"character" yaml:"character"`
	Gender         string `json:"gender" yaml:"gender"`
	AgeTone        string `json:"ageTone" yaml:"ageTone"`
	EmotionPalette string `json:"emotionPalette" yaml:"emotionPalette"`
	Style          string `json:"style" yaml:"style"`
	Tempo          string `json:"tempo" yaml:"tempo"`
}

type SoundDesign struct {
	Ambient []string `json:"ambient" yaml:"ambient"`
	Effects []string `json:"effects" yaml:"effects"`
	Music   []string `json:"music" yaml:"music"`
}

type RetentionBoosters struct {
	HookLines          []string `json:"hookLines" yaml:"hookLines"`
	SuspenseMoments    []string `json:"suspenseMoments" yaml:"suspenseMoments"`
	EmotionalDialogues []string `json:"emotionalDialogues" yaml:"emotionalDialogues"`
	OpenLoops          []string `json:"openLoops" yaml:"openLoops"`
}

type Monetization struct {
	AdSafeIntro    string          `json:"adSafeIntro" yaml:"adSafeIntro"`
	MidRollMoments []MidRollMoment `json:"midRollMoments" yaml:"midRollMoments"`
	Compliance     []string        `json:"compliance" yaml:"compliance"`
}

type MidRollMoment struct {
	Time    string `json:"time" yaml:"time"`
	Context string `json:"context" yaml:"context"`
}

// Stage identifies one step of the generation pipeline.
type Stage string

const (
	StageParse        Stage = "parse"
	StageStrategy     Stage = "strategy"
	StageScript       Stage = "script"
	StageVisuals      Stage = "visuals"
	StageVoices       Stage = "voices"
	StageSound        Stage = "sound"
	StageRetention    Stage = "retention"
	StageMonetization Stage = "monetization"
	StageCopyright    Stage = "copyright"
)

// Stages returns the generation stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageParse,
		StageStrategy,
		StageScript,
		StageVisuals,
		StageVoices,
		StageSound,
		StageRetention,
		StageMonetization,
		StageCopyright,
	}
}

// Generate turns a story idea into a complete Blueprint. It never fails:
// empty or unrecognized ideas fall back to the default idea and themes.
// The same idea always yields an identical Blueprint.
func Generate(idea string) Blueprint {
	return GenerateObserved(idea, nil)
}

// GenerateObserved is Generate with a callback invoked after each stage
// completes. The observer sees only the stage name and cannot change the
// result.
func GenerateObserved(idea string, observe func(Stage)) Blueprint {
	done := func(s Stage) {
		if observe != nil {
			observe(s)
		}
	}

	f := ParseIdea(idea)
	done(StageParse)

	strategy := BuildStrategy(f)
	done(StageStrategy)

	acts := BuildScript(f)
	done(StageScript)

	visuals := BuildVisuals(f, acts)
	done(StageVisuals)

	voices := BuildVoices(f, acts)
	done(StageVoices)

	sound := BuildSound(f, acts)
	done(StageSound)

	boosters := ExtractRetention(f, acts)
	done(StageRetention)

	money := PlanMonetization(acts)
	done(StageMonetization)

	rules := CopyrightRules()
	done(StageCopyright)

	return Blueprint{
		Idea:              f.Idea,
		Themes:            themeNames(f.Themes),
		Runtime:           FormatTimecode(RuntimeSeconds),
		Strategy:          strategy,
		Script:            acts,
		Visuals:           visuals,
		Voices:            voices,
		Sound:             sound,
		RetentionBoosters: boosters,
		Monetization:      money,
		Copyright:         rules,
	}
}

// SceneCount returns the number of scenes across all acts.
func (b Blueprint) SceneCount() int {
	n := 0
	for _, a := range b.Script {
		n += len(a.Scenes)
	}
	return n
}

// Scenes returns every scene in script order.
func (b Blueprint) Scenes() []Scene {
	return flattenScenes(b.Script)
}

func flattenScenes(acts []Act) []Scene {
	var out []Scene
	for _, a := range acts {
		out = append(out, a.Scenes...)
	}
	return out
}

func themeNames(tags []Theme) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
