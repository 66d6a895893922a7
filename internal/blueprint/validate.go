package blueprint

import (
	"fmt"
	"strings"
)

// ValidationError lists every structural problem found in a Blueprint.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid blueprint: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid blueprint: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Validate checks the structural guarantees of a Blueprint: a contiguous
// timeline that fills the runtime, one visual per scene, one voice per
// speaker, ordered ad breaks and no empty lists. It is meant for blueprints
// loaded from disk or storage; Generate output always passes.
func Validate(b Blueprint) error {
	var v validator

	runtime, err := ParseTimecode(b.Runtime)
	if err != nil {
		v.addf("runtime: %v", err)
		runtime = RuntimeSeconds
	}

	v.nonEmpty("themes", b.Themes)
	v.nonEmpty("strategy.emotionalTriggers", b.Strategy.EmotionalTriggers)
	v.nonEmpty("strategy.retentionStrategy", b.Strategy.RetentionStrategy)
	v.nonEmpty("strategy.trendingReasons", b.Strategy.TrendingReasons)
	if b.Strategy.TargetAudience == "" {
		v.addf("strategy.targetAudience is empty")
	}

	v.checkTimeline(b.Script, runtime)
	v.checkVisuals(b.Scenes(), b.Visuals)
	v.checkVoices(b.Script, b.Voices)

	v.nonEmpty("sound.ambient", b.Sound.Ambient)
	v.nonEmpty("sound.effects", b.Sound.Effects)
	v.nonEmpty("sound.music", b.Sound.Music)
	v.nonEmpty("retentionBoosters.hookLines", b.RetentionBoosters.HookLines)
	v.nonEmpty("retentionBoosters.suspenseMoments", b.RetentionBoosters.SuspenseMoments)
	v.nonEmpty("retentionBoosters.emotionalDialogues", b.RetentionBoosters.EmotionalDialogues)
	v.nonEmpty("retentionBoosters.openLoops", b.RetentionBoosters.OpenLoops)

	v.checkMidRolls(b.Monetization.MidRollMoments, runtime)
	v.nonEmpty("monetization.compliance", b.Monetization.Compliance)
	v.nonEmpty("copyright", b.Copyright)

	if len(v.problems) > 0 {
		return &ValidationError{Problems: v.problems}
	}
	return nil
}

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) nonEmpty(field string, list []string) {
	if len(list) == 0 {
		v.addf("%s is empty", field)
	}
}

// checkTimeline requires scenes to start where the previous one ended and
// the durations to add up to the runtime.
func (v *validator) checkTimeline(acts []Act, runtime int) {
	if len(acts) == 0 {
		v.addf("script has no acts")
		return
	}
	elapsed := 0
	for _, act := range acts {
		if len(act.Scenes) == 0 {
			v.addf("act %q has no scenes", act.Title)
			continue
		}
		if start, err := ParseTimecode(act.StartTime); err != nil {
			v.addf("act %q startTime: %v", act.Title, err)
		} else if start != elapsed {
			v.addf("act %q starts at %s, want %s", act.Title, act.StartTime, FormatTimecode(elapsed))
		}
		for _, sc := range act.Scenes {
			at, err := ParseTimecode(sc.Timestamp)
			if err != nil {
				v.addf("scene %s timestamp: %v", sc.ID, err)
				continue
			}
			dur, err := ParseTimecode(sc.Duration)
			if err != nil {
				v.addf("scene %s duration: %v", sc.ID, err)
				continue
			}
			if at != elapsed {
				v.addf("scene %s starts at %s, want %s", sc.ID, sc.Timestamp, FormatTimecode(elapsed))
			}
			if at >= runtime {
				v.addf("scene %s starts at %s, past the runtime", sc.ID, sc.Timestamp)
			}
			if dur <= 0 {
				v.addf("scene %s has no duration", sc.ID)
			}
			if len(sc.Beats) == 0 {
				v.addf("scene %s has no beats", sc.ID)
			}
			if len(sc.Dialogue) == 0 {
				v.addf("scene %s has no dialogue", sc.ID)
			}
			elapsed = at + dur
		}
	}
	if elapsed != runtime {
		v.addf("scenes total %s, want %s", FormatTimecode(elapsed), FormatTimecode(runtime))
	}
}

// checkVisuals requires exactly one visual per scene, in scene order.
func (v *validator) checkVisuals(scenes []Scene, visuals []SceneVisual) {
	if len(scenes) != len(visuals) {
		v.addf("%d visuals for %d scenes", len(visuals), len(scenes))
	}
	seen := make(map[string]bool, len(scenes))
	for i, sc := range scenes {
		if seen[sc.ID] {
			v.addf("duplicate scene id %s", sc.ID)
		}
		seen[sc.ID] = true
		if i < len(visuals) && visuals[i].SceneID != sc.ID {
			v.addf("visual %d is for %s, want %s", i, visuals[i].SceneID, sc.ID)
		}
	}
	for _, vis := range visuals {
		if !seen[vis.SceneID] {
			v.addf("visual for unknown scene %s", vis.SceneID)
		}
	}
}

// checkVoices requires one profile per distinct speaker and no extras.
func (v *validator) checkVoices(acts []Act, voices []VoiceProfile) {
	speakers := make(map[string]bool)
	for _, s := range Speakers(acts) {
		speakers[s] = true
	}
	profiled := make(map[string]bool, len(voices))
	for _, p := range voices {
		if profiled[p.Character] {
			v.addf("duplicate voice profile for %s", p.Character)
		}
		profiled[p.Character] = true
		if !speakers[p.Character] {
			v.addf("voice profile for %s who never speaks", p.Character)
		}
	}
	for _, s := range Speakers(acts) {
		if !profiled[s] {
			v.addf("no voice profile for speaker %s", s)
		}
	}
}

func (v *validator) checkMidRolls(moments []MidRollMoment, runtime int) {
	prev := -1
	for _, m := range moments {
		at, err := ParseTimecode(m.Time)
		if err != nil {
			v.addf("mid-roll %q: %v", m.Time, err)
			continue
		}
		if at <= AdSafeSeconds {
			v.addf("mid-roll %s falls inside the ad-safe intro", m.Time)
		}
		if at >= runtime {
			v.addf("mid-roll %s is past the runtime", m.Time)
		}
		if at <= prev {
			v.addf("mid-roll %s is out of order", m.Time)
		}
		prev = at
	}
}
