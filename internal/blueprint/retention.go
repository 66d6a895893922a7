package blueprint

import (
	"fmt"
	"strings"
)

var (
	suspenseTones  = map[string]bool{ToneUrgent: true, ToneTense: true}
	emotionalTones = map[string]bool{ToneHeartfelt: true, ToneWarm: true, ToneHopeful: true, ToneTriumphant: true}
)

// ExtractRetention pulls hook lines, suspense moments, emotional dialogue
// and open loops out of the script. No list is ever empty.
func ExtractRetention(f Features, acts []Act) RetentionBoosters {
	var rb RetentionBoosters

	if hook := hookAct(acts); hook != nil {
		for i, sc := range hook.Scenes {
			if i == 0 {
				rb.HookLines = append(rb.HookLines, sc.Beats...)
			} else if len(sc.Beats) > 0 {
				rb.HookLines = append(rb.HookLines, sc.Beats[0])
			}
		}
	}

	for _, sc := range flattenScenes(acts) {
		if suspenseTones[sc.EmotionalTone] && len(sc.Beats) > 0 {
			rb.SuspenseMoments = append(rb.SuspenseMoments, fmt.Sprintf("%s %s", sc.Timestamp, sc.Beats[0]))
		}
		if emotionalTones[sc.EmotionalTone] {
			for _, d := range sc.Dialogue {
				rb.EmotionalDialogues = append(rb.EmotionalDialogues, fmt.Sprintf("%s: “%s”", d.Speaker, d.Line))
			}
		}
	}

	// Open loops come from the acts between the hook and the resolution.
	names := []string{f.Hero.Name, f.Threat.Name, f.Ally.Name}
	if len(acts) > 2 {
		for _, act := range acts[1 : len(acts)-1] {
			for _, sc := range act.Scenes {
				if len(sc.Beats) == 0 {
					continue
				}
				rb.OpenLoops = append(rb.OpenLoops, openLoop(sc.Beats[len(sc.Beats)-1], names))
			}
		}
	}

	rb.HookLines = orDefault(dedupe(rb.HookLines), fmt.Sprintf("%s is coming, and only %s can stop it", f.Threat.Name, f.Hero.Name))
	rb.SuspenseMoments = orDefault(dedupe(rb.SuspenseMoments), fmt.Sprintf("%s closes in on %s", f.Threat.Name, f.Ally.Name))
	rb.EmotionalDialogues = orDefault(dedupe(rb.EmotionalDialogues), fmt.Sprintf("%s: “I'll always find you.”", f.Hero.Name))
	rb.OpenLoops = orDefault(dedupe(rb.OpenLoops), fmt.Sprintf("Will %s make it back to %s in time?", f.Hero.Name, f.Ally.Name))
	return rb
}

func hookAct(acts []Act) *Act {
	for i := range acts {
		if acts[i].Title == ActHook {
			return &acts[i]
		}
	}
	if len(acts) > 0 {
		return &acts[0]
	}
	return nil
}

// openLoop rephrases a beat as the question the viewer is left with.
func openLoop(beat string, names []string) string {
	beat = strings.TrimRight(beat, ".!?")
	if _, rest, ok := strings.Cut(beat, ": "); ok {
		beat = rest
	}
	return fmt.Sprintf("What happens after %s?", lowerFirst(beat, names))
}

// lowerFirst lowercases the leading letter unless the text opens with a
// character name.
func lowerFirst(s string, names []string) string {
	for _, n := range names {
		if strings.HasPrefix(s, n) {
			return s
		}
	}
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func orDefault(list []string, fallback string) []string {
	if len(list) == 0 {
		return []string{fallback}
	}
	return list
}
