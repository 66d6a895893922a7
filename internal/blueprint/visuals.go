package blueprint

import (
	"fmt"
	"strings"
)

type toneLook struct {
	camera      string
	lighting    string
	environment string
}

// toneLooks maps emotional tone to a camera/lighting vocabulary.
var toneLooks = map[string]toneLook{
	ToneUrgent:     {"Handheld whip-pans with crash zooms", "High-contrast flashes with deep shadows", "debris and wind streaks tearing across"},
	ToneTense:      {"Handheld close-ups with slow push-ins", "Low-key lighting with cold blue rim light", "looming shadows stretching over"},
	ToneCurious:    {"Over-the-shoulder tracking shots", "Soft dappled light with a single warm accent", "small glowing clues scattered around"},
	TonePlayful:    {"Bouncy dolly moves and quick reaction cuts", "Bright saturated high-key lighting", "colorful clutter and bouncing props around"},
	ToneWarm:       {"Locked-off medium shots with gentle pans", "Golden-hour backlight with soft bloom", "sunlit details and cozy textures across"},
	ToneHeartfelt:  {"Slow dolly-in to tight two-shot", "Warm amber key light with soft falloff", "quiet stillness settling over"},
	ToneHopeful:    {"Rising crane shot to a wide vista", "Pastel sunrise glow", "fresh morning light spilling over"},
	ToneTriumphant: {"Sweeping low-angle orbit around the heroes", "Radiant golden god-rays breaking through", "sparkling particles swirling above"},
}

var defaultLook = toneLook{"Steady cinematic wide shot", "Balanced natural daylight", "soft atmosphere over"}

// actFraming adds the act's role to the camera direction.
var actFraming = map[string]string{
	ActHook:         "cold open, first frame already in motion",
	ActRisingAction: "establishing geography before each beat",
	ActClimax:       "tight framing, faster cutting rhythm",
	ActResolution:   "wider framing, lingering holds",
}

const visualStyle = "bright 3D animated family-film style"

// BuildVisuals derives one SceneVisual per scene, in script order, keyed by
// the scene id.
func BuildVisuals(f Features, acts []Act) []SceneVisual {
	byName := make(map[string]Character, 3)
	for _, c := range f.Cast() {
		byName[c.Name] = c
	}

	var out []SceneVisual
	for _, act := range acts {
		framing := actFraming[act.Title]
		for _, sc := range act.Scenes {
			look, ok := toneLooks[sc.EmotionalTone]
			if !ok {
				look = defaultLook
			}
			camera := look.camera
			if framing != "" {
				camera += "; " + framing
			}
			out = append(out, SceneVisual{
				SceneID:             sc.ID,
				Title:               sc.Title,
				CharacterAppearance: appearance(sc, byName),
				Camera:              camera,
				Lighting:            look.lighting,
				Environment:         fmt.Sprintf("%s, %s %s", visualStyle, look.environment, f.Setting.Name),
				Action:              action(sc),
			})
		}
	}
	return out
}

// appearance lists the characters speaking in the scene, in order of first
// line.
func appearance(sc Scene, byName map[string]Character) string {
	var parts []string
	seen := make(map[string]bool)
	for _, d := range sc.Dialogue {
		if seen[d.Speaker] {
			continue
		}
		seen[d.Speaker] = true
		c, ok := byName[d.Speaker]
		if !ok {
			parts = append(parts, d.Speaker)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", c.Name, c.Appearance))
	}
	if len(parts) == 0 {
		return "No characters on screen"
	}
	return strings.Join(parts, "; ")
}

func action(sc Scene) string {
	n := len(sc.Beats)
	if n > 2 {
		n = 2
	}
	if n == 0 {
		return sc.Title
	}
	return strings.Join(sc.Beats[:n], ", then ")
}
