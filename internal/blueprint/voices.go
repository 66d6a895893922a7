package blueprint

type roleVoice struct {
	emotionPalette string
	style          string
	tempo          string
}

var roleVoices = map[Role]roleVoice{
	RoleProtagonist: {
		emotionPalette: "Brave, warm, breaks into relieved laughter; cracks with worry only at the lowest moment",
		style:          "Clear heroic delivery with playful asides straight to the audience",
		tempo:          "Medium, accelerating in action beats",
	},
	RoleThreat: {
		emotionPalette: "Ominous, teasing, never truly cruel; softens into a sigh when defeated",
		style:          "Breathy layered whisper with reverb and a low rumble underneath",
		tempo:          "Slow and drawn out, with sudden booming spikes",
	},
	RoleSupporting: {
		emotionPalette: "Hopeful, scared, wonder-struck, joyful",
		style:          "Expressive and sincere with natural kid-friendly reactions",
		tempo:          "Medium-fast, quickens when excited",
	},
}

// BuildVoices returns one profile per distinct dialogue speaker, in order of
// first appearance.
func BuildVoices(f Features, acts []Act) []VoiceProfile {
	byName := make(map[string]Character, 3)
	for _, c := range f.Cast() {
		byName[c.Name] = c
	}

	var out []VoiceProfile
	for _, name := range Speakers(acts) {
		c, ok := byName[name]
		if !ok {
			c = Character{Name: name, Role: RoleSupporting, Gender: "neutral", AgeTone: "friendly narrator"}
		}
		v := roleVoices[c.Role]
		out = append(out, VoiceProfile{
			Character:      c.Name,
			Gender:         c.Gender,
			AgeTone:        c.AgeTone,
			EmotionPalette: v.emotionPalette,
			Style:          v.style,
			Tempo:          v.tempo,
		})
	}
	return out
}

// Speakers returns the distinct dialogue speakers in order of first line.
func Speakers(acts []Act) []string {
	var out []string
	seen := make(map[string]bool)
	for _, sc := range flattenScenes(acts) {
		for _, d := range sc.Dialogue {
			if seen[d.Speaker] {
				continue
			}
			seen[d.Speaker] = true
			out = append(out, d.Speaker)
		}
	}
	return out
}
