package blueprint

type toneCues struct {
	ambient []string
	effects []string
	music   []string
}

// toneSound maps a scene tone to royalty-free cue descriptions.
var toneSound = map[string]toneCues{
	ToneUrgent: {
		ambient: []string{"Roaring wind bed with low rumble"},
		effects: []string{"Whoosh hits on every cut", "Deep boom on the title card", "Rapid heartbeat thump"},
		music:   []string{"Driving orchestral ostinato at 140 BPM with taiko hits"},
	},
	ToneTense: {
		ambient: []string{"Hollow airy drone"},
		effects: []string{"Creaks and distant cracks", "Rising riser into each cliffhanger"},
		music:   []string{"Pulsing low strings with ticking clock percussion"},
	},
	ToneCurious: {
		ambient: []string{"Light breeze with faint chimes"},
		effects: []string{"Sparkle ping when a clue appears"},
		music:   []string{"Plucky pizzicato mystery motif"},
	},
	TonePlayful: {
		ambient: []string{"Chirpy outdoor bed"},
		effects: []string{"Cartoon boing and slide-whistle gags", "Comedic record scratch"},
		music:   []string{"Bouncy ukulele and glockenspiel groove"},
	},
	ToneWarm: {
		ambient: []string{"Soft morning birdsong"},
		effects: []string{"Gentle footsteps and cozy household foley"},
		music:   []string{"Warm acoustic guitar theme introducing the family motif"},
	},
	ToneHeartfelt: {
		ambient: []string{"Near-silence with soft room tone"},
		effects: []string{"Single soft chime on the emotional beat"},
		music:   []string{"Solo piano variation of the main theme"},
	},
	ToneHopeful: {
		ambient: []string{"Dawn chorus and light wind"},
		effects: []string{"Twinkle shimmer on the end-card tease"},
		music:   []string{"Uplifting strings swelling into the full theme"},
	},
	ToneTriumphant: {
		ambient: []string{"Clearing sky with fading wind"},
		effects: []string{"Magical energy burst", "Crowd-style cheer sweetener"},
		music:   []string{"Full orchestral hero theme with choir"},
	},
}

// BuildSound collects cues for every distinct tone in script order. The
// setting's ambience leads the ambient list.
func BuildSound(f Features, acts []Act) SoundDesign {
	var ambient, effects, music []string
	if f.Setting.Ambient != "" {
		ambient = append(ambient, f.Setting.Ambient)
	}
	for _, tone := range distinctTones(acts) {
		cues, ok := toneSound[tone]
		if !ok {
			continue
		}
		ambient = append(ambient, cues.ambient...)
		effects = append(effects, cues.effects...)
		music = append(music, cues.music...)
	}

	s := SoundDesign{
		Ambient: dedupe(ambient),
		Effects: dedupe(effects),
		Music:   dedupe(music),
	}
	if len(s.Ambient) == 0 {
		s.Ambient = []string{"Soft neutral room tone"}
	}
	if len(s.Effects) == 0 {
		s.Effects = []string{"Subtle whoosh transitions between scenes"}
	}
	if len(s.Music) == 0 {
		s.Music = []string{"Gentle orchestral underscore"}
	}
	return s
}

func distinctTones(acts []Act) []string {
	var out []string
	seen := make(map[string]bool)
	for _, sc := range flattenScenes(acts) {
		if seen[sc.EmotionalTone] {
			continue
		}
		seen[sc.EmotionalTone] = true
		out = append(out, sc.EmotionalTone)
	}
	return out
}
