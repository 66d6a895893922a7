package blueprint

import (
	"fmt"
	"strings"
)

const (
	// RuntimeSeconds is the target total runtime (15:00).
	RuntimeSeconds = 15 * 60

	// SceneTargetSeconds is the nominal length of one scene; the last scene
	// of each act absorbs the remainder.
	SceneTargetSeconds = 75
)

// Act titles double as the narrative role of the act.
const (
	ActHook         = "Hook"
	ActRisingAction = "Rising Action"
	ActClimax       = "Climax"
	ActResolution   = "Resolution"
)

// Emotional tones used by scene templates.
const (
	ToneUrgent     = "urgent"
	ToneTense      = "tense"
	ToneCurious    = "curious"
	TonePlayful    = "playful"
	ToneWarm       = "warm"
	ToneHeartfelt  = "heartfelt"
	ToneHopeful    = "hopeful"
	ToneTriumphant = "triumphant"
)

type actSpec struct {
	title   string
	percent int
	focus   string
	scenes  []sceneTemplate
}

type lineTemplate struct {
	role Role
	text string
}

type sceneTemplate struct {
	title  string
	tone   string
	pacing string
	beats  []string
	lines  []lineTemplate
}

// actLayout partitions the runtime. Percentages sum to 100.
var actLayout = []actSpec{
	{
		title:   ActHook,
		percent: 10,
		focus:   "Instant danger: {threat} puts {ally} at risk",
		scenes: []sceneTemplate{
			{
				title:  "{threat} Strikes",
				tone:   ToneUrgent,
				pacing: "rapid-fire",
				beats: []string{
					"{threat} erupts without warning, scattering everything in its path",
					"{hero} spots {ally} stranded right where it is heading",
					"Freeze-frame title card: can {hero} get there in time?",
				},
				lines: []lineTemplate{
					{RoleThreat, "Everything you love will be mine before sunset!"},
					{RoleSupporting, "{hero}! Help! It's getting closer!"},
					{RoleProtagonist, "Hold on, {ally}! I'm coming, no matter what!"},
				},
			},
		},
	},
	{
		title:   ActRisingAction,
		percent: 35,
		focus:   "World, stakes and a ticking clock as {threat} grows",
		scenes: []sceneTemplate{
			{
				title:  "A Normal Morning",
				tone:   ToneWarm,
				pacing: "steady",
				beats: []string{
					"Flashback to a cozy morning with {hero} and {ally} in {setting}",
					"{ally} shares a small wish that will matter in the finale",
					"A strange flicker on the horizon hints at {threat}",
				},
				lines: []lineTemplate{
					{RoleSupporting, "Promise we'll always find each other, okay?"},
					{RoleProtagonist, "Always. That's what we do."},
				},
			},
			{
				title:  "The Warning Signs",
				tone:   ToneCurious,
				pacing: "building",
				beats: []string{
					"{ally} finds the first clue that {threat} is on its way",
					"{hero} laughs it off until the ground begins to tremble",
					"A deadline appears: everything must be safe before sunset",
				},
				lines: []lineTemplate{
					{RoleSupporting, "Look! Something's wrong with the sky."},
					{RoleProtagonist, "It's probably nothing... right?"},
					{RoleThreat, "Tick... tock..."},
				},
			},
			{
				title:  "{threat} Arrives",
				tone:   ToneTense,
				pacing: "breathless",
				beats: []string{
					"{threat} sweeps across {setting} and pulls {hero} and {ally} apart",
					"{hero} tries the old, safe way and it fails",
					"Cliffhanger: {ally} disappears from view",
				},
				lines: []lineTemplate{
					{RoleThreat, "You can't hold on to everything!"},
					{RoleProtagonist, "{ally}! Where are you?"},
					{RoleSupporting, "I'm here! I can't see you!"},
				},
			},
			{
				title:  "The Long Way Around",
				tone:   TonePlayful,
				pacing: "building",
				beats: []string{
					"{hero} teams up with unlikely helpers to cross {setting}",
					"A funny failed attempt breaks the tension",
					"{hero} discovers the hidden strength {ally} always believed in",
				},
				lines: []lineTemplate{
					{RoleProtagonist, "Okay, new plan. A slightly less terrible plan."},
					{RoleSupporting, "You can do it! I know you can!"},
				},
			},
		},
	},
	{
		title:   ActClimax,
		percent: 35,
		focus:   "{hero} confronts {threat} to bring {ally} home",
		scenes: []sceneTemplate{
			{
				title:  "Into the Heart of {threat}",
				tone:   ToneUrgent,
				pacing: "breathless",
				beats: []string{
					"{hero} charges straight into {threat}",
					"Everything goes dark and loud as visibility drops to nothing",
					"{hero} hears {ally} humming the song from that morning",
				},
				lines: []lineTemplate{
					{RoleThreat, "Turn back! Nobody has ever made it this far!"},
					{RoleProtagonist, "Then I'll be the first."},
				},
			},
			{
				title:  "All Seems Lost",
				tone:   ToneTense,
				pacing: "slow-burn",
				beats: []string{
					"{threat} traps {hero} in a spiral with no way out",
					"{hero}'s strength flickers and fades",
					"Silence: the lowest moment of the story",
				},
				lines: []lineTemplate{
					{RoleThreat, "You see? You were never strong enough."},
					{RoleProtagonist, "Maybe not alone..."},
				},
			},
			{
				title:  "The Turning Point",
				tone:   ToneHeartfelt,
				pacing: "steady",
				beats: []string{
					"{hero} remembers the promise and finds the courage to keep going",
					"{ally} reaches out from the other side",
					"Together they discover the one weakness of {threat}",
				},
				lines: []lineTemplate{
					{RoleSupporting, "You promised we'd always find each other!"},
					{RoleProtagonist, "And I never break a promise. Take my hand!"},
				},
			},
			{
				title:  "The Big Rescue",
				tone:   ToneTriumphant,
				pacing: "soaring",
				beats: []string{
					"{hero} and {ally} turn the power of {threat} against itself",
					"{threat} shrinks, calms and finally fades away",
					"A burst of golden light floods {setting}",
				},
				lines: []lineTemplate{
					{RoleProtagonist, "Now, together!"},
					{RoleSupporting, "We did it! We really did it!"},
					{RoleThreat, "Nooo... so... bright..."},
				},
			},
		},
	},
	{
		title:   ActResolution,
		percent: 20,
		focus:   "Safety, warmth and the lesson learned",
		scenes: []sceneTemplate{
			{
				title:  "Safe at Last",
				tone:   ToneHeartfelt,
				pacing: "gentle",
				beats: []string{
					"{hero} and {ally} hug in the quiet after {threat}",
					"Color and light return to {setting}",
					"The small wish from the morning finally comes true",
				},
				lines: []lineTemplate{
					{RoleSupporting, "I knew you'd come. I always knew."},
					{RoleProtagonist, "Nothing in the world could keep me away from you."},
				},
			},
			{
				title:  "A Brighter Tomorrow",
				tone:   ToneHopeful,
				pacing: "gentle",
				beats: []string{
					"Everyone rebuilds {setting} together",
					"{hero} shares the lesson in one simple sentence",
					"End-card tease: a new adventure twinkles on the horizon",
				},
				lines: []lineTemplate{
					{RoleProtagonist, "Being brave just means showing up for the people you love."},
					{RoleSupporting, "So... what's our next adventure?"},
				},
			},
		},
	},
}

// BuildScript partitions the runtime into acts and scenes and fills each
// scene from its act's templates. Scene ids run across the whole script.
func BuildScript(f Features) []Act {
	fill := placeholders(f)
	speakers := map[Role]string{
		RoleProtagonist: f.Hero.Name,
		RoleThreat:      f.Threat.Name,
		RoleSupporting:  f.Ally.Name,
	}

	acts := make([]Act, 0, len(actLayout))
	elapsed := 0
	sceneNum := 0
	for i, spec := range actLayout {
		actLen := RuntimeSeconds * spec.percent / 100
		if i == len(actLayout)-1 {
			actLen = RuntimeSeconds - elapsed
		}

		act := Act{
			Title:     spec.title,
			StartTime: FormatTimecode(elapsed),
			Focus:     fill.Replace(spec.focus),
		}
		for j, dur := range splitAct(actLen) {
			sceneNum++
			tpl := spec.scenes[j%len(spec.scenes)]
			act.Scenes = append(act.Scenes, buildScene(tpl, fill, speakers, sceneNum, j/len(spec.scenes), elapsed, dur))
			elapsed += dur
		}
		acts = append(acts, act)
	}
	return acts
}

// splitAct divides an act into SceneTargetSeconds chunks with the remainder
// folded into the last scene.
func splitAct(actLen int) []int {
	n := actLen / SceneTargetSeconds
	if n < 1 {
		n = 1
	}
	out := make([]int, n)
	for i := range out {
		out[i] = SceneTargetSeconds
	}
	out[n-1] = actLen - SceneTargetSeconds*(n-1)
	return out
}

func buildScene(tpl sceneTemplate, fill *strings.Replacer, speakers map[Role]string, num, cycle, start, dur int) Scene {
	title := fill.Replace(tpl.title)
	if cycle > 0 {
		title = fmt.Sprintf("%s (Part %d)", title, cycle+1)
	}

	dialogue := make([]DialogueLine, len(tpl.lines))
	for i, l := range tpl.lines {
		dialogue[i] = DialogueLine{Speaker: speakers[l.role], Line: fill.Replace(l.text)}
	}

	return Scene{
		ID:            SceneID(num),
		Timestamp:     FormatTimecode(start),
		Duration:      FormatTimecode(dur),
		Title:         title,
		EmotionalTone: tpl.tone,
		Pacing:        tpl.pacing,
		Beats:         fillAll(fill, tpl.beats),
		Dialogue:      dialogue,
	}
}

// SceneID formats the script-wide scene ordinal.
func SceneID(n int) string {
	return fmt.Sprintf("scene-%02d", n)
}
