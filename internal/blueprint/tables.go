package blueprint

// Lookup tables driving the parser and the rule-based stages. Order inside
// each table is significant: the first matching entry wins.

// Theme is an internal category label derived from the idea.
type Theme string

const (
	ThemeFamily     Theme = "family"
	ThemeFriendship Theme = "friendship"
	ThemeSuperhero  Theme = "superhero"
	ThemePeril      Theme = "peril"
	ThemeMystery    Theme = "mystery"
	ThemeFantasy    Theme = "fantasy"
	ThemeSpace      Theme = "space"
	ThemeNature     Theme = "nature"
	ThemeAdventure  Theme = "adventure"
)

// Role is a character's narrative function in the cast.
type Role string

const (
	RoleProtagonist Role = "protagonist"
	RoleThreat      Role = "threat"
	RoleSupporting  Role = "supporting"
)

// Character is one member of the fixed three-person cast.
type Character struct {
	Name       string
	Role       Role
	Gender     string
	AgeTone    string
	Appearance string
}

// Setting is the world the story happens in.
type Setting struct {
	Name    string
	Ambient string
}

type characterEntry struct {
	key       string
	keywords  []string
	character Character
}

type settingEntry struct {
	key      string
	keywords []string
	setting  Setting
}

type themeEntry struct {
	theme    Theme
	keywords []string
}

// themePriority breaks ties between equally matched themes.
var themePriority = []Theme{
	ThemeFamily,
	ThemeFriendship,
	ThemeSuperhero,
	ThemePeril,
	ThemeMystery,
	ThemeFantasy,
	ThemeSpace,
	ThemeNature,
	ThemeAdventure,
}

// fallbackThemes is used when the idea matches no theme keyword.
var fallbackThemes = []Theme{ThemeAdventure, ThemeFamily}

var themeTable = []themeEntry{
	{ThemeFamily, []string{"family", "father", "dad", "daddy", "mother", "mom", "mum", "mommy", "parent", "brother", "sister", "grandma", "grandpa", "grandmother", "grandfather", "son", "daughter", "baby", "kid", "home"}},
	{ThemeFriendship, []string{"friend", "friendship", "lonely", "alone", "together", "kindness", "kind", "share", "sharing", "teamwork", "buddy", "belong"}},
	{ThemeSuperhero, []string{"superhero", "hero", "power", "cape", "save", "rescue", "super", "mask", "sidekick"}},
	{ThemePeril, []string{"storm", "flood", "fire", "danger", "monster", "villain", "hurricane", "tornado", "volcano", "trapped", "escape", "blizzard", "swirling"}},
	{ThemeMystery, []string{"mystery", "secret", "memory", "memories", "forgotten", "forget", "lost", "clue", "hidden", "puzzle", "riddle"}},
	{ThemeFantasy, []string{"dragon", "magic", "wizard", "castle", "princess", "unicorn", "fairy", "spell", "kingdom", "enchanted", "potion"}},
	{ThemeSpace, []string{"space", "planet", "rocket", "astronaut", "moon", "star", "galaxy", "alien", "robot", "spaceship"}},
	{ThemeNature, []string{"forest", "ocean", "animal", "puppy", "dog", "cat", "kitten", "bear", "bunny", "rabbit", "tree", "garden", "river", "sea"}},
	{ThemeAdventure, []string{"adventure", "journey", "quest", "explore", "treasure", "map", "discover", "voyage"}},
}

// castTable holds protagonists and supporting characters. The role is
// assigned at parse time.
var castTable = []characterEntry{
	{"dad", []string{"father", "dad", "daddy", "papa"}, Character{Name: "Dad", Gender: "male", AgeTone: "warm mid-thirties baritone", Appearance: "tall dad in a patched red cape over a flannel shirt, determined eyes"}},
	{"mom", []string{"mother", "mom", "mum", "mommy", "mama"}, Character{Name: "Mom", Gender: "female", AgeTone: "bright early-thirties alto", Appearance: "quick-witted mom in a teal rain jacket, hair tied back, toolbelt at her hip"}},
	{"grandma", []string{"grandma", "grandmother", "granny", "nana"}, Character{Name: "Grandma", Gender: "female", AgeTone: "gentle seventies storyteller", Appearance: "silver-haired grandma with round glasses and a knitted star scarf"}},
	{"grandpa", []string{"grandpa", "grandfather", "grandad"}, Character{Name: "Grandpa", Gender: "male", AgeTone: "gravelly seventies chuckle", Appearance: "grandpa in suspenders with a carved walking stick and a twinkle in his eye"}},
	{"kid", []string{"kid", "child", "boy", "girl", "son", "daughter", "kiddo"}, Character{Name: "Pip", Gender: "neutral", AgeTone: "curious seven-year-old", Appearance: "small kid in yellow rain boots and an oversized hoodie, freckles, gap-toothed grin"}},
	{"brother", []string{"brother"}, Character{Name: "Big Brother Theo", Gender: "male", AgeTone: "eager twelve-year-old", Appearance: "lanky pre-teen with a backwards cap and a backpack full of gadgets"}},
	{"sister", []string{"sister"}, Character{Name: "Big Sister June", Gender: "female", AgeTone: "confident eleven-year-old", Appearance: "pre-teen with braided pigtails, star stickers on her sneakers"}},
	{"dragon", []string{"dragon"}, Character{Name: "Ember the Dragon", Gender: "male", AgeTone: "deep gentle elder rumble", Appearance: "towering emerald dragon with soft amber eyes and scorched, friendly wings"}},
	{"hero", []string{"hero", "heroine", "superheroine"}, Character{Name: "Captain Spark", Gender: "female", AgeTone: "bold heroic late twenties", Appearance: "hero in a lightning-blue suit with a glowing chest emblem and flowing cape"}},
	{"princess", []string{"princess", "prince"}, Character{Name: "Princess Luna", Gender: "female", AgeTone: "kind teenage sparkle", Appearance: "princess in a moon-silver cloak with muddy adventure boots"}},
	{"robot", []string{"robot", "android"}, Character{Name: "Bolt the Robot", Gender: "neutral", AgeTone: "chirpy synthetic youngster", Appearance: "round copper robot with blinking antenna lights and mismatched bolts"}},
	{"puppy", []string{"puppy", "dog"}, Character{Name: "Biscuit the Puppy", Gender: "male", AgeTone: "bouncy puppy yips", Appearance: "floppy-eared golden puppy with a red bandana"}},
	{"kitten", []string{"cat", "kitten"}, Character{Name: "Whiskers", Gender: "female", AgeTone: "sly purring youngster", Appearance: "striped orange kitten with one white paw"}},
	{"astronaut", []string{"astronaut", "spaceman"}, Character{Name: "Astro Ava", Gender: "female", AgeTone: "calm confident thirties", Appearance: "astronaut in a scuffed white suit with a sticker-covered helmet"}},
	{"teacher", []string{"teacher"}, Character{Name: "Ms. Rivera", Gender: "female", AgeTone: "encouraging forties", Appearance: "teacher with a cardigan full of pockets and a chalk-dusted smile"}},
	{"wizard", []string{"wizard", "witch", "sorcerer"}, Character{Name: "Wizard Orrin", Gender: "male", AgeTone: "whimsical ancient wheeze", Appearance: "wizard with a patchwork robe and a beard full of fireflies"}},
	{"bear", []string{"bear"}, Character{Name: "Bruno the Bear", Gender: "male", AgeTone: "slow cuddly bass", Appearance: "big brown bear with a honey-stained scarf"}},
	{"bunny", []string{"bunny", "rabbit"}, Character{Name: "Hop", Gender: "female", AgeTone: "speedy squeaky youngster", Appearance: "white bunny with one flopped ear and a daisy tucked behind it"}},
	{"owl", []string{"owl"}, Character{Name: "Hoot the Owl", Gender: "neutral", AgeTone: "wise soft-spoken elder", Appearance: "round grey owl with spectacles perched on a tiny beak"}},
}

var threatTable = []characterEntry{
	{"storm", []string{"storm", "hurricane", "tornado", "thunder", "lightning", "swirling"}, Character{Name: "The Storm", Gender: "none (elemental force)", AgeTone: "ancient howling presence", Appearance: "towering spiral of violet cloud with crackling eyes of lightning"}},
	{"water", []string{"flood", "wave", "tsunami", "rain"}, Character{Name: "The Rising Water", Gender: "none (elemental force)", AgeTone: "restless gurgling rumble", Appearance: "churning wall of grey-green water with foam like grasping hands"}},
	{"fire", []string{"fire", "wildfire", "volcano", "lava", "flame"}, Character{Name: "The Wildfire", Gender: "none (elemental force)", AgeTone: "crackling hungry hiss", Appearance: "wind-whipped wall of orange flame with ember sparks"}},
	{"fog", []string{"memory", "memories", "forgotten", "forget"}, Character{Name: "The Forgetting Fog", Gender: "none (elemental force)", AgeTone: "whispering drowsy murmur", Appearance: "pale silver fog that erases colors wherever it drifts"}},
	{"monster", []string{"monster", "beast", "creature"}, Character{Name: "The Monster", Gender: "none (creature)", AgeTone: "booming grumbly growl", Appearance: "shaggy purple monster, more clumsy than cruel, with tiny horns"}},
	{"shadow", []string{"shadow", "darkness", "dark", "night", "nightmare"}, Character{Name: "The Shadow", Gender: "none (living shadow)", AgeTone: "hollow echoing whisper", Appearance: "long inky shape that stretches from corner to corner"}},
	{"ghost", []string{"ghost", "spirit", "haunted"}, Character{Name: "The Ghost", Gender: "none (spirit)", AgeTone: "airy lonely wail", Appearance: "translucent little ghost trailing a tattered sheet"}},
	{"villain", []string{"villain", "bully", "thief"}, Character{Name: "Doctor Gloom", Gender: "male", AgeTone: "sneering theatrical baritone", Appearance: "villain in a storm-grey coat with a goggled helmet and a gadget gauntlet"}},
	{"ice", []string{"ice", "snow", "blizzard", "winter", "frozen"}, Character{Name: "The Blizzard", Gender: "none (elemental force)", AgeTone: "icy whistling sigh", Appearance: "swirling white wall of snow with frost-crystal eyes"}},
	{"meteor", []string{"asteroid", "meteor", "comet"}, Character{Name: "The Meteor", Gender: "none (cosmic force)", AgeTone: "deep rumbling roar", Appearance: "burning rock streaking through the sky with a comet tail"}},
	{"echo", []string{"lonely", "loneliness", "alone"}, Character{Name: "The Lonely Echo", Gender: "none (feeling)", AgeTone: "faint repeating whisper", Appearance: "cold blue hush that dims every nearby light"}},
}

var settingTable = []settingEntry{
	{"city", []string{"city", "town", "rooftop", "street"}, Setting{Name: "the rooftops of a glittering city", Ambient: "Distant city traffic hum with wind over rooftops"}},
	{"forest", []string{"forest", "woods", "jungle", "tree"}, Setting{Name: "an ancient whispering forest", Ambient: "Rustling leaves, creaking branches and faraway birdsong"}},
	{"shore", []string{"ocean", "sea", "beach", "island", "shore"}, Setting{Name: "a windswept island shore", Ambient: "Rolling surf, gull calls and a steady sea breeze"}},
	{"space", []string{"space", "planet", "moon", "star", "galaxy", "spaceship", "rocket"}, Setting{Name: "a glowing nebula far from Earth", Ambient: "Low cosmic drone with soft sparkling shimmers"}},
	{"school", []string{"school", "classroom", "playground"}, Setting{Name: "a cheerful neighborhood school", Ambient: "Muffled playground chatter and a ticking hallway clock"}},
	{"castle", []string{"castle", "kingdom", "palace", "tower"}, Setting{Name: "a cliff-top castle kingdom", Ambient: "Fluttering banners, echoing stone halls and far-off bells"}},
	{"mountain", []string{"mountain", "cave", "valley", "cliff"}, Setting{Name: "a misty mountain valley", Ambient: "Echoing wind through stone and a trickling stream"}},
	{"farm", []string{"farm", "barn", "meadow"}, Setting{Name: "a sunny hillside farm", Ambient: "Chirping crickets, swaying grass and a creaky windmill"}},
	{"village", []string{"village", "hometown", "neighborhood"}, Setting{Name: "a lantern-lit village", Ambient: "Soft chimes, crackling lanterns and quiet footsteps"}},
	{"sky", []string{"sky", "cloud", "clouds"}, Setting{Name: "a sea of clouds high above the world", Ambient: "Airy whoosh of high-altitude wind"}},
	{"home", []string{"home", "house", "bedroom", "backyard"}, Setting{Name: "a cozy family home", Ambient: "Ticking kitchen clock, rain on windows and a creaking porch"}},
}

// themeRule holds the strategy phrases and cast/setting defaults for one
// theme. Phrases may contain {hero}, {threat}, {ally} and {setting}.
type themeRule struct {
	audience       string
	triggers       []string
	retention      []string
	trending       []string
	defaultHero    string
	defaultAllies  []string
	defaultThreat  string
	defaultSetting string
}

var themeRules = map[Theme]themeRule{
	ThemeFamily: {
		audience:       "Ages 4–9 and co-viewing parents who love family-peril stories with a safe, happy ending",
		triggers:       []string{"Fear of losing a loved one, resolved with reassurance", "Pride in a parent who never gives up", "Warm sense of home and belonging"},
		retention:      []string{"Family stakes established in the first 15 seconds", "Callback to a family ritual seeded in the hook and paid off in the finale"},
		trending:       []string{"Family-bond stories are top performers in co-viewing households", "Parents actively search for emotionally safe family adventures"},
		defaultHero:    "dad",
		defaultAllies:  []string{"kid", "grandma"},
		defaultThreat:  "storm",
		defaultSetting: "home",
	},
	ThemeFriendship: {
		audience:       "Ages 4–8 and co-viewing parents looking for gentle friendship and kindness stories",
		triggers:       []string{"Loneliness turning into belonging", "Joy of being truly seen by a friend", "Courage to reach out first"},
		retention:      []string{"Friendship question planted in the first scene and answered only in the finale", "Small kindness beats every two minutes to reward attention"},
		trending:       []string{"Social-emotional learning content is rising fast on kids' platforms", "Friendship arcs are highly shareable among parents and teachers"},
		defaultHero:    "kid",
		defaultAllies:  []string{"owl", "puppy"},
		defaultThreat:  "echo",
		defaultSetting: "village",
	},
	ThemeSuperhero: {
		audience:       "Ages 5–10 who love superhero action, plus nostalgic co-viewing parents",
		triggers:       []string{"Thrill of hidden powers awakening", "Heroic sacrifice without real harm", "Triumph when {hero} rises again"},
		retention:      []string{"Power reveal teased in the hook but withheld until the climax", "Cliffhanger at each act break"},
		trending:       []string{"Superhero origin formats consistently rank in kids' trending feeds", "Everyday-hero twists feel fresh against big-franchise fatigue"},
		defaultHero:    "hero",
		defaultAllies:  []string{"kid", "robot"},
		defaultThreat:  "villain",
		defaultSetting: "city",
	},
	ThemePeril: {
		audience:       "Ages 5–9 who enjoy safe, thrilling rescue adventures",
		triggers:       []string{"Suspense as {threat} closes in", "Relief at every near-miss", "Awe at nature's power"},
		retention:      []string{"Countdown deadline introduced in the hook", "Escalating danger at every act break"},
		trending:       []string{"Weather and rescue themes drive high watch time in family content", "Big visual set-pieces make striking thumbnails"},
		defaultHero:    "mom",
		defaultAllies:  []string{"kid", "puppy"},
		defaultThreat:  "storm",
		defaultSetting: "city",
	},
	ThemeMystery: {
		audience:       "Ages 6–10 who love puzzles and gentle mysteries",
		triggers:       []string{"Curiosity about what was forgotten", "Satisfaction of solving the clue", "Bittersweet nostalgia"},
		retention:      []string{"A visible clue hidden in every scene for viewers to spot", "The central question restated before each act break"},
		trending:       []string{"Interactive 'spot the clue' content boosts comments and rewatches", "Memory and mystery hooks perform well in autoplay"},
		defaultHero:    "sister",
		defaultAllies:  []string{"owl", "kid"},
		defaultThreat:  "fog",
		defaultSetting: "village",
	},
	ThemeFantasy: {
		audience:       "Ages 4–9 who love dragons, magic and enchanted kingdoms",
		triggers:       []string{"Wonder at magical creatures", "Bravery in facing the unknown", "Delight when magic is used kindly"},
		retention:      []string{"A new magical rule revealed every act", "Creature reveal staged as a slow build"},
		trending:       []string{"Dragons and magic are evergreen top searches for kids", "Fantasy visuals suit AI-generated cinematic imagery"},
		defaultHero:    "dragon",
		defaultAllies:  []string{"kid", "wizard"},
		defaultThreat:  "shadow",
		defaultSetting: "castle",
	},
	ThemeSpace: {
		audience:       "Ages 5–10 fascinated by rockets, planets and robots",
		triggers:       []string{"Awe at the scale of the universe", "Excitement of a countdown launch", "Teamwork under pressure"},
		retention:      []string{"Mission countdown displayed on screen", "Each act lands on a new planet or discovery"},
		trending:       []string{"Space content benefits from real-world launch news cycles", "STEM-friendly stories are recommended to parents and schools"},
		defaultHero:    "astronaut",
		defaultAllies:  []string{"robot", "kid"},
		defaultThreat:  "meteor",
		defaultSetting: "space",
	},
	ThemeNature: {
		audience:       "Ages 3–8 who love animals and the outdoors",
		triggers:       []string{"Tenderness toward animals", "Protectiveness over a small creature", "Calm wonder at nature"},
		retention:      []string{"Cute animal moment every ninety seconds", "Weather shift signals each new act"},
		trending:       []string{"Animal-led stories have strong rewatch rates with toddlers", "Nature settings make calm, bedtime-friendly content"},
		defaultHero:    "bunny",
		defaultAllies:  []string{"bear", "owl"},
		defaultThreat:  "fire",
		defaultSetting: "forest",
	},
	ThemeAdventure: {
		audience:       "Ages 4–9 and co-viewing families who enjoy big-hearted adventures",
		triggers:       []string{"Excitement of the unknown road ahead", "Courage growing step by step", "Joy of coming home changed"},
		retention:      []string{"Treasure-map style progress marker between acts", "Each scene ends on a question"},
		trending:       []string{"Quest structures map naturally to chapter markers and long watch sessions", "Adventure stories travel well across languages and regions"},
		defaultHero:    "kid",
		defaultAllies:  []string{"owl", "puppy"},
		defaultThreat:  "shadow",
		defaultSetting: "forest",
	},
}

// Base phrases appended after the theme-driven ones so no list is empty.
var (
	baseTriggers  = []string{"Hope that {hero} and {ally} will be okay", "Cheering moments that invite viewers to shout along"}
	baseRetention = []string{"Pattern interrupt every 20–30 seconds with a camera, sound or color shift", "Open loop planted before each mid-roll break", "Recap line at the start of every act for late joiners"}
	baseTrending  = []string{"15-minute runtime qualifies for mid-roll ads and long-session recommendations", "Clear hero-versus-{threat} premise reads instantly in thumbnails"}
)

// defaultAlly is used when no other cast member is available.
const defaultAlly = "owl"

var (
	castIndex    = indexCharacters(castTable)
	threatIndex  = indexCharacters(threatTable)
	settingIndex = indexSettings(settingTable)
	themeIndex   = indexThemes(themeTable)

	castByKey    = keyCharacters(castTable)
	threatByKey  = keyCharacters(threatTable)
	settingByKey = keySettings(settingTable)
)

func indexCharacters(entries []characterEntry) map[string]int {
	idx := make(map[string]int)
	for i, e := range entries {
		for _, kw := range e.keywords {
			if _, ok := idx[kw]; !ok {
				idx[kw] = i
			}
		}
	}
	return idx
}

func keyCharacters(entries []characterEntry) map[string]Character {
	out := make(map[string]Character, len(entries))
	for _, e := range entries {
		out[e.key] = e.character
	}
	return out
}

func indexSettings(entries []settingEntry) map[string]int {
	idx := make(map[string]int)
	for i, e := range entries {
		for _, kw := range e.keywords {
			if _, ok := idx[kw]; !ok {
				idx[kw] = i
			}
		}
	}
	return idx
}

func keySettings(entries []settingEntry) map[string]Setting {
	out := make(map[string]Setting, len(entries))
	for _, e := range entries {
		out[e.key] = e.setting
	}
	return out
}

func indexThemes(entries []themeEntry) map[string][]Theme {
	idx := make(map[string][]Theme)
	for _, e := range entries {
		for _, kw := range e.keywords {
			idx[kw] = append(idx[kw], e.theme)
		}
	}
	return idx
}

// ThemeKeywords returns the keyword list for each theme in priority order.
func ThemeKeywords() map[Theme][]string {
	out := make(map[Theme][]string, len(themeTable))
	for _, e := range themeTable {
		out[e.theme] = append([]string(nil), e.keywords...)
	}
	return out
}

// ThemeOrder returns every theme tag in tie-break priority order.
func ThemeOrder() []Theme {
	return append([]Theme(nil), themePriority...)
}
