package blueprint

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultIdea replaces an empty or whitespace-only idea.
const DefaultIdea = "Create a superhero story where a father saves his family from a swirling storm of forgotten memories."

// MaxIdeaRunes bounds the normalized idea length.
const MaxIdeaRunes = 280

// Features is what the parser extracts from an idea. Every field is always
// populated; unmatched parts come from the primary theme's defaults.
type Features struct {
	Idea      string
	Defaulted bool
	Themes    []Theme
	Hero      Character
	Threat    Character
	Ally      Character
	Setting   Setting
}

// Primary returns the highest ranked theme.
func (f Features) Primary() Theme {
	return f.Themes[0]
}

// Cast returns the three speaking characters in fixed order.
func (f Features) Cast() []Character {
	return []Character{f.Hero, f.Threat, f.Ally}
}

// ParseIdea normalizes the idea and matches it against the keyword tables.
func ParseIdea(idea string) Features {
	f := Features{Idea: NormalizeIdea(idea)}
	if f.Idea == "" {
		f.Idea = DefaultIdea
		f.Defaulted = true
	}

	tokens := tokenize(f.Idea)
	f.Themes = rankThemes(tokens)
	rule := themeRules[f.Primary()]

	heroKey, allyKey := matchCast(tokens)
	if heroKey == "" {
		heroKey = rule.defaultHero
	}
	if allyKey == "" || allyKey == heroKey {
		allyKey = pickAlly(rule, heroKey)
	}
	f.Hero = castByKey[heroKey]
	f.Hero.Role = RoleProtagonist
	f.Ally = castByKey[allyKey]
	f.Ally.Role = RoleSupporting

	threatKey := rule.defaultThreat
	if i, ok := firstMatch(tokens, threatIndex); ok {
		threatKey = threatTable[i].key
	}
	f.Threat = threatByKey[threatKey]
	f.Threat.Role = RoleThreat

	f.Setting = settingByKey[rule.defaultSetting]
	if i, ok := firstMatch(tokens, settingIndex); ok {
		f.Setting = settingTable[i].setting
	}

	return f
}

// NormalizeIdea trims, collapses whitespace and truncates the idea to
// MaxIdeaRunes, cutting at the last word boundary that fits. Invalid UTF-8
// is replaced with U+FFFD so the idea survives encoding unchanged.
func NormalizeIdea(idea string) string {
	s := strings.Join(strings.Fields(strings.ToValidUTF8(idea, "\uFFFD")), " ")
	r := []rune(s)
	if len(r) <= MaxIdeaRunes {
		return s
	}
	cut := string(r[:MaxIdeaRunes])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:-")
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// lookupToken resolves a token against an index, retrying without a
// trailing plural "s".
func lookupToken[V any](idx map[string]V, tok string) (V, bool) {
	if v, ok := idx[tok]; ok {
		return v, true
	}
	if len(tok) > 3 && strings.HasSuffix(tok, "s") {
		v, ok := idx[tok[:len(tok)-1]]
		return v, ok
	}
	var zero V
	return zero, false
}

func firstMatch(tokens []string, idx map[string]int) (int, bool) {
	for _, tok := range tokens {
		if i, ok := lookupToken(idx, tok); ok {
			return i, true
		}
	}
	return 0, false
}

// matchCast returns the first two distinct cast entries in token order.
func matchCast(tokens []string) (hero, ally string) {
	for _, tok := range tokens {
		i, ok := lookupToken(castIndex, tok)
		if !ok {
			continue
		}
		key := castTable[i].key
		switch {
		case hero == "":
			hero = key
		case key != hero:
			return hero, key
		}
	}
	return hero, ""
}

func pickAlly(rule themeRule, heroKey string) string {
	for _, k := range rule.defaultAllies {
		if k != heroKey {
			return k
		}
	}
	if heroKey == defaultAlly {
		return "kid"
	}
	return defaultAlly
}

// rankThemes orders matched themes by hit count, then by themePriority.
func rankThemes(tokens []string) []Theme {
	hits := make(map[Theme]int)
	for _, tok := range tokens {
		themes, _ := lookupToken(themeIndex, tok)
		for _, t := range themes {
			hits[t]++
		}
	}
	if len(hits) == 0 {
		return append([]Theme(nil), fallbackThemes...)
	}

	rank := make(map[Theme]int, len(themePriority))
	for i, t := range themePriority {
		rank[t] = i
	}
	out := make([]Theme, 0, len(hits))
	for t := range hits {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if hits[out[i]] != hits[out[j]] {
			return hits[out[i]] > hits[out[j]]
		}
		return rank[out[i]] < rank[out[j]]
	})
	return out
}
