package blueprint

import "strings"

// BuildStrategy maps the ranked themes to audience targeting and the three
// phrase lists. Lists are concatenated in theme rank order, de-duplicated
// and closed with the base phrases.
func BuildStrategy(f Features) Strategy {
	fill := placeholders(f)

	var triggers, retention, trending []string
	for _, t := range f.Themes {
		rule := themeRules[t]
		triggers = append(triggers, rule.triggers...)
		retention = append(retention, rule.retention...)
		trending = append(trending, rule.trending...)
	}
	triggers = append(triggers, baseTriggers...)
	retention = append(retention, baseRetention...)
	trending = append(trending, baseTrending...)

	return Strategy{
		TargetAudience:    themeRules[f.Primary()].audience,
		EmotionalTriggers: dedupe(fillAll(fill, triggers)),
		RetentionStrategy: dedupe(fillAll(fill, retention)),
		TrendingReasons:   dedupe(fillAll(fill, trending)),
	}
}

// placeholders substitutes cast and setting names into template phrases.
func placeholders(f Features) *strings.Replacer {
	return strings.NewReplacer(
		"{hero}", f.Hero.Name,
		"{threat}", f.Threat.Name,
		"{ally}", f.Ally.Name,
		"{setting}", f.Setting.Name,
	)
}

func fillAll(r *strings.Replacer, in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = r.Replace(s)
	}
	return out
}

// dedupe drops repeated entries, keeping the first occurrence.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
