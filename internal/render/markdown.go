package render

import (
	"fmt"
	"strings"

	"github.com/apresai/vidblueprint/internal/blueprint"
)

// Section headings shared by the markdown and terminal views.
const (
	headStrategy     = "1. Viral Video Strategy"
	headScript       = "2. Full Cinematic Script"
	headVisuals      = "3. Scene-by-Scene Visual Prompts"
	headVoices       = "4. Character Voice Design"
	headSound        = "5. Sound Design (Copyright-Free)"
	headRetention    = "6. Viral Retention Boosters"
	headMonetization = "7. Monetization Optimization"
	headCopyright    = "8. Copyright Safety Rules"
)

// Markdown renders the blueprint as a production brief.
func Markdown(bp *blueprint.Blueprint) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Video Blueprint\n\n")
	fmt.Fprintf(&b, "> %s\n\n", bp.Idea)
	fmt.Fprintf(&b, "**Runtime:** %s  \n**Themes:** %s\n\n", bp.Runtime, strings.Join(bp.Themes, ", "))

	fmt.Fprintf(&b, "## %s\n\n", headStrategy)
	fmt.Fprintf(&b, "**Target audience:** %s\n\n", bp.Strategy.TargetAudience)
	mdList(&b, "Emotional triggers", bp.Strategy.EmotionalTriggers)
	mdList(&b, "Retention strategy", bp.Strategy.RetentionStrategy)
	mdList(&b, "Why this will trend", bp.Strategy.TrendingReasons)

	fmt.Fprintf(&b, "## %s (%s)\n\n", headScript, bp.Runtime)
	for _, act := range bp.Script {
		fmt.Fprintf(&b, "### %s (starts %s)\n\n", act.Title, act.StartTime)
		fmt.Fprintf(&b, "_Focus: %s_\n\n", act.Focus)
		for _, sc := range act.Scenes {
			fmt.Fprintf(&b, "#### [%s] %s · %s\n\n", sc.Timestamp, sc.Title, sc.ID)
			fmt.Fprintf(&b, "Duration %s · tone %s · pacing %s\n\n", sc.Duration, sc.EmotionalTone, sc.Pacing)
			for _, beat := range sc.Beats {
				fmt.Fprintf(&b, "- %s\n", beat)
			}
			b.WriteString("\n")
			for _, d := range sc.Dialogue {
				fmt.Fprintf(&b, "**%s:** %s  \n", d.Speaker, d.Line)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "## %s\n\n", headVisuals)
	for _, v := range bp.Visuals {
		fmt.Fprintf(&b, "### %s · %s\n\n", v.SceneID, v.Title)
		fmt.Fprintf(&b, "- **Characters:** %s\n", v.CharacterAppearance)
		fmt.Fprintf(&b, "- **Camera:** %s\n", v.Camera)
		fmt.Fprintf(&b, "- **Lighting:** %s\n", v.Lighting)
		fmt.Fprintf(&b, "- **Environment:** %s\n", v.Environment)
		fmt.Fprintf(&b, "- **Action:** %s\n\n", v.Action)
	}

	fmt.Fprintf(&b, "## %s\n\n", headVoices)
	b.WriteString("| Character | Gender | Age / tone | Emotion palette | Style | Tempo |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, v := range bp.Voices {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(v.Character), cell(v.Gender), cell(v.AgeTone), cell(v.EmotionPalette), cell(v.Style), cell(v.Tempo))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", headSound)
	mdList(&b, "Ambient", bp.Sound.Ambient)
	mdList(&b, "Action effects", bp.Sound.Effects)
	mdList(&b, "Music direction", bp.Sound.Music)

	fmt.Fprintf(&b, "## %s\n\n", headRetention)
	mdList(&b, "Hook lines", bp.RetentionBoosters.HookLines)
	mdList(&b, "Suspense moments", bp.RetentionBoosters.SuspenseMoments)
	mdList(&b, "Emotional dialogues", bp.RetentionBoosters.EmotionalDialogues)
	mdList(&b, "Open loops", bp.RetentionBoosters.OpenLoops)

	fmt.Fprintf(&b, "## %s\n\n", headMonetization)
	fmt.Fprintf(&b, "**Ad-safe timing:** %s\n\n", bp.Monetization.AdSafeIntro)
	b.WriteString("**Mid-roll placement points**\n\n")
	if len(bp.Monetization.MidRollMoments) == 0 {
		b.WriteString("- none\n")
	}
	for _, m := range bp.Monetization.MidRollMoments {
		fmt.Fprintf(&b, "- **%s** %s\n", m.Time, m.Context)
	}
	b.WriteString("\n")
	mdList(&b, "Child-safe compliance", bp.Monetization.Compliance)

	fmt.Fprintf(&b, "## %s\n\n", headCopyright)
	for _, r := range bp.Copyright {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	return b.String()
}

func mdList(b *strings.Builder, label string, items []string) {
	fmt.Fprintf(b, "**%s**\n\n", label)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

// cell escapes pipes so a value stays inside its table column.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
