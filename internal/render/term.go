package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/apresai/vidblueprint/internal/blueprint"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#7D56F4")).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)

	actStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BE9FD")).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#555555")).
			Padding(0, 1)
)

// Terminal renders a styled, human-readable view. A width of zero uses 80
// columns.
func Terminal(bp *blueprint.Blueprint, width int) string {
	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width - 4)

	var b strings.Builder
	b.WriteString(bannerStyle.Render("VIDEO BLUEPRINT · "+bp.Runtime) + "\n")
	b.WriteString(wrap.Render(dimStyle.Render(bp.Idea)) + "\n")

	b.WriteString(sectionStyle.Render(headStrategy) + "\n")
	b.WriteString(field("Audience", bp.Strategy.TargetAudience, wrap))
	b.WriteString(list("Emotional triggers", bp.Strategy.EmotionalTriggers, wrap))
	b.WriteString(list("Retention strategy", bp.Strategy.RetentionStrategy, wrap))
	b.WriteString(list("Why this will trend", bp.Strategy.TrendingReasons, wrap))

	b.WriteString(sectionStyle.Render(headScript) + "\n")
	for _, act := range bp.Script {
		b.WriteString(actStyle.Render(strings.ToUpper(act.Title)) + " " + timeStyle.Render(act.StartTime) + "\n")
		b.WriteString(wrap.Render(dimStyle.Render(act.Focus)) + "\n")
		for _, sc := range act.Scenes {
			var card strings.Builder
			fmt.Fprintf(&card, "%s %s  %s\n", timeStyle.Render(sc.Timestamp), labelStyle.Render(sc.Title),
				dimStyle.Render(fmt.Sprintf("%s · %s · %s", sc.Duration, sc.EmotionalTone, sc.Pacing)))
			for _, beat := range sc.Beats {
				fmt.Fprintf(&card, "• %s\n", beat)
			}
			for _, d := range sc.Dialogue {
				fmt.Fprintf(&card, "%s %s\n", speakerStyle.Render(d.Speaker+":"), d.Line)
			}
			b.WriteString(cardStyle.Width(width-6).Render(strings.TrimRight(card.String(), "\n")) + "\n")
		}
	}

	b.WriteString(sectionStyle.Render(headVisuals) + "\n")
	for _, v := range bp.Visuals {
		b.WriteString(labelStyle.Render(v.SceneID+" · "+v.Title) + "\n")
		b.WriteString(wrap.Render(fmt.Sprintf("Camera: %s\nLighting: %s\nEnvironment: %s\nAction: %s",
			v.Camera, v.Lighting, v.Environment, v.Action)) + "\n")
	}

	b.WriteString(sectionStyle.Render(headVoices) + "\n")
	for _, v := range bp.Voices {
		b.WriteString(speakerStyle.Render(v.Character) + dimStyle.Render(fmt.Sprintf(" (%s, %s)", v.Gender, v.AgeTone)) + "\n")
		b.WriteString(wrap.Render(fmt.Sprintf("%s. %s. Tempo: %s", v.EmotionPalette, v.Style, v.Tempo)) + "\n")
	}

	b.WriteString(sectionStyle.Render(headSound) + "\n")
	b.WriteString(list("Ambient", bp.Sound.Ambient, wrap))
	b.WriteString(list("Action effects", bp.Sound.Effects, wrap))
	b.WriteString(list("Music direction", bp.Sound.Music, wrap))

	b.WriteString(sectionStyle.Render(headRetention) + "\n")
	b.WriteString(list("Hook lines", bp.RetentionBoosters.HookLines, wrap))
	b.WriteString(list("Suspense moments", bp.RetentionBoosters.SuspenseMoments, wrap))
	b.WriteString(list("Emotional dialogues", bp.RetentionBoosters.EmotionalDialogues, wrap))
	b.WriteString(list("Open loops", bp.RetentionBoosters.OpenLoops, wrap))

	b.WriteString(sectionStyle.Render(headMonetization) + "\n")
	b.WriteString(field("Ad-safe timing", bp.Monetization.AdSafeIntro, wrap))
	moments := make([]string, len(bp.Monetization.MidRollMoments))
	for i, m := range bp.Monetization.MidRollMoments {
		moments[i] = timeStyle.Render(m.Time) + " " + m.Context
	}
	b.WriteString(list("Mid-roll placement points", moments, wrap))
	b.WriteString(list("Child-safe compliance", bp.Monetization.Compliance, wrap))

	b.WriteString(sectionStyle.Render(headCopyright) + "\n")
	b.WriteString(list("", bp.Copyright, wrap))
	return b.String()
}

func field(label, value string, wrap lipgloss.Style) string {
	return wrap.Render(labelStyle.Render(label+": ")+value) + "\n"
}

func list(label string, items []string, wrap lipgloss.Style) string {
	var b strings.Builder
	if label != "" {
		b.WriteString(labelStyle.Render(label) + "\n")
	}
	for _, it := range items {
		b.WriteString(wrap.Render("  • "+it) + "\n")
	}
	return b.String()
}
