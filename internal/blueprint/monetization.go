package blueprint

import "fmt"

// AdSafeSeconds is the ad-free window at the start of the runtime.
const AdSafeSeconds = 60

var complianceChecklist = []string{
	"Mark the video as Made for Kids and confirm the audience setting before publishing",
	"No ad breaks inside the first minute or during the climax rescue scene",
	"No real-world violence, weapons or injury; peril stays fantastical and resolves safely",
	"No scary imagery held longer than a few seconds; every tense beat ends with reassurance",
	"No product placement, brand mentions or calls to purchase",
	"No requests for personal information, comments or off-platform links aimed at children",
	"Flashing and strobe effects kept under three flashes per second",
	"Captions and clear audio mix for accessibility",
	"Thumbnail and title accurately reflect the content with no misleading clickbait",
}

// PlanMonetization places a mid-roll break on every act boundary that falls
// after the ad-safe intro and before the end of the runtime.
func PlanMonetization(acts []Act) Monetization {
	m := Monetization{
		AdSafeIntro: fmt.Sprintf("%s–%s: ad-free cold open, no interruptions until the hook has landed",
			FormatTimecode(0), FormatTimecode(AdSafeSeconds)),
		Compliance: append([]string(nil), complianceChecklist...),
	}

	for i := 1; i < len(acts); i++ {
		at, err := ParseTimecode(acts[i].StartTime)
		if err != nil {
			continue
		}
		if at <= AdSafeSeconds || at >= RuntimeSeconds {
			continue
		}
		m.MidRollMoments = append(m.MidRollMoments, MidRollMoment{
			Time:    acts[i].StartTime,
			Context: breakContext(acts[i-1], acts[i]),
		})
	}
	return m
}

func breakContext(prev, next Act) string {
	if len(prev.Scenes) == 0 {
		return fmt.Sprintf("Between %s and %s", prev.Title, next.Title)
	}
	sc := prev.Scenes[len(prev.Scenes)-1]
	return fmt.Sprintf("After the %q cliffhanger that closes %s, before %s begins", sc.Title, prev.Title, next.Title)
}

var copyrightRules = []string{
	"All characters, names and designs are original; no resemblance to existing franchises or mascots",
	"Music is original or licensed royalty-free with documented licenses kept on file",
	"Sound effects come from royalty-free libraries or are recorded in-house",
	"No copyrighted songs, lyrics, melodies or catchphrases, even briefly",
	"No logos, trademarks or recognizable brands visible in any frame",
	"AI-generated visuals are prompted without naming living artists or studios",
	"Voice performances are original; no impersonation of real actors or characters",
	"Any stock footage or imagery is cleared for commercial use on YouTube",
}

// CopyrightRules returns the content-safety rules attached to every
// blueprint. The slice is a fresh copy.
func CopyrightRules() []string {
	return append([]string(nil), copyrightRules...)
}
