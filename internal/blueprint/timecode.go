package blueprint

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTimecode renders a second count as mm:ss. Minutes are not wrapped
// into hours, so 3725 becomes "62:05".
func FormatTimecode(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseTimecode accepts "mm:ss" or a bare number of seconds.
func ParseTimecode(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	mm, ss, found := strings.Cut(s, ":")
	if !found {
		secs, err := strconv.Atoi(strings.TrimSuffix(s, "s"))
		if err != nil || secs < 0 {
			return 0, fmt.Errorf("invalid timecode %q", s)
		}
		return secs, nil
	}

	mins, err := strconv.Atoi(mm)
	if err != nil || mins < 0 {
		return 0, fmt.Errorf("invalid minutes in timecode %q", s)
	}
	secs, err := strconv.Atoi(ss)
	if err != nil || secs < 0 || secs > 59 || len(ss) != 2 {
		return 0, fmt.Errorf("invalid seconds in timecode %q", s)
	}
	return mins*60 + secs, nil
}
