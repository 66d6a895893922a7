package blueprint

import "testing"

func TestFormatTimecode(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{90, "01:30"},
		{900, "15:00"},
		{3725, "62:05"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatTimecode(tt.in); got != tt.want {
			t.Fatalf("FormatTimecode(%d): want=%q got=%q", tt.in, tt.want, got)
		}
	}
}

func TestParseTimecode(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:45", 405, false},
		{"15:00", 900, false},
		{" 01:30 ", 90, false},
		{"75", 75, false},
		{"75s", 75, false},
		{"", 0, true},
		{"1:5", 0, true},
		{"01:60", 0, true},
		{"aa:10", 0, true},
		{"-4", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimecode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseTimecode(%q): expected error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTimecode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTimecode(%q): want=%d got=%d", tt.in, tt.want, got)
		}
	}
}

func TestTimecodeRoundTrip(t *testing.T) {
	for secs := 0; secs <= RuntimeSeconds; secs += 15 {
		got, err := ParseTimecode(FormatTimecode(secs))
		if err != nil || got != secs {
			t.Fatalf("round trip %d: got=%d err=%v", secs, got, err)
		}
	}
}
