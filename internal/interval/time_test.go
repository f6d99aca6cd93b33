package interval

import "testing"

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"14:45", 885},
		{"23:59", 1439},
		{"", 0},
		{"bad", 0},
	}
	for _, tt := range tests {
		if got := TimeToMinutes(tt.in); got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "00:00"},
		{570, "09:30"},
		{885, "14:45"},
		{1439, "23:59"},
		{-5, "00:00"},
		{1440, "23:59"},
		{99999, "23:59"},
	}
	for _, tt := range tests {
		if got := MinutesToTime(tt.in); got != tt.want {
			t.Errorf("MinutesToTime(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       bool
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
		{"partial", "09:00", "10:00", "09:30", "10:30", true},
		{"contained", "09:00", "12:00", "10:00", "11:00", true},
		{"touching", "09:00", "10:00", "10:00", "11:00", false},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
	}
	for _, tt := range tests {
		if got := TimesOverlap(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
			t.Errorf("%s: TimesOverlap = %v, want %v", tt.name, got, tt.want)
		}
		// Symmetric.
		if got := TimesOverlap(tt.start2, tt.end2, tt.start1, tt.end1); got != tt.want {
			t.Errorf("%s (swapped): TimesOverlap = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOverlapMinutes(t *testing.T) {
	tests := []struct {
		name                       string
		start1, end1, start2, end2 string
		want                       int
	}{
		{"identical", "09:00", "10:00", "09:00", "10:00", 60},
		{"partial", "09:00", "10:00", "09:30", "10:30", 30},
		{"contained", "09:00", "12:00", "10:00", "10:45", 45},
		{"touching", "09:00", "10:00", "10:00", "11:00", 0},
		{"disjoint", "09:00", "10:00", "11:00", "12:00", 0},
	}
	for _, tt := range tests {
		if got := OverlapMinutes(tt.start1, tt.end1, tt.start2, tt.end2); got != tt.want {
			t.Errorf("%s: OverlapMinutes = %d, want %d", tt.name, got, tt.want)
		}
	}
}
