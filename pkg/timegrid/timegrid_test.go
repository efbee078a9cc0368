package timegrid

import "testing"

func TestFormatHour(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{6, "6 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{14, "2 PM"},
		{22, "10 PM"},
		{23, "11 PM"},
	}
	for _, tt := range tests {
		if got := FormatHour(tt.hour); got != tt.want {
			t.Errorf("FormatHour(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestFormatTimeParseTimeRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 5, 15, 30, 45, 59} {
			encoded := FormatTime(hour, minute)
			h, m, err := ParseTime(encoded)
			if err != nil {
				t.Fatalf("ParseTime(%q): %v", encoded, err)
			}
			if h != hour || m != minute {
				t.Fatalf("round trip %q = (%d,%d), want (%d,%d)", encoded, h, m, hour, minute)
			}
		}
	}
}

func TestParseTimeRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "14", "14:5", "2:30", "14:30:00", "aa:bb", "24:00", "14:60", "-1:00"} {
		if _, _, err := ParseTime(input); err == nil {
			t.Errorf("ParseTime(%q) accepted malformed input", input)
		}
	}
}

func TestSnapOffsetToQuarter(t *testing.T) {
	tests := []struct {
		name      string
		offset    float64
		rowHeight float64
		want      int
	}{
		{"top of row", 0, 60, 0},
		{"first cell", 10, 60, 0},
		{"second cell", 16, 60, 15},
		{"drop example offset 40 of 60", 40, 60, 30},
		{"last cell", 50, 60, 45},
		{"bottom edge clamps to 45", 60, 60, 45},
		{"past the row still 45", 500, 60, 45},
		{"negative offset clamps to 0", -30, 60, 0},
		{"zero row height", 30, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnapOffsetToQuarter(tt.offset, tt.rowHeight)
			if got != tt.want {
				t.Fatalf("SnapOffsetToQuarter(%v, %v) = %d, want %d", tt.offset, tt.rowHeight, got, tt.want)
			}
			if !ValidQuarter(got) {
				t.Fatalf("snap produced non-quarter minute %d", got)
			}
		})
	}
}

func TestSnapMinute(t *testing.T) {
	tests := []struct {
		minute int
		want   int
	}{
		{0, 0}, {7, 0}, {15, 15}, {29, 15}, {30, 30}, {44, 30}, {45, 45}, {59, 45}, {-3, 0}, {75, 45},
	}
	for _, tt := range tests {
		if got := SnapMinute(tt.minute); got != tt.want {
			t.Errorf("SnapMinute(%d) = %d, want %d", tt.minute, got, tt.want)
		}
	}
}

func TestInGrid(t *testing.T) {
	if InGrid(5) || InGrid(23) {
		t.Error("hours outside 6-22 should not be in the grid")
	}
	if !InGrid(6) || !InGrid(22) || !InGrid(14) {
		t.Error("grid bounds are inclusive")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0min"},
		{45, "45min"},
		{59, "59min"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{150, "2h 30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
