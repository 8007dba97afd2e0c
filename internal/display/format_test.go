package display

import (
	"strings"
	"testing"
	"time"

	"github.com/dallagrana/gopromerge/internal/segment"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{531498 * time.Millisecond, "00:08:51"},
		{time.Hour + 23*time.Minute + 45*time.Second, "01:23:45"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v): got %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	if got := FormatSize(0); got != "0 B" {
		t.Errorf("got %q", got)
	}
	if got := FormatSize(3 << 30); !strings.Contains(got, "GiB") {
		t.Errorf("3 GiB input: got %q", got)
	}
}

func TestSegmentTable(t *testing.T) {
	base := time.Date(2023, 10, 12, 10, 0, 0, 0, time.UTC)
	ordered := []segment.Segment{
		{Path: "/footage/GH011595.MP4", CaptureTime: base, Duration: 8 * time.Minute, Size: 3 << 30},
		{Path: "/footage/GH021595.MP4", CaptureTime: base.Add(8 * time.Minute), Size: 1 << 30},
	}

	out := SegmentTable(ordered)
	for _, want := range []string{
		"GH011595.MP4",
		"GH021595.MP4",
		"2023-10-12 10:00:00",
		"00:08:00",
		"unknown",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "/footage/") {
		t.Error("table should show base names, not full paths")
	}
}
