package naming

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOutputName(t *testing.T) {
	earliest := time.Date(2023, 10, 12, 10, 0, 0, 0, time.UTC)
	build := time.Date(2026, 1, 16, 7, 30, 0, 0, time.UTC)

	got := OutputName(earliest, "h264", build)
	want := "gopro_merged_20231012_h264_20260116_073000.mp4"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestOutputName_DistinguishesRuns(t *testing.T) {
	earliest := time.Date(2023, 10, 12, 10, 0, 0, 0, time.UTC)
	build := time.Date(2026, 1, 16, 7, 30, 0, 0, time.UTC)

	base := OutputName(earliest, "h264", build)
	if OutputName(earliest, "h265", build) == base {
		t.Error("codec change must change the name")
	}
	if OutputName(earliest.AddDate(0, 0, 1), "h264", build) == base {
		t.Error("capture date change must change the name")
	}
	if OutputName(earliest, "h264", build.Add(time.Second)) == base {
		t.Error("build time change must change the name")
	}
}

func TestOutputPath(t *testing.T) {
	earliest := time.Date(2023, 10, 12, 10, 0, 0, 0, time.UTC)
	build := time.Date(2026, 1, 16, 7, 30, 0, 0, time.UTC)

	got := OutputPath("/footage/merged_output", earliest, "av1", build)
	if filepath.Dir(got) != "/footage/merged_output" {
		t.Errorf("dir: got %q", filepath.Dir(got))
	}
	name := filepath.Base(got)
	if !strings.Contains(name, "_av1_") || !strings.Contains(name, "20231012") {
		t.Errorf("name missing codec or date token: %q", name)
	}
}
