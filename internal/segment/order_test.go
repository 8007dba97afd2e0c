package segment

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seg(path, capture string, d time.Duration) Segment {
	return Segment{Path: path, CaptureTime: ts(capture), Duration: d}
}

func paths(segments []Segment) []string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = s.Path
	}
	return out
}

func assertOrder(t *testing.T, got []Segment, want []string) {
	t.Helper()
	gotPaths := paths(got)
	if len(gotPaths) != len(want) {
		t.Fatalf("got %d segments, want %d", len(gotPaths), len(want))
	}
	for i := range want {
		if gotPaths[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q (full order %v)", i, gotPaths[i], want[i], gotPaths)
		}
	}
}

func TestOrder_ChaptersOutOfScanOrder(t *testing.T) {
	// The end-to-end chapter scenario: three chapters discovered out of
	// order must reassemble by capture time.
	input := []Segment{
		seg("/footage/GH031595.MP4", "2023-10-12 10:10:00", 5*time.Minute),
		seg("/footage/GH011595.MP4", "2023-10-12 10:00:00", 5*time.Minute),
		seg("/footage/GH021595.MP4", "2023-10-12 10:05:00", 5*time.Minute),
	}
	got := Order(input)
	assertOrder(t, got, []string{
		"/footage/GH011595.MP4",
		"/footage/GH021595.MP4",
		"/footage/GH031595.MP4",
	})
}

func TestOrder_StrictlyIncreasingTimestamps(t *testing.T) {
	input := []Segment{
		seg("/footage/d.MP4", "2023-10-12 12:00:00", 0),
		seg("/footage/a.MP4", "2023-10-12 09:00:00", 0),
		seg("/footage/c.MP4", "2023-10-12 11:00:00", 0),
		seg("/footage/b.MP4", "2023-10-12 10:00:00", 0),
	}
	got := Order(input)
	for i := 1; i < len(got); i++ {
		if !got[i-1].EffectiveTime().Before(got[i].EffectiveTime()) {
			t.Fatalf("sequence not strictly increasing at %d: %v then %v",
				i, got[i-1].EffectiveTime(), got[i].EffectiveTime())
		}
	}
}

func TestOrder_TieBreakByPath(t *testing.T) {
	// Truncated timestamp precision: all chapters share one second.
	input := []Segment{
		seg("/footage/GH031595.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/GH011595.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/GH021595.MP4", "2023-10-12 10:00:00", 0),
	}
	got := Order(input)
	assertOrder(t, got, []string{
		"/footage/GH011595.MP4",
		"/footage/GH021595.MP4",
		"/footage/GH031595.MP4",
	})
}

func TestOrder_Idempotent(t *testing.T) {
	input := []Segment{
		seg("/footage/GH021595.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/GH011595.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/GH010001.MP4", "2023-10-11 08:00:00", 0),
	}
	once := Order(input)
	twice := Order(once)
	assertOrder(t, twice, paths(once))
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	input := []Segment{
		seg("/footage/b.MP4", "2023-10-12 11:00:00", 0),
		seg("/footage/a.MP4", "2023-10-12 10:00:00", 0),
	}
	Order(input)
	if input[0].Path != "/footage/b.MP4" {
		t.Fatal("Order mutated its input")
	}
}

func TestOrder_ModTimeFallback(t *testing.T) {
	// A segment without a capture tag orders by its mtime.
	withTag := seg("/footage/GH011595.MP4", "2023-10-12 10:00:00", 0)
	noTag := Segment{Path: "/footage/GH021595.MP4", ModTime: ts("2023-10-12 09:00:00")}

	got := Order([]Segment{withTag, noTag})
	assertOrder(t, got, []string{"/footage/GH021595.MP4", "/footage/GH011595.MP4"})
}

func TestCollisions(t *testing.T) {
	ordered := Order([]Segment{
		seg("/footage/GH011595.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/GX010042.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/GH021595.MP4", "2023-10-12 10:05:00", 0),
	})
	collisions := Collisions(ordered)
	if len(collisions) != 1 {
		t.Fatalf("got %d collisions, want 1", len(collisions))
	}
	if len(collisions[0].Paths) != 2 {
		t.Fatalf("got %d colliding paths, want 2", len(collisions[0].Paths))
	}
	if !collisions[0].Time.Equal(ts("2023-10-12 10:00:00")) {
		t.Errorf("collision time: got %v", collisions[0].Time)
	}
}

func TestCollisions_NoneForDistinctTimestamps(t *testing.T) {
	ordered := Order([]Segment{
		seg("/footage/a.MP4", "2023-10-12 10:00:00", 0),
		seg("/footage/b.MP4", "2023-10-12 10:00:01", 0),
	})
	if got := Collisions(ordered); got != nil {
		t.Fatalf("expected no collisions, got %v", got)
	}
}

func TestTotalDuration(t *testing.T) {
	known := []Segment{
		seg("/footage/a.MP4", "2023-10-12 10:00:00", 5*time.Minute),
		seg("/footage/b.MP4", "2023-10-12 10:05:00", 5*time.Minute),
	}
	total, complete := TotalDuration(known)
	if !complete || total != 10*time.Minute {
		t.Fatalf("got (%v, %v), want (10m, true)", total, complete)
	}

	withUnknown := append(known, Segment{Path: "/footage/c.MP4", ModTime: ts("2023-10-12 10:10:00")})
	total, complete = TotalDuration(withUnknown)
	if complete || total != 10*time.Minute {
		t.Fatalf("got (%v, %v), want (10m, false)", total, complete)
	}
}
