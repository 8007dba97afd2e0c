package segment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dallagrana/gopromerge/internal/probe"
)

// writeFixture creates an empty file with the given mtime and returns its path.
func writeFixture(t *testing.T, dir, name string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
	return path
}

func probeWithTag(tag string) ProbeFunc {
	return func(ctx context.Context, path string) (*probe.Result, error) {
		return &probe.Result{
			Format: probe.FormatInfo{
				Duration: 300,
				Tags:     map[string]string{"creation_time": tag},
			},
		}, nil
	}
}

func probeFailing(ctx context.Context, path string) (*probe.Result, error) {
	return nil, errors.New("moov atom not found")
}

func TestResolve_CaptureTagPreferred(t *testing.T) {
	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	path := writeFixture(t, t.TempDir(), "GH011595.MP4", mtime)

	r := Resolver{Probe: probeWithTag("2023-10-12T10:00:00Z")}
	seg, err := r.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := time.Date(2023, 10, 12, 10, 0, 0, 0, time.UTC)
	if !seg.EffectiveTime().Equal(want) {
		t.Errorf("effective time: got %v, want capture tag %v", seg.EffectiveTime(), want)
	}
	if seg.Duration != 5*time.Minute {
		t.Errorf("duration: got %v, want 5m", seg.Duration)
	}
	if !filepath.IsAbs(seg.Path) {
		t.Errorf("path not absolute: %q", seg.Path)
	}
}

func TestResolve_ProbeFailureFallsBackToModTime(t *testing.T) {
	mtime := time.Date(2023, 10, 12, 10, 0, 0, 0, time.UTC)
	path := writeFixture(t, t.TempDir(), "GH011595.MP4", mtime)

	r := Resolver{Probe: probeFailing}
	seg, err := r.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("probe failure must not exclude the file: %v", err)
	}
	if !seg.EffectiveTime().Equal(mtime) {
		t.Errorf("effective time: got %v, want mtime %v", seg.EffectiveTime(), mtime)
	}
	if seg.HasDuration() {
		t.Error("duration should be unknown after probe failure")
	}
}

func TestResolveAll_UnreadableFileExcluded(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, dir, "GH011595.MP4", time.Now())
	missing := filepath.Join(dir, "GH029999.MP4") // never created

	r := Resolver{Probe: probeWithTag("2023-10-12T10:00:00Z")}
	segments, warnings := r.ResolveAll(context.Background(), []string{good, missing})

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if got := ExcludedCount(warnings); got != 1 {
		t.Fatalf("excluded count: got %d, want 1", got)
	}
	if warnings[0].Path != missing || !warnings[0].Excluded {
		t.Errorf("warning should name the excluded file: %+v", warnings[0])
	}
}

func TestResolveAll_DegradedFileWarnedNotExcluded(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "GH011595.MP4", time.Now())

	r := Resolver{Probe: probeFailing}
	segments, warnings := r.ResolveAll(context.Background(), []string{path})

	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if ExcludedCount(warnings) != 0 {
		t.Fatal("degraded file must not count as excluded")
	}
	if len(warnings) != 1 || warnings[0].Excluded {
		t.Fatalf("expected one non-excluding warning, got %+v", warnings)
	}
}
