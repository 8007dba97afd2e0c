package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dallagrana/gopromerge/internal/config"
	"github.com/dallagrana/gopromerge/internal/logging"
	"github.com/dallagrana/gopromerge/internal/planner"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_Filtering(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "GH021595.MP4")
	touch(t, dir, "GH011595.MP4")
	touch(t, dir, "clip.mp4")
	touch(t, dir, "notes.txt")
	touch(t, dir, "thumb.THM")
	if err := os.Mkdir(filepath.Join(dir, "merged_output"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(dir, "GH011595.MP4"),
		filepath.Join(dir, "GH021595.MP4"),
		filepath.Join(dir, "clip.mp4"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	files, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestDiscover_MissingDirIsScanError(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"))
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScanError, got %T: %v", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ScanError should unwrap to the underlying cause: %v", err)
	}
}

func testConfig(t *testing.T, inputDir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.InputDir = inputDir
	cfg.ColorMode = config.ColorNever
	return &cfg
}

func testOptions(t *testing.T, cfg *config.Config) planner.EncodingOptions {
	t.Helper()
	opts, err := planner.OptionsFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestRun_EmptyInputShortCircuits(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Run(context.Background(), cfg, log, testOptions(t, cfg), nil)
	if !errors.Is(err, ErrNoSegments) {
		t.Fatalf("got %v, want ErrNoSegments", err)
	}

	// Short-circuiting before planning means no output directory appears.
	if _, err := os.Stat(cfg.ResolvedOutputDir()); !os.IsNotExist(err) {
		t.Fatal("empty input must not create the output directory")
	}
}

func TestRun_MissingDirFailsWithScanError(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "gone"))
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Run(context.Background(), cfg, log, testOptions(t, cfg), nil)
	var se *ScanError
	if !errors.As(err, &se) {
		t.Fatalf("got %T: %v, want ScanError", err, err)
	}
}
