package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_RecordAndRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := Run{
		StartedAt:   time.Date(2026, 1, 16, 7, 30, 0, 0, time.UTC),
		OutputPath:  "/footage/merged_output/gopro_merged_20231012_h264_20260116_073000.mp4",
		Codec:       "h264",
		Segments:    3,
		InputBytes:  9 << 30,
		OutputBytes: 5 << 30,
		Elapsed:     42 * time.Minute,
	}
	second := first
	second.StartedAt = first.StartedAt.Add(time.Hour)
	second.Codec = "h265"

	if err := store.Record(ctx, first); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, second); err != nil {
		t.Fatalf("Record: %v", err)
	}

	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first.
	if runs[0].Codec != "h265" || runs[1].Codec != "h264" {
		t.Errorf("order: got %s then %s", runs[0].Codec, runs[1].Codec)
	}

	got := runs[1]
	if !got.StartedAt.Equal(first.StartedAt) {
		t.Errorf("started at: got %v, want %v", got.StartedAt, first.StartedAt)
	}
	if got.OutputPath != first.OutputPath || got.Segments != 3 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.InputBytes != first.InputBytes || got.OutputBytes != first.OutputBytes {
		t.Errorf("byte counts: %+v", got)
	}
	if got.Elapsed != first.Elapsed {
		t.Errorf("elapsed: got %v, want %v", got.Elapsed, first.Elapsed)
	}
}

func TestStore_RecentLimit(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		run := Run{StartedAt: time.Now(), OutputPath: "/x.mp4", Codec: "h264"}
		if err := store.Record(ctx, run); err != nil {
			t.Fatal(err)
		}
	}
	runs, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Record(context.Background(), Run{StartedAt: time.Now(), OutputPath: "/x.mp4", Codec: "h264"}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs after reopen, want 1", len(runs))
	}
}
