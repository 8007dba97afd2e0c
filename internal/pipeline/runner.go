// Package pipeline orchestrates one merge run: scan → resolve metadata →
// order → plan → execute. The stages run strictly in sequence; each
// consumes the previous stage's immutable output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/dallagrana/gopromerge/internal/config"
	"github.com/dallagrana/gopromerge/internal/display"
	"github.com/dallagrana/gopromerge/internal/ffmpeg"
	"github.com/dallagrana/gopromerge/internal/history"
	"github.com/dallagrana/gopromerge/internal/logging"
	"github.com/dallagrana/gopromerge/internal/planner"
	"github.com/dallagrana/gopromerge/internal/probe"
	"github.com/dallagrana/gopromerge/internal/segment"
	"github.com/dallagrana/gopromerge/internal/term"
)

// ErrNoSegments reports the empty-input condition: the directory was
// readable but held no eligible files. Distinct from a scan failure, and
// raised before any plan is built.
var ErrNoSegments = errors.New("no eligible video files found")

// ErrCanceled reports a user-initiated cancellation, either declining the
// confirmation or interrupting the encode.
var ErrCanceled = errors.New("canceled by user")

// Confirmer is called with the ordered sequence after it is displayed and
// before any plan is built. Nil means proceed without asking.
type Confirmer func(ordered []segment.Segment) (bool, error)

// Run executes one full merge. opts must be a fully formed option set; the
// prompting layer has already run by the time Run is called.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger, opts planner.EncodingOptions, confirm Confirmer) (RunStats, error) {
	stats := RunStats{StartedAt: time.Now()}

	// --- Scan ---
	files, err := Discover(cfg.InputDir)
	if err != nil {
		return stats, err
	}
	if len(files) == 0 {
		return stats, ErrNoSegments
	}
	log.Info("Found %d candidate files in %s", len(files), cfg.InputDir)

	// --- Resolve metadata ---
	resolver := segment.Resolver{Probe: probe.Probe}
	segments, warnings := resolver.ResolveAll(ctx, files)
	for _, w := range warnings {
		if w.Excluded {
			log.Warn("Excluding unreadable file %s: %v", filepath.Base(w.Path), w.Err)
		} else {
			log.Debug("No capture timestamp in %s; using file modification time", filepath.Base(w.Path))
		}
	}
	stats.Excluded = segment.ExcludedCount(warnings)
	if stats.Excluded > 0 {
		log.Warn("%d file(s) excluded from the sequence", stats.Excluded)
	}
	if len(segments) == 0 {
		return stats, ErrNoSegments
	}
	if ctx.Err() != nil {
		return stats, ErrCanceled
	}

	// --- Order ---
	ordered := segment.Order(segments)
	for _, c := range segment.Collisions(ordered) {
		names := make([]string, len(c.Paths))
		for i, p := range c.Paths {
			names[i] = filepath.Base(p)
		}
		log.Warn("Identical timestamp %s for %s; ordering by filename",
			c.Time.Format("2006-01-02 15:04:05"), strings.Join(names, ", "))
	}

	stats.Segments = len(ordered)
	for _, s := range ordered {
		stats.InputBytes += s.Size
	}

	fmt.Println(display.SegmentTable(ordered))
	logSequenceSummary(log, ordered, stats.InputBytes)

	if confirm != nil {
		ok, err := confirm(ordered)
		if err != nil {
			return stats, err
		}
		if !ok {
			return stats, ErrCanceled
		}
	}

	// --- Plan ---
	outputDir := cfg.ResolvedOutputDir()
	plan, err := planner.Build(ordered, opts, planner.DefaultEncoders, outputDir, time.Now())
	if err != nil {
		return stats, err
	}
	stats.OutputPath = plan.OutputPath

	log.Info("Output file: %s", filepath.Base(plan.OutputPath))
	logPlanSummary(log, plan, opts)

	if cfg.DryRun {
		log.Success("[DRY] Would run: %s", strings.Join(ffmpeg.Build(plan, "<manifest>", cfg.Verbose, false), " "))
		return stats, nil
	}

	// --- Execute ---
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(outputDir, ".gopromerge.lock"))
	locked, err := lock.TryLock()
	if err == nil && !locked {
		err = errors.New("lock held")
	}
	if err != nil {
		return stats, fmt.Errorf("another merge is already writing to %s", outputDir)
	}
	defer lock.Unlock()

	log.Info("Encoding %d segments... this may take a while", stats.Segments)
	result := ffmpeg.Execute(ctx, plan, ffmpeg.ExecOptions{
		Verbose:      cfg.Verbose,
		ShowProgress: term.IsTerminal(os.Stdout),
	})
	stats.Elapsed = result.Elapsed
	stats.OutputBytes = result.OutputSize

	switch result.Status {
	case ffmpeg.StatusCanceled:
		reportPartialOutput(log, plan.OutputPath, result.OutputSize)
		return stats, ErrCanceled

	case ffmpeg.StatusFailed:
		for _, line := range ffmpeg.StderrTail(result.Stderr, 20) {
			log.Error("  %s", line)
		}
		reportPartialOutput(log, plan.OutputPath, result.OutputSize)
		return stats, &ffmpeg.EncodeError{
			Stderr:      result.Stderr,
			OutputPath:  plan.OutputPath,
			PartialSize: result.OutputSize,
		}
	}

	log.Success("Merged %d segments in %s", stats.Segments, display.FormatDuration(result.Elapsed))
	log.Success("Output: %s (%s)", plan.OutputPath, display.FormatSize(result.OutputSize))

	recordHistory(ctx, cfg, log, opts, &stats)
	return stats, nil
}

// logSequenceSummary logs the aggregate numbers shown under the table.
func logSequenceSummary(log *logging.Logger, ordered []segment.Segment, inputBytes int64) {
	total, known := segment.TotalDuration(ordered)
	durationLabel := display.FormatDuration(total)
	if !known {
		durationLabel += "+ (some durations unknown)"
	}
	log.Info("Total duration: %s", durationLabel)
	log.Info("Total size: %s", display.FormatSize(inputBytes))
}

// logPlanSummary logs the resolved encode decisions.
func logPlanSummary(log *logging.Logger, plan *planner.MergePlan, opts planner.EncodingOptions) {
	log.Info("Encoder: %s (%s path, preset %s, %d Mbps)",
		plan.Encoder, opts.Path, opts.Preset, opts.BitrateMbps)
	if len(plan.Filters) == 0 {
		log.Debug("No filters; concatenating at original geometry")
		return
	}
	names := make([]string, len(plan.Filters))
	for i, f := range plan.Filters {
		names[i] = f.Name
	}
	log.Info("Filters: %s", strings.Join(names, " -> "))
}

// reportPartialOutput names any partially written output so a failed or
// interrupted encode never hides gigabytes on disk. The file is left in
// place; removing it is the user's call.
func reportPartialOutput(log *logging.Logger, path string, size int64) {
	if size <= 0 {
		return
	}
	log.Warn("Partial output left at %s (%s)", path, display.FormatSize(size))
}

// recordHistory appends the run to the journal when one is configured.
// Journal problems never fail a merge that already succeeded.
func recordHistory(ctx context.Context, cfg *config.Config, log *logging.Logger, opts planner.EncodingOptions, stats *RunStats) {
	if cfg.HistoryPath == "" {
		return
	}
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Warn("History journal unavailable: %v", err)
		return
	}
	defer store.Close()

	err = store.Record(ctx, history.Run{
		StartedAt:   stats.StartedAt,
		OutputPath:  stats.OutputPath,
		Codec:       string(opts.Codec),
		Segments:    stats.Segments,
		InputBytes:  stats.InputBytes,
		OutputBytes: stats.OutputBytes,
		Elapsed:     stats.Elapsed,
	})
	if err != nil {
		log.Warn("Could not record run in history: %v", err)
	}
}
