package segment

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dallagrana/gopromerge/internal/probe"
)

// ProbeFunc matches probe.Probe. Injected so resolution is testable without
// an ffprobe binary.
type ProbeFunc func(ctx context.Context, path string) (*probe.Result, error)

// Resolver turns candidate file paths into Segments. A failed probe degrades
// to filesystem metadata; only a file the filesystem itself cannot describe
// is excluded.
type Resolver struct {
	Probe ProbeFunc
}

// Warning records one file whose metadata resolution degraded or failed.
type Warning struct {
	Path     string
	Err      error
	Excluded bool
}

// Resolve builds a Segment for path.
//
// Timestamp fallback chain: embedded creation tag → file mtime. Duration is
// best effort and left unset when the probe fails or omits it. The returned
// error is non-nil only when the file cannot be stat'd at all; that is the
// single condition that excludes a file from the sequence.
func (r Resolver) Resolve(ctx context.Context, path string) (Segment, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Segment{}, err
	}

	seg := Segment{
		Path:    absOrClean(path),
		ModTime: fi.ModTime(),
		Size:    fi.Size(),
	}

	pr, err := r.Probe(ctx, path)
	if err != nil {
		// Probe failure is recoverable: mtime orders the file.
		return seg, nil
	}
	if t, ok := pr.CreationTime(); ok {
		seg.CaptureTime = t
	}
	if d, ok := pr.DurationValue(); ok {
		seg.Duration = d
	}
	return seg, nil
}

// ResolveAll resolves every path, accumulating per-file warnings instead of
// failing the scan. Excluded files are counted via the warnings; the
// returned slice preserves the input order (ordering happens later).
func (r Resolver) ResolveAll(ctx context.Context, paths []string) ([]Segment, []Warning) {
	segments := make([]Segment, 0, len(paths))
	var warnings []Warning

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		seg, err := r.Resolve(ctx, path)
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Err: err, Excluded: true})
			continue
		}
		if seg.CaptureTime.IsZero() {
			warnings = append(warnings, Warning{Path: path})
		}
		segments = append(segments, seg)
	}
	return segments, warnings
}

// ExcludedCount returns how many warnings dropped their file entirely.
func ExcludedCount(warnings []Warning) int {
	n := 0
	for _, w := range warnings {
		if w.Excluded {
			n++
		}
	}
	return n
}

func absOrClean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
