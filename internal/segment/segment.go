// Package segment models one input recording chapter and the chronological
// ordering of a set of chapters.
//
// GoPro splits a continuous recording into sequential "chapter" files at a
// size limit. Reassembling them requires a total order that survives
// filenames like GH011595.MP4/GH021595.MP4 (which do not sort into shooting
// order across recordings) and capture timestamps whose precision may not
// distinguish adjacent chapters.
package segment

import "time"

// Segment is one input video file. Immutable once resolved; the merge plan
// keeps only the ordered paths, so Segment records are discarded after
// planning except for display.
type Segment struct {
	Path        string
	CaptureTime time.Time     // Zero when no container tag parsed.
	ModTime     time.Time     // Filesystem fallback, always set.
	Duration    time.Duration // 0 = unknown; never blocks ordering.
	Size        int64
}

// EffectiveTime is the timestamp used for ordering: the embedded capture
// time when present, otherwise the filesystem modification time.
func (s Segment) EffectiveTime() time.Time {
	if !s.CaptureTime.IsZero() {
		return s.CaptureTime
	}
	return s.ModTime
}

// HasDuration reports whether the container duration is known.
func (s Segment) HasDuration() bool { return s.Duration > 0 }
