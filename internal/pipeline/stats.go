package pipeline

import "time"

// RunStats summarizes one merge run for the caller and the history journal.
type RunStats struct {
	Segments    int   // Files merged.
	Excluded    int   // Files dropped during metadata resolution.
	InputBytes  int64 // Sum of input segment sizes.
	OutputBytes int64
	OutputPath  string
	StartedAt   time.Time
	Elapsed     time.Duration
}
