// Package ffmpeg builds and runs the single ffmpeg invocation that
// concatenates and encodes a merge plan.
package ffmpeg

import (
	"github.com/dallagrana/gopromerge/internal/planner"
)

// Build constructs the complete ffmpeg argument slice for a plan. The
// command follows a fixed skeleton with sections injected as needed:
// preamble, concat input, filter graph, video encoder, audio, output.
//
// The plan is the sole source of encoder parameters; Build adds only
// invocation mechanics (log level, progress stream, concat demuxer flags).
func Build(plan *planner.MergePlan, manifestPath string, verbose, progress bool) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	if verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// Machine-readable progress on stdout for the progress bar.
	if progress {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}

	// --- Concat input ---
	// -safe 0 permits absolute paths in the manifest.
	args = append(args, "-f", "concat", "-safe", "0", "-i", manifestPath)

	// --- Filter graph (single -vf expression when non-empty) ---
	if graph := planner.FilterGraph(plan.Filters); graph != "" {
		args = append(args, "-vf", graph)
	}

	// --- Video encoder ---
	args = append(args, "-c:v", plan.Encoder)
	args = append(args, plan.EncoderArgs...)

	// --- Audio ---
	args = append(args, plan.AudioArgs...)

	// --- Output ---
	args = append(args, plan.OutputPath)

	return args
}
