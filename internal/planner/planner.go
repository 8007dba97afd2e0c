package planner

import (
	"time"

	"github.com/dallagrana/gopromerge/internal/naming"
	"github.com/dallagrana/gopromerge/internal/segment"
)

// MergePlan is the side-effect-free description of one concatenation-and-
// encode run. It owns the ordered input paths only; segment timestamps and
// durations are not needed once the order is fixed.
type MergePlan struct {
	Inputs      []string // Absolute paths in final concatenation order.
	Filters     []Filter // Fixed order: scale, fps, stabilize.
	Encoder     string   // ffmpeg -c:v value.
	EncoderArgs []string // Rate control, quality, bitrate parameters.
	AudioArgs   []string // Audio codec and bitrate.
	OutputPath  string

	// Display-only summary data.
	TotalDuration time.Duration
	DurationKnown bool
}

// audioArgs is the fixed audio handling: GoPro audio is AAC already, and
// 192k transcoded AAC keeps concat boundaries clean across chapters.
var audioArgs = []string{"-c:a", "aac", "-b:a", "192k"}

// Build produces a MergePlan for the ordered sequence under the given
// options. It is a pure function of its inputs: rebuilding from the same
// sequence, options, and build time yields the same plan, and nothing is
// written to the filesystem (the runner creates the output directory only
// after Build succeeds).
//
// Validation happens first; a rejected option set aborts before any path
// derivation so no external process is ever spawned for a contradictory
// plan. The sequence must be non-empty; the pipeline short-circuits the
// zero-segment case before planning.
func Build(seq []segment.Segment, opts EncodingOptions, table EncoderTable, outputDir string, buildTime time.Time) (*MergePlan, error) {
	if err := opts.Validate(table); err != nil {
		return nil, err
	}

	tmpl := table[EncoderKey{opts.Path, opts.Codec}]

	inputs := make([]string, len(seq))
	for i, s := range seq {
		inputs[i] = s.Path
	}

	total, known := segment.TotalDuration(seq)
	earliest := seq[0].EffectiveTime()

	return &MergePlan{
		Inputs:        inputs,
		Filters:       BuildFilters(opts),
		Encoder:       tmpl.Encoder,
		EncoderArgs:   tmpl.EncoderArgs(opts),
		AudioArgs:     audioArgs,
		OutputPath:    naming.OutputPath(outputDir, earliest, string(opts.Codec), buildTime),
		TotalDuration: total,
		DurationKnown: known,
	}, nil
}
