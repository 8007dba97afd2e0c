// Package planner turns an ordered segment sequence and a validated option
// set into a merge plan: the ordered inputs, the filter chain, and the fully
// resolved encoder arguments for one concatenation-and-encode run.
package planner

import (
	"fmt"

	"github.com/dallagrana/gopromerge/internal/config"
)

// Resolution is an explicit output size. A nil *Resolution means
// keep-original: no scale filter is emitted.
type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%d:%d", r.Width, r.Height)
}

// EncodingOptions is the fully formed option set the core accepts. The
// interactive prompt and the CLI flags are both translators into this value;
// the core never consumes raw user input.
type EncodingOptions struct {
	Path        config.EncoderPath
	Codec       config.Codec
	Resolution  *Resolution // nil = keep original.
	FrameRate   int         // 0 = keep original.
	BitrateMbps int
	Stabilize   bool
	Preset      Preset
}

// Preset is one of the seven ordered quality presets p1 (fastest) through
// p7 (best quality).
type Preset int

// ParsePreset converts "p1".."p7" to a Preset.
func ParsePreset(s string) (Preset, error) {
	var n int
	if _, err := fmt.Sscanf(s, "p%d", &n); err != nil || n < 1 || n > 7 {
		return 0, fmt.Errorf("invalid preset %q (use p1..p7)", s)
	}
	return Preset(n), nil
}

func (p Preset) String() string { return fmt.Sprintf("p%d", int(p)) }

// InvalidOptionsError reports a contradictory or out-of-range option set.
// It is always raised before any external process is spawned, so the caller
// can re-prompt.
type InvalidOptionsError struct {
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return "invalid encoding options: " + e.Reason
}

// Validate rejects option sets the given encoder table cannot execute:
// unsupported (path, codec) pairs, non-positive bitrate, and explicit
// resolution or frame-rate values that are not positive.
func (o EncodingOptions) Validate(table EncoderTable) error {
	if _, ok := table[EncoderKey{o.Path, o.Codec}]; !ok {
		return &InvalidOptionsError{
			Reason: fmt.Sprintf("codec %s is not supported on the %s path", o.Codec, o.Path),
		}
	}
	if o.BitrateMbps <= 0 {
		return &InvalidOptionsError{
			Reason: fmt.Sprintf("bitrate must be positive, got %d Mbps", o.BitrateMbps),
		}
	}
	if o.Resolution != nil && (o.Resolution.Width <= 0 || o.Resolution.Height <= 0) {
		return &InvalidOptionsError{
			Reason: fmt.Sprintf("resolution must be positive, got %dx%d", o.Resolution.Width, o.Resolution.Height),
		}
	}
	if o.FrameRate < 0 {
		return &InvalidOptionsError{
			Reason: fmt.Sprintf("frame rate must be positive, got %d", o.FrameRate),
		}
	}
	if o.Preset < 1 || o.Preset > 7 {
		return &InvalidOptionsError{
			Reason: fmt.Sprintf("preset must be p1..p7, got p%d", int(o.Preset)),
		}
	}
	return nil
}

// namedResolutions maps the menu shorthand sizes to explicit geometry.
var namedResolutions = map[string]Resolution{
	"4k":    {3840, 2160},
	"2160p": {3840, 2160},
	"2k":    {2560, 1440},
	"1440p": {2560, 1440},
	"1080p": {1920, 1080},
	"720p":  {1280, 720},
}

// ParseResolution converts a user resolution string into a *Resolution.
// Accepted: "keep" or "" (nil result), a named size (4k, 1440p, 1080p,
// 720p), or explicit "WxH".
func ParseResolution(s string) (*Resolution, error) {
	if s == "" || s == "keep" {
		return nil, nil
	}
	if r, ok := namedResolutions[s]; ok {
		return &r, nil
	}
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err == nil {
		return &Resolution{w, h}, nil
	}
	return nil, fmt.Errorf("invalid resolution %q (use keep, 4k, 1440p, 1080p, 720p or WxH)", s)
}

// OptionsFromConfig translates config defaults/flags into EncodingOptions.
// Parse errors here are user input errors, not InvalidOptionsError: the
// value never became a well-formed option set.
func OptionsFromConfig(cfg *config.Config) (EncodingOptions, error) {
	res, err := ParseResolution(cfg.Resolution)
	if err != nil {
		return EncodingOptions{}, err
	}
	preset, err := ParsePreset(cfg.Preset)
	if err != nil {
		return EncodingOptions{}, err
	}
	return EncodingOptions{
		Path:        cfg.EncoderPath,
		Codec:       cfg.Codec,
		Resolution:  res,
		FrameRate:   cfg.FrameRate,
		BitrateMbps: cfg.BitrateMbps,
		Stabilize:   cfg.Stabilize,
		Preset:      preset,
	}, nil
}
