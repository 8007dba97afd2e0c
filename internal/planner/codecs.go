package planner

import (
	"fmt"

	"github.com/dallagrana/gopromerge/internal/config"
)

// EncoderKey identifies one (encoder path, codec) combination.
type EncoderKey struct {
	Path  config.EncoderPath
	Codec config.Codec
}

// EncoderTemplate describes how one (path, codec) pair maps onto ffmpeg:
// the encoder identifier plus the parameter shape for that tool. The
// hardware and software tools accept different parameter names, so the
// mapping is a table rather than a single template with substitutions.
type EncoderTemplate struct {
	Encoder  string // ffmpeg -c:v value, e.g. "h264_nvenc".
	Hardware bool
	HighTier bool // NVENC HEVC takes -tier high.
}

// EncoderTable maps every supported combination to its template. Absent
// keys are unsupported combinations and fail validation; there is no
// fallthrough to a default encoder.
type EncoderTable map[EncoderKey]EncoderTemplate

// DefaultEncoders supports NVENC for all three codecs and the CPU encoders
// for H.264/H.265. There is no software AV1 entry: libaom rates are
// impractical for GoPro-length footage.
var DefaultEncoders = EncoderTable{
	{config.PathHardware, config.CodecH264}: {Encoder: "h264_nvenc", Hardware: true},
	{config.PathHardware, config.CodecH265}: {Encoder: "hevc_nvenc", Hardware: true, HighTier: true},
	{config.PathHardware, config.CodecAV1}:  {Encoder: "av1_nvenc", Hardware: true},
	{config.PathSoftware, config.CodecH264}: {Encoder: "libx264"},
	{config.PathSoftware, config.CodecH265}: {Encoder: "libx265"},
}

// cpuPresets maps the ordered p1..p7 scale onto the named preset ladder
// that libx264/libx265 accept.
var cpuPresets = [8]string{
	"", // Presets are 1-based.
	"ultrafast",
	"veryfast",
	"fast",
	"medium",
	"slow",
	"slower",
	"veryslow",
}

// lookahead returns the NVENC rc-lookahead depth for a preset. Faster
// presets get a shallower lookahead so they stay fast.
func lookahead(p Preset) int {
	switch {
	case p <= 2:
		return 8
	case p <= 5:
		return 20
	default:
		return 32
	}
}

// EncoderArgs resolves the template and options into the ordered ffmpeg
// parameter list for the video encoder, excluding the -c:v pair itself.
//
// Hardware shape: VBR rate control at the requested bitrate with a 2x
// buffer, preset-tuned lookahead, spatial AQ always, temporal AQ from p4 up.
// Software shape: named preset, crf 23, target bitrate (the x264/x265
// parameter names differ from NVENC's, hence the split).
func (t EncoderTemplate) EncoderArgs(o EncodingOptions) []string {
	bitrate := fmt.Sprintf("%dM", o.BitrateMbps)

	if t.Hardware {
		args := []string{
			"-preset", o.Preset.String(),
			"-b:v", bitrate,
			"-maxrate", bitrate,
			"-bufsize", fmt.Sprintf("%dM", o.BitrateMbps*2),
			"-rc", "vbr",
			"-rc-lookahead", fmt.Sprintf("%d", lookahead(o.Preset)),
			"-spatial-aq", "1",
		}
		if o.Preset >= 4 {
			args = append(args, "-temporal-aq", "1")
		}
		if t.HighTier {
			args = append(args, "-tier", "high")
		}
		return args
	}

	return []string{
		"-preset", cpuPresets[o.Preset],
		"-crf", "23",
		"-b:v", bitrate,
	}
}
