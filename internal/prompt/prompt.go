// Package prompt implements the interactive option menus. It is a pure
// translator from user responses to an EncodingOptions value: the core
// never sees raw input, and the prompter never touches the pipeline.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dallagrana/gopromerge/internal/config"
	"github.com/dallagrana/gopromerge/internal/planner"
	"github.com/dallagrana/gopromerge/internal/term"
)

// Prompter reads menu answers from in and writes menus to out. Tests
// inject a strings.Reader and bytes.Buffer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask prints the prompt and returns the trimmed answer, or fallback when
// the user just presses enter.
func (p *Prompter) ask(prompt, fallback string) (string, error) {
	fmt.Fprintf(p.out, "%s%s%s", term.Cyan, prompt, term.NC)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		return fallback, nil
	}
	return answer, nil
}

func (p *Prompter) section(title string) {
	fmt.Fprintf(p.out, "\n%s%s%s\n", term.Bold, title, term.NC)
}

// Options walks the encoding menus and returns the selected option set.
// Defaults on plain enter: hardware H.264 at 50 Mbps, keep-original
// geometry, no stabilization, balanced preset.
func (p *Prompter) Options() (planner.EncodingOptions, error) {
	var opts planner.EncodingOptions

	p.section("Encoding method:")
	fmt.Fprintln(p.out, "  1. NVIDIA NVENC (Hardware - Recommended)")
	fmt.Fprintln(p.out, "  2. CPU (Software - Slower)")
	answer, err := p.ask("Select [1-2] (default: 1): ", "1")
	if err != nil {
		return opts, err
	}
	opts.Path = config.PathHardware
	if answer == "2" {
		opts.Path = config.PathSoftware
	}

	p.section("Output codec:")
	if opts.Path == config.PathHardware {
		fmt.Fprintln(p.out, "  1. H.264 (h264_nvenc) - Best compatibility")
		fmt.Fprintln(p.out, "  2. H.265/HEVC (hevc_nvenc) - Better compression")
		fmt.Fprintln(p.out, "  3. AV1 (av1_nvenc) - Newest, best quality/size")
		answer, err = p.ask("Select [1-3] (default: 1): ", "1")
	} else {
		fmt.Fprintln(p.out, "  1. H.264 (libx264)")
		fmt.Fprintln(p.out, "  2. H.265/HEVC (libx265)")
		answer, err = p.ask("Select [1-2] (default: 1): ", "1")
	}
	if err != nil {
		return opts, err
	}
	switch answer {
	case "2":
		opts.Codec = config.CodecH265
	case "3":
		opts.Codec = config.CodecAV1
	default:
		opts.Codec = config.CodecH264
	}

	p.section("Output resolution:")
	fmt.Fprintln(p.out, "  1. 4K (3840x2160)")
	fmt.Fprintln(p.out, "  2. 2K (2560x1440)")
	fmt.Fprintln(p.out, "  3. 1080p (1920x1080)")
	fmt.Fprintln(p.out, "  4. 720p (1280x720)")
	fmt.Fprintln(p.out, "  5. Keep original")
	answer, err = p.ask("Select [1-5] (default: 5): ", "5")
	if err != nil {
		return opts, err
	}
	resolutions := map[string]string{"1": "4k", "2": "1440p", "3": "1080p", "4": "720p"}
	if name, ok := resolutions[answer]; ok {
		opts.Resolution, _ = planner.ParseResolution(name)
	}

	p.section("Output frame rate:")
	fmt.Fprintln(p.out, "  1. 60 fps")
	fmt.Fprintln(p.out, "  2. 30 fps")
	fmt.Fprintln(p.out, "  3. Keep original")
	answer, err = p.ask("Select [1-3] (default: 3): ", "3")
	if err != nil {
		return opts, err
	}
	switch answer {
	case "1":
		opts.FrameRate = 60
	case "2":
		opts.FrameRate = 30
	}

	p.section("Video stabilization:")
	fmt.Fprintln(p.out, "  1. Yes (vidstabtransform)")
	fmt.Fprintln(p.out, "  2. No")
	answer, err = p.ask("Select [1-2] (default: 2): ", "2")
	if err != nil {
		return opts, err
	}
	opts.Stabilize = answer == "1"

	p.section("Encoding preset (quality vs speed):")
	fmt.Fprintln(p.out, "  1. p1 (fastest, lower quality)")
	fmt.Fprintln(p.out, "  2. p4 (balanced)")
	fmt.Fprintln(p.out, "  3. p7 (slower, best quality)")
	answer, err = p.ask("Select [1-3] (default: 2): ", "2")
	if err != nil {
		return opts, err
	}
	switch answer {
	case "1":
		opts.Preset = 1
	case "3":
		opts.Preset = 7
	default:
		opts.Preset = 4
	}

	p.section("Bitrate (Mbps):")
	answer, err = p.ask("Enter bitrate in Mbps (default: 50): ", "50")
	if err != nil {
		return opts, err
	}
	bitrate, err := strconv.Atoi(answer)
	if err != nil {
		return opts, fmt.Errorf("invalid bitrate %q: enter a whole number of Mbps", answer)
	}
	opts.BitrateMbps = bitrate

	return opts, nil
}

// Confirm asks a yes/no question; enter accepts the default answer.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	suffix := "[Y/n]"
	fallback := "y"
	if !defaultYes {
		suffix = "[y/N]"
		fallback = "n"
	}
	answer, err := p.ask(fmt.Sprintf("%s %s: ", question, suffix), fallback)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}
