// Package config holds runtime configuration: defaults, the optional TOML
// defaults file, and validation. Flag binding lives in cmd; this package
// never reads ambient process state beyond the explicit paths it is given.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// --- Enum types for validated string fields ---

// EncoderPath selects the encoding backend.
type EncoderPath string

const (
	PathHardware EncoderPath = "hardware" // NVENC encoding on the GPU (default).
	PathSoftware EncoderPath = "software" // libx264/libx265 on the CPU.
)

// Codec is the output video codec family.
type Codec string

const (
	CodecH264 Codec = "h264"
	CodecH265 Codec = "h265"
	CodecAV1  Codec = "av1"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [Default], then
// optionally overlaid by [LoadFile], then mutated by CLI flag binding in cmd
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args / flags, never from the TOML file).
	InputDir  string `toml:"-"`
	OutputDir string `toml:"-"` // Empty: <InputDir>/merged_output.

	// Encoding defaults. Resolution and FrameRate use "keep" for
	// keep-original; Resolution otherwise accepts a named size (4k, 1440p,
	// 1080p, 720p) or an explicit WxH.
	EncoderPath EncoderPath `toml:"encoder_path"`
	Codec       Codec       `toml:"codec"`
	Resolution  string      `toml:"resolution"`
	FrameRate   int         `toml:"frame_rate"` // 0 = keep original.
	BitrateMbps int         `toml:"bitrate_mbps"`
	Stabilize   bool        `toml:"stabilize"`
	Preset      string      `toml:"preset"` // p1..p7.

	// Behavior flags.
	DryRun      bool `toml:"-"`
	Interactive bool `toml:"-"` // Prompt for options instead of using flags.
	AssumeYes   bool `toml:"-"` // Skip the pre-merge confirmation.

	// Display and logging.
	Verbose     bool      `toml:"-"`
	ColorMode   ColorMode `toml:"color"`
	LogFile     string    `toml:"log_file"`
	HistoryPath string    `toml:"history_path"` // Empty disables the run journal.
}

// Default returns a Config matching the interactive menu defaults: hardware
// H.264 at 50 Mbps, keep-original geometry, no stabilization, balanced
// preset.
func Default() Config {
	return Config{
		EncoderPath: PathHardware,
		Codec:       CodecH264,
		Resolution:  "keep",
		FrameRate:   0,
		BitrateMbps: 50,
		Stabilize:   false,
		Preset:      "p4",
		ColorMode:   ColorAuto,
	}
}

// Validate checks enum fields and the input directory. Option-level range
// checks (bitrate, resolution) are the planner's job; Validate only rejects
// values that no later stage could interpret.
func (c *Config) Validate() error {
	switch c.EncoderPath {
	case PathHardware, PathSoftware:
	default:
		return errors.New("invalid encoder path (use 'hardware' or 'software')")
	}

	switch c.Codec {
	case CodecH264, CodecH265, CodecAV1:
	default:
		return errors.New("invalid codec (use 'h264', 'h265' or 'av1')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if !validPreset(c.Preset) {
		return fmt.Errorf("invalid preset %q (use p1..p7)", c.Preset)
	}

	if c.InputDir == "" {
		return errors.New("input directory is required")
	}
	return nil
}

// validPreset reports whether s is one of the seven ordered quality presets.
func validPreset(s string) bool {
	switch s {
	case "p1", "p2", "p3", "p4", "p5", "p6", "p7":
		return true
	}
	return false
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ResolvedOutputDir returns the output directory, defaulting to the
// merged_output subdirectory of the input.
func (c *Config) ResolvedOutputDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return filepath.Join(c.InputDir, "merged_output")
}
