// Package check provides pre-run dependency validation and the informational
// `check` subcommand for ffmpeg, ffprobe, and NVENC availability.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/dallagrana/gopromerge/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrNoNVENC         = errors.New("ffmpeg has no NVENC support (build with --enable-nvenc or use the software path)")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// rather than importing the logging package so check stays dependency-light
// and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe must be on
// PATH, and the hardware path additionally requires NVENC support in the
// ffmpeg build. Returns a sentinel error on the first failure.
func CheckDeps(path config.EncoderPath) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if path == config.PathHardware && !hasNVENC() {
		return ErrNoNVENC
	}
	return nil
}

// RunCheck runs the informational `check` flow: tool availability, NVENC
// detection, and the NVENC encoders the build ships. It does not stop on
// failure. Returns false when a required tool is missing.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")
	ok := true

	if version, err := toolVersion("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		ok = false
	} else {
		log.Success("ffmpeg: %s", version)
	}

	if version, err := toolVersion("ffprobe"); err != nil {
		log.Error("ffprobe not found")
		ok = false
	} else {
		log.Success("ffprobe: %s", version)
	}

	if !ok {
		return false
	}

	if hasNVENC() {
		log.Success("NVENC support detected")
		listNVENCEncoders(log)
	} else {
		log.Warn("No NVENC support; only the software path will work")
	}
	return true
}

// toolVersion returns the first line of `<tool> -version`.
func toolVersion(tool string) (string, error) {
	out, err := exec.Command(tool, "-version").Output()
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.Index(version, "\n"); idx > 0 {
		version = version[:idx]
	}
	return version, nil
}

// hasNVENC reports whether the ffmpeg build mentions nvenc in its version
// banner, which is enough to tell a CUDA-enabled build apart.
func hasNVENC() bool {
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(out)), "nvenc")
}

// listNVENCEncoders logs every nvenc encoder the build reports.
func listNVENCEncoders(log Logger) {
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.Contains(strings.ToLower(line), "nvenc") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}
