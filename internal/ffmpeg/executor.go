package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/dallagrana/gopromerge/internal/planner"
)

// Status is the terminal outcome of one encode invocation.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailed
	StatusCanceled
)

// Result holds the outcome of a single encode run.
type Result struct {
	Status     Status
	Stderr     string
	OutputSize int64 // Size of the produced (or partial) output file.
	Elapsed    time.Duration
}

// EncodeError is the terminal failure of an encode run. Diagnostic text is
// the encoder's own stderr, surfaced verbatim. A partially written output
// is reported, never silently removed: the user decides whether tens of
// gigabytes of partial encode are worth keeping.
type EncodeError struct {
	Stderr      string
	OutputPath  string
	PartialSize int64 // 0 when no output file exists.
}

func (e *EncodeError) Error() string {
	if e.PartialSize > 0 {
		return fmt.Sprintf("ffmpeg encode failed (partial output left at %s)", e.OutputPath)
	}
	return "ffmpeg encode failed"
}

// ExecOptions controls the presentation of one invocation.
type ExecOptions struct {
	Verbose      bool // Tee ffmpeg stderr through in real time.
	ShowProgress bool // Drive a progress bar from the -progress stream.
}

// Execute runs the full encode for a plan: write the concat manifest,
// invoke ffmpeg, and report the terminal status plus output size. The
// manifest is removed on every exit path including failure and
// cancellation; the output file is left wherever ffmpeg left it.
//
// The core treats the encode as one blocking unit of work; no mid-encode
// cancellation is modeled beyond the context, which kills the subprocess.
func Execute(ctx context.Context, plan *planner.MergePlan, opts ExecOptions) Result {
	manifest, err := WriteManifest(filepath.Dir(plan.OutputPath), plan.Inputs)
	if err != nil {
		return Result{Status: StatusFailed, Stderr: err.Error()}
	}
	defer os.Remove(manifest)

	progress := opts.ShowProgress && !opts.Verbose
	args := Build(plan, manifest, opts.Verbose, progress)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if opts.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	start := time.Now()
	var runErr error
	if progress {
		runErr = runWithProgress(cmd, plan)
	} else {
		runErr = cmd.Run()
	}
	elapsed := time.Since(start)

	result := Result{Elapsed: elapsed, Stderr: stderrBuf.String()}
	if fi, err := os.Stat(plan.OutputPath); err == nil {
		result.OutputSize = fi.Size()
	}

	switch {
	case runErr == nil:
		result.Status = StatusSuccess
	case ctx.Err() != nil:
		result.Status = StatusCanceled
	default:
		result.Status = StatusFailed
	}
	return result
}

// runWithProgress starts the command with its stdout attached to the
// -progress pipe and renders a bar against the plan's total duration. An
// unknown total degrades to a spinner.
func runWithProgress(cmd *exec.Cmd, plan *planner.MergePlan) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return cmd.Run()
	}
	if err := cmd.Start(); err != nil {
		return err
	}

	total := int64(-1)
	if plan.DurationKnown && plan.TotalDuration > 0 {
		total = int64(plan.TotalDuration / time.Millisecond)
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription("encoding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionThrottle(250*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	readProgress(stdout, func(out time.Duration) {
		_ = bar.Set64(int64(out / time.Millisecond))
	})

	err = cmd.Wait()
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	return err
}

// StderrTail returns the last n lines of an ffmpeg stderr capture, for
// compact diagnostics after a failure.
func StderrTail(stderr string, n int) []string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return nil
	}
	lines := strings.Split(stderr, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
