// Command gopromerge merges GoPro-style segmented recordings into a single
// chronologically ordered file via ffmpeg.
//
// It resolves capture timestamps, orders the chapters, builds an encode
// plan from the chosen options, and drives one concatenation-and-encode
// invocation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dallagrana/gopromerge/internal/config"
	"github.com/dallagrana/gopromerge/internal/display"
	"github.com/dallagrana/gopromerge/internal/logging"
	"github.com/dallagrana/gopromerge/internal/pipeline"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()

	// Cancel the run on SIGINT/SIGTERM; ffmpeg is killed through the
	// context and the pipeline reports the cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr)
		cancel()
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, pipeline.ErrCanceled) {
			// Distinguish a declined confirmation (normal outcome)
			// from an interrupted encode.
			if ctx.Err() != nil {
				return 1
			}
			return 0
		}
		fmt.Fprintf(os.Stderr, "gopromerge: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds the run logger, printing the banner once colors are
// configured. Bootstrap errors go straight to stderr: the logger does not
// exist yet.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	display.PrintBanner()
	return log, nil
}
