package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dallagrana/gopromerge/internal/check"
	"github.com/dallagrana/gopromerge/internal/config"
)

// newCheckCommand builds the `check` subcommand: informational diagnostics
// for ffmpeg, ffprobe, and NVENC availability.
func newCheckCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that ffmpeg, ffprobe and NVENC are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			cfg.ColorMode = config.ColorMode(flags.colorMode)
			cfg.Verbose = flags.verbose

			log, err := newLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			if !check.RunCheck(log) {
				return errors.New("required tools are missing")
			}
			return nil
		},
	}
}
