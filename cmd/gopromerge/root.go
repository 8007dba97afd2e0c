package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dallagrana/gopromerge/internal/check"
	"github.com/dallagrana/gopromerge/internal/config"
	"github.com/dallagrana/gopromerge/internal/pipeline"
	"github.com/dallagrana/gopromerge/internal/planner"
	"github.com/dallagrana/gopromerge/internal/prompt"
	"github.com/dallagrana/gopromerge/internal/segment"
	"github.com/dallagrana/gopromerge/internal/term"
)

// rootFlags holds the raw CLI flag values before they are layered over the
// defaults file into a Config.
type rootFlags struct {
	configPath  string
	outputDir   string
	encoderPath string
	codec       string
	resolution  string
	frameRate   int
	bitrate     int
	stabilize   bool
	preset      string
	interactive bool
	assumeYes   bool
	dryRun      bool
	verbose     bool
	colorMode   string
	logFile     string
	historyPath string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "gopromerge <input-dir>",
		Short:         "Merge GoPro footage chronologically with NVENC or CPU encoding",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, &flags, args[0])
			if err != nil {
				return err
			}
			return runMerge(cmd, cfg)
		},
	}

	defaults := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Defaults file path (TOML)")
	pf.StringVar(&flags.colorMode, "color", string(defaults.ColorMode), "Color output: auto, always, never")
	pf.StringVar(&flags.logFile, "log-file", "", "Append plain log lines to this file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output including raw ffmpeg stderr")
	pf.StringVar(&flags.historyPath, "history-db", "", "Merge history database path ('' = default, 'none' disables)")

	f := rootCmd.Flags()
	f.StringVarP(&flags.outputDir, "output", "o", "", "Output directory (default: <input>/merged_output)")
	f.StringVar(&flags.encoderPath, "encoder", string(defaults.EncoderPath), "Encoder path: hardware (NVENC) or software (CPU)")
	f.StringVar(&flags.codec, "codec", string(defaults.Codec), "Output codec: h264, h265, av1")
	f.StringVar(&flags.resolution, "resolution", defaults.Resolution, "Output resolution: keep, 4k, 1440p, 1080p, 720p, or WxH")
	f.IntVar(&flags.frameRate, "fps", defaults.FrameRate, "Output frame rate (0 = keep original)")
	f.IntVar(&flags.bitrate, "bitrate", defaults.BitrateMbps, "Video bitrate in Mbps")
	f.BoolVar(&flags.stabilize, "stabilize", defaults.Stabilize, "Apply video stabilization")
	f.StringVar(&flags.preset, "preset", defaults.Preset, "Quality preset p1 (fastest) .. p7 (best)")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "Choose encoding options via interactive menus")
	f.BoolVarP(&flags.assumeYes, "yes", "y", false, "Skip the pre-merge confirmation")
	f.BoolVarP(&flags.dryRun, "dry-run", "n", false, "Plan only; print the ffmpeg command without running it")

	rootCmd.AddCommand(newCheckCommand(&flags))
	rootCmd.AddCommand(newHistoryCommand(&flags))

	return rootCmd
}

// buildConfig layers defaults, the TOML file, and changed flags into the
// final Config. Flags win over the file; the file wins over defaults.
func buildConfig(cmd *cobra.Command, flags *rootFlags, inputDir string) (*config.Config, error) {
	cfg := config.Default()

	if err := config.LoadFile(&cfg, configFilePath(flags)); err != nil {
		return nil, err
	}

	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name) {
			apply()
		}
	}
	set("encoder", func() { cfg.EncoderPath = config.EncoderPath(flags.encoderPath) })
	set("codec", func() { cfg.Codec = config.Codec(flags.codec) })
	set("resolution", func() { cfg.Resolution = flags.resolution })
	set("fps", func() { cfg.FrameRate = flags.frameRate })
	set("bitrate", func() { cfg.BitrateMbps = flags.bitrate })
	set("stabilize", func() { cfg.Stabilize = flags.stabilize })
	set("preset", func() { cfg.Preset = flags.preset })
	set("color", func() { cfg.ColorMode = config.ColorMode(flags.colorMode) })
	set("log-file", func() { cfg.LogFile = flags.logFile })
	set("history-db", func() { cfg.HistoryPath = flags.historyPath })

	cfg.InputDir = config.NormalizeDirArg(inputDir)
	cfg.OutputDir = flags.outputDir
	cfg.Interactive = flags.interactive
	cfg.AssumeYes = flags.assumeYes
	cfg.DryRun = flags.dryRun
	cfg.Verbose = flags.verbose

	switch cfg.HistoryPath {
	case "":
		cfg.HistoryPath = defaultHistoryPath()
	case "none":
		cfg.HistoryPath = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runMerge is the root command body: validate the environment, gather
// options, and hand off to the pipeline.
func runMerge(cmd *cobra.Command, cfg *config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	if _, err := os.Stat(cfg.InputDir); err != nil {
		return errors.New("input directory not found: " + cfg.InputDir)
	}

	opts, confirm, err := gatherOptions(cfg)
	if err != nil {
		return err
	}

	// Fail fast before scanning if the tools are missing.
	if err := check.CheckDeps(opts.Path); err != nil {
		return err
	}

	log.Info("=== gopromerge %s ===", version)
	log.Info("In:  %s", cfg.InputDir)
	log.Info("Out: %s", cfg.ResolvedOutputDir())
	if cfg.DryRun {
		log.Warn("DRY RUN - nothing will be written")
	}

	stats, err := pipeline.Run(cmd.Context(), cfg, log, opts, confirm)
	switch {
	case errors.Is(err, pipeline.ErrCanceled):
		log.Warn("Canceled")
		return err
	case errors.Is(err, pipeline.ErrNoSegments):
		log.Error("No video files found in %s", cfg.InputDir)
		return err
	case err != nil:
		return err
	}

	if stats.Excluded > 0 {
		log.Warn("Done with %d file(s) excluded", stats.Excluded)
	}
	return nil
}

// gatherOptions returns the encoding options and the pre-merge confirmer.
// Interactive mode walks the menus; otherwise options come from config and
// the confirmation only appears on a TTY.
func gatherOptions(cfg *config.Config) (planner.EncodingOptions, pipeline.Confirmer, error) {
	if cfg.Interactive {
		if !term.IsTerminal(os.Stdin) {
			return planner.EncodingOptions{}, nil, errors.New("--interactive requires a terminal")
		}
		p := prompt.New(os.Stdin, os.Stdout)
		opts, err := p.Options()
		if err != nil {
			return planner.EncodingOptions{}, nil, err
		}
		return opts, confirmer(p, cfg), nil
	}

	opts, err := planner.OptionsFromConfig(cfg)
	if err != nil {
		return planner.EncodingOptions{}, nil, err
	}
	if cfg.AssumeYes || !term.IsTerminal(os.Stdin) {
		return opts, nil, nil
	}
	return opts, confirmer(prompt.New(os.Stdin, os.Stdout), cfg), nil
}

func confirmer(p *prompt.Prompter, cfg *config.Config) pipeline.Confirmer {
	if cfg.AssumeYes {
		return nil
	}
	return func([]segment.Segment) (bool, error) {
		return p.Confirm("Proceed with merge?", true)
	}
}

// configFilePath returns the explicit --config path or the conventional
// per-user location.
func configFilePath(flags *rootFlags) string {
	if flags.configPath != "" {
		return flags.configPath
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gopromerge", "config.toml")
}

// defaultHistoryPath returns the conventional per-user journal location,
// or "" (journal disabled) when no config dir is resolvable.
func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gopromerge", "history.db")
}
