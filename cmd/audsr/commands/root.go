// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ik5/audsr/config"
	"github.com/ik5/audsr/infer"
	"github.com/ik5/audsr/pipeline"
)

// BuilderFactory returns the model loader for a run. workDir is a private
// directory that lives until the run ends.
type BuilderFactory func(cfg *config.Config, workDir string, logger *slog.Logger) infer.Builder

// PythonBuilders loads the model through the Python worker.
func PythonBuilders(cfg *config.Config, workDir string, logger *slog.Logger) infer.Builder {
	return infer.PythonBuilder(infer.PythonConfig{
		Python:  cfg.Model.Python,
		Script:  cfg.Model.Script,
		WorkDir: workDir,
		Env:     cfg.Model.Env,
		Logger:  logger,
	})
}

// flagAliases maps the short multi-letter spellings to their long names.
var flagAliases = map[string]string{
	"il": "input_file_list",
	"gs": "guidance_scale",
}

type options struct {
	configPath string

	input     string
	inputList string
	savePath  string
	tempDir   string
	bitrate   string
	keep      bool

	modelName string
	device    string
	python    string
	steps     int
	guidance  float64
	seed      int64

	chunkMs     int
	crossfadeMs int

	logLevel  string
	logFormat string
}

// Execute runs the root command with the Python model.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand(PythonBuilders)
	cmd.SetArgs(normalizeArgs(os.Args[1:]))
	return cmd.ExecuteContext(ctx)
}

// normalizeArgs accepts the single-dash spellings -il and -gs, which pflag
// would otherwise read as -i with value "l" and -g with value "s".
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		for alias := range flagAliases {
			if arg == "-"+alias || strings.HasPrefix(arg, "-"+alias+"=") {
				arg = "-" + arg
				break
			}
		}
		out = append(out, arg)
	}
	return out
}

// NewRootCommand assembles the CLI around build.
func NewRootCommand(build BuilderFactory) *cobra.Command {
	opts := &options{}
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "audsr",
		Short: "Upsample audio to 48 kHz with AudioSR",
		Long: `Upsample audio files to 48 kHz with the AudioSR diffusion model.

Long recordings are split into chunks (45 s by default), each chunk is
super-resolved separately and the results are joined with a short
crossfade. Every input is written as {name}_processed.wav and
{name}_processed.mp3 under a timestamped directory of the save path.

Settings can come from a YAML file (--config); flags given on the
command line override it. The list and guidance flags may be written
as -il/--il and -gs/--gs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, build)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if long, ok := flagAliases[name]; ok {
			name = long
		}
		return pflag.NormalizedName(name)
	})

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")

	fs.StringVarP(&opts.input, "input_audio_file", "i", "", "audio file to process")
	fs.StringVar(&opts.inputList, "input_file_list", "", "file listing one input path per line (also --il)")
	fs.StringVarP(&opts.savePath, "save_path", "s", def.Output.SavePath, "base output directory")
	fs.StringVar(&opts.tempDir, "temp_dir", def.Output.TempDir, "directory for intermediate chunk files")
	fs.StringVar(&opts.bitrate, "mp3_bitrate", def.Output.MP3Bitrate, "MP3 export bitrate")
	fs.BoolVar(&opts.keep, "keep_chunks", false, "keep every processed chunk next to the results")

	fs.StringVar(&opts.modelName, "model_name", def.Model.Name, "checkpoint: basic or speech")
	fs.StringVarP(&opts.device, "device", "d", def.Model.Device, "inference device: auto, cpu, cuda[:N] or mps")
	fs.StringVar(&opts.python, "python", def.Model.Python, "Python interpreter with audiosr installed")
	fs.IntVar(&opts.steps, "ddim_steps", def.Model.Steps, "number of sampling steps")
	fs.Float64Var(&opts.guidance, "guidance_scale", def.Model.GuidanceScale, "classifier-free guidance scale (also --gs)")
	fs.Int64Var(&opts.seed, "seed", def.Model.Seed, "random seed")

	fs.IntVar(&opts.chunkMs, "chunk_ms", def.Chunk.MaxMs, "longest chunk in milliseconds")
	fs.IntVar(&opts.crossfadeMs, "crossfade_ms", def.Chunk.CrossfadeMs, "crossfade between chunks in milliseconds")

	fs.StringVar(&opts.logLevel, "log_level", def.Logging.Level, "debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log_format", def.Logging.Format, "text or json")

	return cmd
}

// loadConfig reads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func loadConfig(fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	set("input_audio_file", func() { cfg.Input.File = opts.input })
	set("input_file_list", func() { cfg.Input.List = opts.inputList })
	set("save_path", func() { cfg.Output.SavePath = opts.savePath })
	set("temp_dir", func() { cfg.Output.TempDir = opts.tempDir })
	set("mp3_bitrate", func() { cfg.Output.MP3Bitrate = opts.bitrate })
	set("keep_chunks", func() { cfg.Output.KeepChunks = opts.keep })
	set("model_name", func() { cfg.Model.Name = opts.modelName })
	set("device", func() { cfg.Model.Device = opts.device })
	set("python", func() { cfg.Model.Python = opts.python })
	set("ddim_steps", func() { cfg.Model.Steps = opts.steps })
	set("guidance_scale", func() { cfg.Model.GuidanceScale = opts.guidance })
	set("seed", func() { cfg.Model.Seed = opts.seed })
	set("chunk_ms", func() { cfg.Chunk.MaxMs = opts.chunkMs })
	set("crossfade_ms", func() { cfg.Chunk.CrossfadeMs = opts.crossfadeMs })
	set("log_level", func() { cfg.Logging.Level = opts.logLevel })
	set("log_format", func() { cfg.Logging.Format = opts.logFormat })

	return cfg, nil
}

// run validates cfg, loads the model once and processes every input.
// Nothing expensive happens before validation succeeds.
func run(ctx context.Context, cfg *config.Config, build BuilderFactory) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := cfg.Files()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: %s lists no files", config.ErrNoInput, cfg.Input.List)
	}

	logger, closeLog, err := initLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := os.MkdirAll(cfg.Output.TempDir, 0o755); err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	workDir, err := os.MkdirTemp(cfg.Output.TempDir, "worker-")
	if err != nil {
		return fmt.Errorf("creating worker directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	model, err := build(cfg, workDir, logger)(ctx, cfg.Model.Variant(), cfg.Model.Device)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, model, logger)
	if err != nil {
		_ = model.Close()
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			logger.Warn("cleanup failed", "error", err)
		}
	}()

	start := time.Now()
	logger.Info("starting run", "files", len(files), "output", p.OutputDir())

	err = p.Run(ctx, files)
	logger.Info("run finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return err
}
