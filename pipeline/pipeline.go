// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/audsr"
	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/config"
	"github.com/ik5/audsr/export"
	"github.com/ik5/audsr/infer"
)

// Exporter writes the merged audio of one input.
type Exporter interface {
	Export(ctx context.Context, name string, buf *audio.Buffer) (export.Paths, error)
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithExporter replaces the WAV and MP3 exporter.
func WithExporter(e Exporter) Option {
	return func(p *Pipeline) { p.exporter = e }
}

// WithClock sets the time used to name the output directory.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// Pipeline upscales files one after another with a single loaded model.
type Pipeline struct {
	cfg      *config.Config
	model    infer.Model
	registry *audio.Registry
	adapter  *infer.Adapter
	exporter Exporter
	now      func() time.Time
	logger   *slog.Logger

	runTemp string
	outDir  string
}

// New prepares a run. It creates a private subdirectory of the configured
// temp dir, so concurrent runs never share intermediate files. The model
// is owned by the pipeline from here on and closed by Close.
func New(cfg *config.Config, model infer.Model, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		cfg:      cfg,
		model:    model,
		registry: audsr.NewRegistry(),
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.runTemp = filepath.Join(cfg.Output.TempDir, uuid.NewString())
	if err := os.MkdirAll(p.runTemp, 0o755); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	p.outDir = export.RunDir(cfg.Output.SavePath, p.now())
	if p.exporter == nil {
		p.exporter = &export.Exporter{Dir: p.outDir, MP3Bitrate: cfg.Output.MP3Bitrate}
	}

	p.adapter = &infer.Adapter{
		Model:   model,
		Params:  cfg.Model.Params,
		TempDir: p.runTemp,
		Logger:  logger,
	}
	if cfg.Output.KeepChunks {
		p.adapter.KeepDir = p.outDir
	}

	return p, nil
}

// TempDir is the private directory holding this run's chunk files.
func (p *Pipeline) TempDir() string { return p.runTemp }

// OutputDir is the timestamped directory results are written to.
func (p *Pipeline) OutputDir() string { return p.outDir }

// Close removes the run's temp directory and shuts the model down.
func (p *Pipeline) Close() error {
	var errs []error
	if err := os.RemoveAll(p.runTemp); err != nil {
		errs = append(errs, fmt.Errorf("removing temp directory: %w", err))
	}
	if p.model != nil {
		if err := p.model.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing model: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ProcessFile decodes path, upscales it chunk by chunk and exports the
// merged result.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (export.Paths, error) {
	name := Basename(path)
	logger := p.logger.With("file", name)

	buf, err := audsr.DecodeFile(ctx, p.registry, path)
	if err != nil {
		return export.Paths{}, err
	}
	if buf.Empty() {
		return export.Paths{}, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	logger.Info("loaded audio",
		"sample_rate", buf.SampleRate(),
		"channels", buf.Channels(),
		"duration", buf.Duration())

	opts := audsr.Options{
		ChunkMs:     p.cfg.Chunk.MaxMs,
		CrossfadeMs: p.cfg.Chunk.CrossfadeMs,
		OnChunk: func(done, total int) {
			logger.Info("chunk processed", "done", done, "total", total)
		},
	}

	merged, err := audsr.Upscale(ctx, p.adapter, name, buf, opts)
	if err != nil {
		return export.Paths{}, err
	}

	paths, err := p.exporter.Export(ctx, name, merged)
	if err != nil {
		return paths, fmt.Errorf("exporting %s: %w", name, err)
	}

	logger.Info("saved", "wav", paths.WAV, "mp3", paths.MP3, "duration", merged.Duration())
	return paths, nil
}

// Run processes files in order. A failing file is logged and skipped; the
// returned error joins every failure.
func (p *Pipeline) Run(ctx context.Context, files []string) error {
	var errs []error
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		p.logger.Info("processing file", "path", f, "index", i+1, "total", len(files))
		if _, err := p.ProcessFile(ctx, f); err != nil {
			p.logger.Error("file failed", "path", f, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// Basename is the file name of path up to its first dot, so
// "song.final.mp3" becomes "song".
func Basename(path string) string {
	base := filepath.Base(path)
	name, _, _ := strings.Cut(base, ".")
	if name == "" {
		name, _, _ = strings.Cut(strings.TrimLeft(base, "."), ".")
	}
	return name
}
