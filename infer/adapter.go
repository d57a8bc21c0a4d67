// SPDX-License-Identifier: EPL-2.0

package infer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ik5/audsr/chunk"
	"github.com/ik5/audsr/formats/wav"
	"github.com/ik5/audsr/merge"
)

// Adapter runs chunks through a Model using intermediate WAV files.
type Adapter struct {
	Model  Model
	Params Params
	// TempDir holds the per-chunk input and output files.
	TempDir string
	// KeepDir, when set, receives a copy of every processed chunk.
	KeepDir string
	// TargetRate is the rate model output must have, TargetRate when zero.
	TargetRate int
	Logger     *slog.Logger
}

// TempPath is the model input file for chunk index of name.
func (a *Adapter) TempPath(name string, index int) string {
	return filepath.Join(a.TempDir, fmt.Sprintf("temp_%s_%d.wav", name, index))
}

// OutputPath is the model output file for chunk index of name.
func (a *Adapter) OutputPath(name string, index int) string {
	return filepath.Join(a.TempDir, fmt.Sprintf("processed_%s_%d.wav", name, index))
}

// KeptPath is where a processed chunk is copied when KeepDir is set.
func (a *Adapter) KeptPath(name string, index int) string {
	return filepath.Join(a.KeepDir, fmt.Sprintf("%s_AudioSR_Processed_48K_%d.wav", name, index))
}

// Process writes the chunk to a temporary WAV, runs the model on it and
// decodes the result. Both temporary files are removed whether or not the
// call succeeds.
func (a *Adapter) Process(ctx context.Context, name string, c chunk.Chunk) (merge.Processed, error) {
	logger := a.logger().With("file", name, "chunk", c.Index)

	in, out := a.TempPath(name, c.Index), a.OutputPath(name, c.Index)
	defer removeQuietly(logger, in)
	defer removeQuietly(logger, out)

	if err := wav.WriteFile(in, c.Buffer); err != nil {
		return merge.Processed{}, fmt.Errorf("writing chunk %d: %w", c.Index, err)
	}

	logger.Debug("super-resolving chunk", "duration_ms", c.Buffer.DurationMs(), "input", in)

	if err := a.Model.SuperResolve(ctx, in, out, a.Params); err != nil {
		return merge.Processed{}, fmt.Errorf("chunk %d: %w", c.Index, err)
	}

	buf, err := wav.ReadFile(out)
	if err != nil {
		return merge.Processed{}, fmt.Errorf("reading model output for chunk %d: %w", c.Index, err)
	}

	target := a.TargetRate
	if target == 0 {
		target = TargetRate
	}
	if buf.SampleRate() != target {
		return merge.Processed{}, fmt.Errorf("%w: chunk %d is %d Hz, want %d Hz",
			ErrUnexpectedRate, c.Index, buf.SampleRate(), target)
	}

	if a.KeepDir != "" {
		if err := os.MkdirAll(a.KeepDir, 0o755); err != nil {
			return merge.Processed{}, fmt.Errorf("keeping chunk %d: %w", c.Index, err)
		}
		if err := copyFile(out, a.KeptPath(name, c.Index)); err != nil {
			return merge.Processed{}, fmt.Errorf("keeping chunk %d: %w", c.Index, err)
		}
	}

	logger.Debug("chunk done", "duration_ms", buf.DurationMs())
	return merge.Processed{Index: c.Index, Buffer: buf}, nil
}

func (a *Adapter) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func removeQuietly(logger *slog.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("removing temporary file", "path", path, "error", err)
	}
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()

	_, err = io.Copy(out, in)
	return err
}
