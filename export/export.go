// SPDX-License-Identifier: EPL-2.0

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/audsr/audio"
	"github.com/ik5/audsr/formats/mp3"
	"github.com/ik5/audsr/formats/wav"
)

// RunDirLayout formats the per-run output directory (day_month_year_h_m_s).
const RunDirLayout = "02_01_2006_15_04_05"

// RunDir returns the output directory of a run started at now.
func RunDir(base string, now time.Time) string {
	return filepath.Join(base, now.Format(RunDirLayout))
}

// Paths lists the files written for one input.
type Paths struct {
	WAV string
	MP3 string
}

// Exporter writes merged audio as {name}_processed.wav and
// {name}_processed.mp3 into Dir.
type Exporter struct {
	Dir string
	// MP3Bitrate defaults to mp3.DefaultBitrate.
	MP3Bitrate string
}

// PathsFor returns the destination files for name without writing them.
func (e *Exporter) PathsFor(name string) Paths {
	base := filepath.Join(e.Dir, name+"_processed")
	return Paths{WAV: base + ".wav", MP3: base + ".mp3"}
}

// Export writes both files, creating Dir when needed. The lossless WAV is
// written first so it survives an MP3 encoder failure.
func (e *Exporter) Export(ctx context.Context, name string, buf *audio.Buffer) (Paths, error) {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("creating output directory: %w", err)
	}

	paths := e.PathsFor(name)

	if err := wav.WriteFile(paths.WAV, buf); err != nil {
		return Paths{}, err
	}

	bitrate := e.MP3Bitrate
	if bitrate == "" {
		bitrate = mp3.DefaultBitrate
	}
	if err := mp3.WriteFile(ctx, paths.MP3, buf, bitrate); err != nil {
		return Paths{WAV: paths.WAV}, err
	}

	return paths, nil
}
