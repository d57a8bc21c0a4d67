// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audsr/chunk"
	"github.com/ik5/audsr/formats/mp3"
	"github.com/ik5/audsr/infer"
	"github.com/ik5/audsr/merge"
)

// Config is the complete run configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Model   ModelConfig   `yaml:"model"`
	Chunk   ChunkConfig   `yaml:"chunking"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig selects the files to process. List wins over File.
type InputConfig struct {
	File string `yaml:"file"`
	List string `yaml:"list"`
}

// OutputConfig controls where results and intermediates go.
type OutputConfig struct {
	// SavePath is the base directory; each run writes into a timestamped
	// subdirectory of it.
	SavePath   string `yaml:"save_path"`
	TempDir    string `yaml:"temp_dir"`
	MP3Bitrate string `yaml:"mp3_bitrate"`
	// KeepChunks copies every processed chunk next to the results.
	KeepChunks bool `yaml:"keep_chunks"`
}

// ModelConfig selects the checkpoint, device, worker and sampling settings.
type ModelConfig struct {
	Name   string `yaml:"name"`
	Device string `yaml:"device"`
	Python string `yaml:"python"`
	// Script replaces the embedded worker script when set.
	Script string `yaml:"script"`
	// Env holds extra KEY=VALUE entries for the worker process.
	Env []string `yaml:"env"`

	infer.Params `yaml:",inline"`
}

// ChunkConfig controls splitting and reassembly.
type ChunkConfig struct {
	MaxMs       int `yaml:"max_ms"`
	CrossfadeMs int `yaml:"crossfade_ms"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			SavePath:   "./output",
			TempDir:    "temp_files",
			MP3Bitrate: mp3.DefaultBitrate,
		},
		Model: ModelConfig{
			Name:   string(infer.VariantBasic),
			Device: "auto",
			Python: "python3",
			Params: infer.DefaultParams(),
		},
		Chunk: ChunkConfig{
			MaxMs:       chunk.DefaultMaxMs,
			CrossfadeMs: merge.DefaultCrossfadeMs,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default values. The result is not validated, since command-line
// flags may still fill in required settings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every section. It runs before the model is loaded so a
// bad invocation fails without paying for model startup.
func (c *Config) Validate() error {
	if err := c.Input.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}
	if err := c.Model.Validate(); err != nil {
		return fmt.Errorf("model config: %w", err)
	}
	if err := c.Chunk.Validate(); err != nil {
		return fmt.Errorf("chunking config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (i *InputConfig) Validate() error {
	if strings.TrimSpace(i.File) == "" && strings.TrimSpace(i.List) == "" {
		return ErrNoInput
	}
	return nil
}

var bitrateRe = regexp.MustCompile(`^[1-9][0-9]*k$`)

func (o *OutputConfig) Validate() error {
	if o.SavePath == "" {
		return fmt.Errorf("%w: save_path cannot be empty", ErrInvalidValue)
	}
	if o.TempDir == "" {
		return fmt.Errorf("%w: temp_dir cannot be empty", ErrInvalidValue)
	}
	if !bitrateRe.MatchString(o.MP3Bitrate) {
		return fmt.Errorf("%w: mp3_bitrate must look like 320k, got %q", ErrInvalidValue, o.MP3Bitrate)
	}
	return nil
}

func (m *ModelConfig) Validate() error {
	if _, err := infer.ParseVariant(m.Name); err != nil {
		return err
	}
	if err := infer.ValidateDevice(m.Device); err != nil {
		return err
	}
	if m.Python == "" {
		return fmt.Errorf("%w: python cannot be empty", ErrInvalidValue)
	}
	return m.Params.Validate()
}

// Variant returns the parsed model name. Call after Validate.
func (m *ModelConfig) Variant() infer.Variant {
	v, _ := infer.ParseVariant(m.Name)
	return v
}

func (ch *ChunkConfig) Validate() error {
	if ch.MaxMs <= 0 {
		return fmt.Errorf("%w: max_ms must be positive, got %d", ErrInvalidValue, ch.MaxMs)
	}
	if ch.CrossfadeMs < 0 || ch.CrossfadeMs >= ch.MaxMs {
		return fmt.Errorf("%w: crossfade_ms must be in [0, %d), got %d", ErrInvalidValue, ch.MaxMs, ch.CrossfadeMs)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: level must be debug, info, warn or error, got %q", ErrInvalidValue, l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: format must be text or json, got %q", ErrInvalidValue, l.Format)
	}
	return nil
}

// Files returns the inputs to process: the entries of the list file when
// one is set, otherwise the single input file.
func (c *Config) Files() ([]string, error) {
	if c.Input.List != "" {
		return ReadList(c.Input.List)
	}
	if c.Input.File != "" {
		return []string{c.Input.File}, nil
	}
	return nil, ErrNoInput
}

// ReadList reads a newline-delimited list of paths.
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input list: %w", err)
	}
	defer f.Close()

	files, err := ParseList(f)
	if err != nil {
		return nil, fmt.Errorf("reading input list %s: %w", path, err)
	}
	return files, nil
}

// ParseList returns the trimmed, non-blank lines of r.
func ParseList(r io.Reader) ([]string, error) {
	var files []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			files = append(files, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
