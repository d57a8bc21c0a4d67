// SPDX-License-Identifier: EPL-2.0

package infer

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed worker.py
var workerScript []byte

// WorkerScriptName is the file the embedded worker is written to.
const WorkerScriptName = "audsr_worker.py"

// PythonConfig locates the interpreter and worker script.
type PythonConfig struct {
	// Python is the interpreter, "python3" when empty.
	Python string
	// Script overrides the embedded worker.
	Script string
	// WorkDir receives the embedded worker script.
	WorkDir string
	// Env is appended to the worker environment, e.g. CUDA_VISIBLE_DEVICES=1.
	Env    []string
	Logger *slog.Logger
}

// PythonModel drives a long-lived Python worker that loads the model once
// and answers one JSON request per line on stdin. Calls are serialized.
type PythonModel struct {
	logger *slog.Logger
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	enc    *json.Encoder
	reader *bufio.Reader

	mu     sync.Mutex
	broken error
	closed bool

	stderrWg sync.WaitGroup
	errMu    sync.Mutex
	lastLine string
}

type request struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Params
}

type response struct {
	Ready  bool   `json:"ready"`
	OK     bool   `json:"ok"`
	Device string `json:"device"`
	Error  string `json:"error"`
}

// PythonBuilder returns a Builder that starts a PythonModel.
func PythonBuilder(cfg PythonConfig) Builder {
	return func(ctx context.Context, v Variant, device string) (Model, error) {
		return NewPythonModel(ctx, cfg, v, device)
	}
}

// NewPythonModel starts the worker and blocks until the model is loaded.
// The worker is killed when ctx is cancelled.
func NewPythonModel(ctx context.Context, cfg PythonConfig, v Variant, device string) (*PythonModel, error) {
	if _, err := ParseVariant(string(v)); err != nil {
		return nil, err
	}
	if err := ValidateDevice(device); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	python := cfg.Python
	if python == "" {
		python = "python3"
	}

	script := cfg.Script
	if script == "" {
		script = filepath.Join(cfg.WorkDir, WorkerScriptName)
		if err := os.WriteFile(script, workerScript, 0o644); err != nil {
			return nil, fmt.Errorf("writing worker script: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, python, script, "--model_name", string(v), "--device", device)
	cmd.Env = append(os.Environ(), "TOKENIZERS_PARALLELISM=true", "PYTHONUNBUFFERED=1")
	cmd.Env = append(cmd.Env, cfg.Env...)

	m := &PythonModel{
		logger: logger.With("component", "worker"),
		cmd:    cmd,
	}

	var err error
	if m.stdin, err = cmd.StdinPipe(); err != nil {
		return nil, fmt.Errorf("opening worker stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening worker stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("opening worker stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", python, err)
	}

	m.enc = json.NewEncoder(m.stdin)
	m.reader = bufio.NewReader(stdout)
	m.handleStderr(stderr)

	m.logger.Info("loading model", "variant", v, "device", device, "python", python)

	resp, err := m.receive(ctx)
	if err == nil && !resp.Ready {
		err = fmt.Errorf("%w: %s", ErrWorkerFailed, resp.Error)
	}
	if err != nil {
		m.kill()
		_ = m.wait()
		return nil, fmt.Errorf("loading %s model: %w", v, err)
	}

	m.logger.Info("model ready", "device", resp.Device)
	return m, nil
}

// SuperResolve implements Model.
func (m *PythonModel) SuperResolve(ctx context.Context, input, output string, p Params) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("%w: model closed", ErrWorkerFailed)
	}
	if m.broken != nil {
		return m.broken
	}

	if err := m.enc.Encode(request{Input: input, Output: output, Params: p}); err != nil {
		m.broken = fmt.Errorf("%w: sending request: %w (%s)", ErrWorkerFailed, err, m.stderrTail())
		return m.broken
	}

	resp, err := m.receive(ctx)
	if err != nil {
		m.broken = err
		return err
	}
	if !resp.OK {
		// request-level failures leave the worker usable
		return fmt.Errorf("%w: %s", ErrWorkerFailed, resp.Error)
	}
	return nil
}

// receive reads the next protocol line. Anything on stdout that is not a
// JSON object is logged and skipped.
func (m *PythonModel) receive(ctx context.Context) (response, error) {
	type result struct {
		resp response
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		for {
			line, err := m.reader.ReadBytes('\n')
			line = bytes.TrimSpace(line)

			if len(line) > 0 && line[0] == '{' {
				var resp response
				if jerr := json.Unmarshal(line, &resp); jerr != nil {
					ch <- result{err: fmt.Errorf("%w: bad reply %q: %w", ErrWorkerFailed, line, jerr)}
					return
				}
				ch <- result{resp: resp}
				return
			}
			if len(line) > 0 {
				m.logger.Debug(string(line), "stream", "stdout")
			}
			if err != nil {
				ch <- result{err: fmt.Errorf("%w: %w (%s)", ErrWorkerFailed, err, m.stderrTail())}
				return
			}
		}
	}()

	select {
	case r := <-ch:
		return r.resp, r.err
	case <-ctx.Done():
		m.kill()
		<-ch
		return response{}, ctx.Err()
	}
}

func (m *PythonModel) handleStderr(r io.Reader) {
	m.stderrWg.Add(1)
	go func() {
		defer m.stderrWg.Done()

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			m.errMu.Lock()
			m.lastLine = line
			m.errMu.Unlock()
			m.logger.Debug(line, "stream", "stderr")
		}
		if err := scanner.Err(); err != nil {
			m.logger.Warn("reading worker stderr", "error", err)
		}
	}()
}

func (m *PythonModel) stderrTail() string {
	m.errMu.Lock()
	defer m.errMu.Unlock()

	if m.lastLine == "" {
		return "no stderr output"
	}
	return m.lastLine
}

func (m *PythonModel) kill() {
	if m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
}

func (m *PythonModel) wait() error {
	_ = m.stdin.Close()
	m.stderrWg.Wait()
	return m.cmd.Wait()
}

// Close stops the worker by closing its stdin and waits for it to exit.
func (m *PythonModel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	err := m.wait()
	if err != nil && m.broken == nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: %w (%s)", ErrWorkerFailed, err, m.stderrTail())
		}
		return fmt.Errorf("stopping worker: %w", err)
	}
	return nil
}
