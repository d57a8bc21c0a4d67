// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Available reports whether ffmpeg and ffprobe can be found on PATH.
func Available() bool {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return false
		}
	}
	return true
}

// Run executes a compiled ffmpeg-go stream. The process is killed when ctx
// is cancelled. On failure the last stderr line is included in the error.
func Run(ctx context.Context, stream *ffmpeg.Stream) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := stream.OverWriteOutput().Compile()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %w: %s", ErrCommandFailed, err, lastLine(stderr.String()))
		}
		return nil
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
