// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/tfctl/stctl/internal/log"
	"github.com/tfctl/stctl/internal/output"
	"github.com/tfctl/stctl/internal/resolver"
)

// DefaultEngine is the transfer engine used when none is configured.
const DefaultEngine = "azcopy"

// ErrEngineNotFound is returned when the transfer engine is not on PATH.
var ErrEngineNotFound = errors.New("transfer engine not found")

// EngineArgs builds the engine command line for verb ("cp" or "sync"). URIs
// are passed with their tokens.
func EngineArgs(verb string, pair resolver.Pair, recursive bool) []string {
	if verb == "cp" {
		verb = "copy"
	}
	args := []string{verb, pair.Source.URI, pair.Destination.URI}
	if recursive {
		args = append(args, "--recursive")
	}
	return args
}

// RunEngine runs engine with args, streaming its output. Nil writers default
// to stdout and stderr.
func RunEngine(ctx context.Context, engine string, args []string, stdout, stderr io.Writer) error {
	if engine == "" {
		engine = DefaultEngine
	}
	path, err := exec.LookPath(engine)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEngineNotFound, engine, err)
	}

	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	redacted := make([]string, len(args))
	for i, a := range args {
		redacted[i] = output.Redact(a)
	}
	log.Debugf("engine: %s %v", path, redacted)

	c := exec.CommandContext(ctx, path, args...)
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", engine, err)
	}
	return nil
}
