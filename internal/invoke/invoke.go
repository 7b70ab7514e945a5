// Package invoke runs delegated tools (phpDocumentor, Composer) as child
// processes with their output attached to the caller's streams.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/thellimist/docstrap/internal/logger"
	"github.com/thellimist/docstrap/internal/shellwords"
)

// Command is a fully assembled delegated command. Args are passed to the
// process one element per argument; nothing is interpreted by a shell.
type Command struct {
	Path string
	Args []string

	// Env holds KEY=VALUE entries merged over the parent environment.
	Env []string

	// Dir is the child's working directory; empty means the caller's.
	Dir string
}

// Argv returns Path followed by Args.
func (c Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// Name is the short name used in messages: the base name of the first
// non-interpreter argument when running a phar, otherwise of Path.
func (c Command) Name() string {
	for _, a := range c.Args {
		if strings.HasSuffix(a, ".phar") || strings.HasSuffix(a, ".php") {
			return filepath.Base(a)
		}
	}
	return filepath.Base(c.Path)
}

// String renders the command, env prefix included, for display.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+1)
	for _, e := range c.Env {
		parts = append(parts, shellwords.Quote(e))
	}
	parts = append(parts, shellwords.Join(c.Argv()))
	return strings.Join(parts, " ")
}

// Result describes a finished child process.
type Result struct {
	ExitCode int
}

// DelegatedToolError reports a child process that ran and exited non-zero.
type DelegatedToolError struct {
	Name     string
	ExitCode int
}

func (e *DelegatedToolError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
}

// Runner executes delegated commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec, streaming the child's stdio straight
// to the configured writers.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run blocks until the child exits. A non-zero exit returns the Result along
// with a *DelegatedToolError; failing to start the process returns a plain
// error and ExitCode -1.
func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = mergeEnv(os.Environ(), c.Env)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger.Debug().
		Strs("argv", c.Argv()).
		Strs("env", c.Env).
		Str("dir", c.Dir).
		Msg("starting delegated command")

	err := cmd.Run()
	if err == nil {
		logger.Debug().Str("command", c.Name()).Msg("delegated command finished")
		return Result{}, nil
	}

	if ctx.Err() != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%s stopped: %w", c.Name(), context.Cause(ctx))
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		logger.Debug().Str("command", c.Name()).Int("exit_code", code).Msg("delegated command failed")
		return Result{ExitCode: code}, &DelegatedToolError{Name: c.Name(), ExitCode: code}
	}

	return Result{ExitCode: -1}, fmt.Errorf("start %s: %w", c.Name(), err)
}
