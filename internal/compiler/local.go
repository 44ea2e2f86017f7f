package compiler

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBinary is the local compiler looked up on PATH when none is configured.
const DefaultBinary = "tectonic"

// LocalResult is the captured output of one local compiler run.
type LocalResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// LocalCompiler compiles the document docName inside dir, leaving the PDF in
// dir. A non-nil error means no usable artifact was produced.
type LocalCompiler interface {
	Compile(ctx context.Context, dir, docName string) (LocalResult, error)
}

// ExecCompiler runs a TeX engine as a subprocess.
type ExecCompiler struct {
	Binary string
}

// NewExecCompiler returns an ExecCompiler for binary, or DefaultBinary when
// binary is empty.
func NewExecCompiler(binary string) *ExecCompiler {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &ExecCompiler{Binary: binary}
}

// Args returns the command line arguments for compiling docName into dir.
// Binaries named pdflatex, xelatex or lualatex get the classic flag set;
// anything else is driven like tectonic.
func (c *ExecCompiler) Args(dir, docName string) []string {
	switch engine := strings.TrimSuffix(filepath.Base(c.Binary), ".exe"); engine {
	case "pdflatex", "xelatex", "lualatex":
		return []string{"-interaction=nonstopmode", "-halt-on-error", "-output-directory", dir, docName}
	default:
		return []string{"-X", "compile", docName, "--outdir", dir, "--print"}
	}
}

// Compile runs the compiler with dir as its working directory. Stdout and
// stderr are captured separately and in full. Exit status other than zero,
// a failure to start, or context cancellation all return an error alongside
// whatever output was captured.
func (c *ExecCompiler) Compile(ctx context.Context, dir, docName string) (LocalResult, error) {
	cmd := exec.CommandContext(ctx, c.Binary, c.Args(dir, docName)...)
	cmd.Dir = dir
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		killProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := LocalResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, err
	}
	return result, nil
}

// isSpawnError reports whether err means the process never started.
func isSpawnError(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled)
}
