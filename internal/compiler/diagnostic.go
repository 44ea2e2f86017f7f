// Package compiler turns a composed LaTeX document into a PDF, trying a local
// compiler first and a remote compilation service second.
package compiler

import (
	"fmt"
	"strings"
)

// Stage names the step at which an export failed.
type Stage string

// Failure stages.
const (
	StagePrecheck Stage = "precheck"
	StageLocal    Stage = "local"
	StageRemote   Stage = "remote"
	StageTimeout  Stage = "timeout"
	StageInternal Stage = "internal"
)

// LocalFailure records why the local compiler did not produce an artifact.
type LocalFailure struct {
	Error       string `json:"error,omitempty"`
	Stdout      string `json:"stdout,omitempty"`
	Stderr      string `json:"stderr,omitempty"`
	ExitCode    int    `json:"exitCode"`
	TimedOut    bool   `json:"timedOut,omitempty"`
	SpawnFailed bool   `json:"spawnFailed,omitempty"`
}

func (f *LocalFailure) reason() string {
	switch {
	case f.TimedOut:
		return "timeout"
	case f.SpawnFailed:
		return "spawn"
	default:
		return "exit"
	}
}

// log joins everything the local attempt wrote, for hint matching.
func (f *LocalFailure) log() string {
	if f == nil {
		return ""
	}
	return strings.Join([]string{f.Error, f.Stderr, f.Stdout}, "\n")
}

// Diagnostic is the structured error returned when no artifact could be
// produced. It is safe to serialize to callers.
type Diagnostic struct {
	Stage        Stage         `json:"stage"`
	Message      string        `json:"error"`
	Path         string        `json:"path,omitempty"`
	RawLog       string        `json:"rawLog,omitempty"`
	Hint         string        `json:"hint,omitempty"`
	Local        *LocalFailure `json:"local,omitempty"`
	RemoteStatus int           `json:"remoteStatus,omitempty"`
	RemoteBody   string        `json:"remoteBody,omitempty"`
	Stack        string        `json:"stack,omitempty"`
	Cause        error         `json:"-"`
}

func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf("%s: %s", d.Stage, d.Message)
	if d.RemoteStatus != 0 {
		msg += fmt.Sprintf(" (remote status %d)", d.RemoteStatus)
	}
	if d.Cause != nil {
		msg += ": " + d.Cause.Error()
	}
	return msg
}

func (d *Diagnostic) Unwrap() error {
	return d.Cause
}
