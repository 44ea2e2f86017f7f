package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Source identifies where an artifact came from.
type Source string

// Artifact sources.
const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)

// DocumentName is the file name the composed document is written to inside
// the scratch directory.
const DocumentName = "resume.tex"

// Default deadlines.
const (
	DefaultLocalTimeout  = 60 * time.Second
	DefaultRemoteTimeout = 60 * time.Second
)

// Artifact is a compiled PDF.
type Artifact struct {
	Data   []byte
	Source Source
	JobID  string
	// Pages is zero when the page count could not be determined.
	Pages int
}

// Job is one compilation request: the composed document and the static files
// it includes. Assets are copied next to the document by base name.
type Job struct {
	ID       string
	Document string
	Assets   []string
}

// Options configures an Orchestrator.
type Options struct {
	TempDir       string
	LocalTimeout  time.Duration
	RemoteTimeout time.Duration
}

// Orchestrator runs the local compiler and falls back to the remote one.
type Orchestrator struct {
	local  LocalCompiler
	remote RemoteClient
	opts   Options
	logger *log.Logger
}

// NewOrchestrator creates an Orchestrator. remote may be nil to disable the
// fallback.
func NewOrchestrator(local LocalCompiler, remote RemoteClient, opts Options, logger *log.Logger) *Orchestrator {
	if opts.LocalTimeout <= 0 {
		opts.LocalTimeout = DefaultLocalTimeout
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{local: local, remote: remote, opts: opts, logger: logger}
}

// Precheck verifies every path exists and is readable. It returns a
// precheck Diagnostic naming the first path that is not.
func Precheck(paths ...string) error {
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return &Diagnostic{
				Stage:   StagePrecheck,
				Message: fmt.Sprintf("required template file missing or unreadable: %s", p),
				Path:    p,
				Cause:   err,
			}
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil || info.IsDir() {
			return &Diagnostic{
				Stage:   StagePrecheck,
				Message: fmt.Sprintf("required template file is not a regular file: %s", p),
				Path:    p,
				Cause:   err,
			}
		}
	}
	return nil
}

// Compile produces an Artifact for job or returns a *Diagnostic. The scratch
// directory is removed before Compile returns.
func (o *Orchestrator) Compile(ctx context.Context, job Job) (*Artifact, error) {
	if err := Precheck(job.Assets...); err != nil {
		return nil, err
	}
	for _, asset := range job.Assets {
		if filepath.Base(asset) == DocumentName {
			return nil, &Diagnostic{
				Stage:   StagePrecheck,
				Message: fmt.Sprintf("asset %s would replace the composed document %s", asset, DocumentName),
				Path:    asset,
			}
		}
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	logger := o.logger.With("job", job.ID)

	dir, err := os.MkdirTemp(o.opts.TempDir, "resume-"+job.ID+"-*")
	if err != nil {
		return nil, internalError("failed to create scratch directory", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			logger.Warn("failed to remove scratch directory", "dir", dir, "err", err)
		}
	}()

	if err := prepareScratch(dir, job); err != nil {
		return nil, internalError("failed to prepare scratch directory", err)
	}

	start := time.Now()
	logger.Debug("local compile started", "dir", dir)
	failure, err := o.compileLocal(ctx, dir)
	if err == nil {
		data, err := os.ReadFile(filepath.Join(dir, pdfName(DocumentName)))
		if err != nil {
			return nil, internalError("local compiler exited cleanly but produced no PDF", err)
		}
		logger.Info("local compile succeeded", "duration", time.Since(start).Round(time.Millisecond))
		return o.artifact(logger, dir, data, SourceLocal, job.ID), nil
	}
	if ctx.Err() != nil {
		return nil, &Diagnostic{Stage: StageInternal, Message: "export cancelled", Local: failure, Cause: ctx.Err()}
	}
	logger.Warn("local compile failed, falling back to remote",
		"reason", failure.reason(), "exit", failure.ExitCode, "err", failure.Error)

	if o.remote == nil {
		rawLog := failure.log()
		return nil, &Diagnostic{
			Stage:   StageLocal,
			Message: "local compilation failed and no remote fallback is configured",
			RawLog:  rawLog,
			Hint:    HintFor(rawLog),
			Local:   failure,
			Cause:   err,
		}
	}

	start = time.Now()
	data, err := o.compileRemote(ctx, job.Document)
	if err != nil {
		return nil, o.remoteDiagnostic(ctx, failure, err)
	}
	logger.Info("remote compile succeeded", "duration", time.Since(start).Round(time.Millisecond))

	if err := os.WriteFile(filepath.Join(dir, pdfName(DocumentName)), data, 0o644); err != nil {
		logger.Warn("failed to stage remote artifact", "err", err)
	}
	return o.artifact(logger, dir, data, SourceRemote, job.ID), nil
}

func (o *Orchestrator) compileLocal(ctx context.Context, dir string) (*LocalFailure, error) {
	localCtx, cancel := context.WithTimeout(ctx, o.opts.LocalTimeout)
	defer cancel()

	res, err := o.local.Compile(localCtx, dir, DocumentName)
	if err == nil {
		return nil, nil
	}
	return &LocalFailure{
		Error:       err.Error(),
		Stdout:      res.Stdout,
		Stderr:      res.Stderr,
		ExitCode:    res.ExitCode,
		TimedOut:    errors.Is(err, context.DeadlineExceeded),
		SpawnFailed: isSpawnError(err),
	}, err
}

func (o *Orchestrator) compileRemote(ctx context.Context, document string) ([]byte, error) {
	remoteCtx, cancel := context.WithTimeout(ctx, o.opts.RemoteTimeout)
	defer cancel()
	return o.remote.Compile(remoteCtx, document)
}

func (o *Orchestrator) remoteDiagnostic(ctx context.Context, local *LocalFailure, err error) *Diagnostic {
	rawLog := local.log()
	d := &Diagnostic{
		Stage:   StageRemote,
		Message: "local compilation failed and remote fallback failed",
		Local:   local,
		Cause:   err,
	}

	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		d.RemoteStatus = remoteErr.Status
		d.RemoteBody = remoteErr.Body
		if remoteErr.Body != "" {
			rawLog = strings.TrimSpace(rawLog + "\n" + remoteErr.Body)
		}
	}

	switch {
	case ctx.Err() != nil:
		d.Stage = StageInternal
		d.Message = "export cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		d.Stage = StageTimeout
		d.Message = "compilation timed out"
	}

	d.RawLog = strings.TrimSpace(rawLog)
	d.Hint = HintFor(d.RawLog)
	return d
}

func (o *Orchestrator) artifact(logger *log.Logger, dir string, data []byte, source Source, jobID string) *Artifact {
	a := &Artifact{Data: data, Source: source, JobID: jobID}
	pages, err := CountPages(filepath.Join(dir, pdfName(DocumentName)))
	if err != nil {
		logger.Debug("page count unavailable", "err", err)
		return a
	}
	a.Pages = pages
	return a
}

// prepareScratch copies the assets into dir, then writes the document.
func prepareScratch(dir string, job Job) error {
	for _, asset := range job.Assets {
		if err := copyFile(asset, filepath.Join(dir, filepath.Base(asset))); err != nil {
			return fmt.Errorf("copy %s: %w", asset, err)
		}
	}
	return os.WriteFile(filepath.Join(dir, DocumentName), []byte(job.Document), 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func pdfName(doc string) string {
	return strings.TrimSuffix(doc, filepath.Ext(doc)) + ".pdf"
}

func internalError(msg string, err error) *Diagnostic {
	return &Diagnostic{Stage: StageInternal, Message: msg, Cause: err}
}
