// Package export drives a resume through composition and compilation.
package export

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jonathan/portfolio/internal/archive"
	"github.com/jonathan/portfolio/internal/cache"
	"github.com/jonathan/portfolio/internal/compiler"
	"github.com/jonathan/portfolio/internal/rendering"
	"github.com/jonathan/portfolio/internal/types"
)

// Compiler turns a composed document into an artifact.
type Compiler interface {
	Compile(ctx context.Context, job compiler.Job) (*compiler.Artifact, error)
}

// Result is a finished export.
type Result struct {
	*compiler.Artifact
	Filename string
}

// Options locates the template files.
type Options struct {
	MainTemplate    string
	IncludeTemplate string
	CacheTTL        time.Duration
}

// Service exports resumes to PDF.
type Service struct {
	compiler Compiler
	cache    cache.Cache
	archive  archive.Archiver
	opts     Options
	logger   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the artifact cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithArchive enables artifact archiving.
func WithArchive(a archive.Archiver) Option {
	return func(s *Service) { s.archive = a }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service. Cache and archive default to no-ops.
func NewService(c Compiler, opts Options, options ...Option) *Service {
	s := &Service{
		compiler: c,
		cache:    cache.NewNullCache(),
		archive:  archive.Null{},
		opts:     opts,
		logger:   log.Default(),
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Precheck verifies both template files are present and readable.
func (s *Service) Precheck() error {
	return compiler.Precheck(s.opts.MainTemplate, s.opts.IncludeTemplate)
}

// Render composes r into the main template without compiling.
func (s *Service) Render(r *types.Resume) (string, error) {
	if r == nil {
		return "", &compiler.Diagnostic{Stage: compiler.StageInternal, Message: "resume is nil"}
	}
	if err := s.Precheck(); err != nil {
		return "", err
	}

	doc := *r
	doc.Normalize()
	out, err := rendering.RenderFile(s.opts.MainTemplate, &doc)
	if err != nil {
		var tmplErr *rendering.TemplateError
		if errors.As(err, &tmplErr) {
			return "", &compiler.Diagnostic{Stage: compiler.StagePrecheck, Message: tmplErr.Message, Path: tmplErr.Path, Cause: err}
		}
		return "", &compiler.Diagnostic{Stage: compiler.StageInternal, Message: "failed to render resume", Cause: err}
	}
	return out, nil
}

// Export renders and compiles r. Errors are *compiler.Diagnostic.
func (s *Service) Export(ctx context.Context, r *types.Resume) (*Result, error) {
	document, err := s.Render(r)
	if err != nil {
		return nil, err
	}

	jobID := uuid.NewString()
	logger := s.logger.With("job", jobID)
	filename := SanitizeFilename(r.Name)
	key := cache.Key(document)

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.Warn("cache lookup failed", "err", err)
	} else if ok {
		logger.Info("export served from cache", "file", filename)
		return &Result{
			Artifact: &compiler.Artifact{Data: data, Source: compiler.SourceCache, JobID: jobID},
			Filename: filename,
		}, nil
	}

	start := time.Now()
	art, err := s.compiler.Compile(ctx, compiler.Job{
		ID:       jobID,
		Document: document,
		Assets:   []string{s.opts.IncludeTemplate},
	})
	if err != nil {
		logger.Error("export failed", "err", err)
		return nil, err
	}
	logger.Info("export compiled", "source", art.Source, "pages", art.Pages,
		"bytes", len(art.Data), "duration", time.Since(start).Round(time.Millisecond))

	if err := s.cache.Set(ctx, key, art.Data, s.opts.CacheTTL); err != nil {
		logger.Warn("cache store failed", "err", err)
	}
	if err := s.archive.Save(ctx, cache.Hash([]byte(document)), art.Data); err != nil {
		logger.Warn("archive failed", "err", err)
	}

	return &Result{Artifact: art, Filename: filename}, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename derives the download filename from a resume name: every
// character outside [A-Za-z0-9._-] becomes "_" and ".pdf" is appended.
func SanitizeFilename(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "resume"
	}
	return unsafeFilenameChars.ReplaceAllString(name, "_") + ".pdf"
}
