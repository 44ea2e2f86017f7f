package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jonathan/portfolio/internal/buildinfo"
	"github.com/jonathan/portfolio/internal/export"
	"github.com/jonathan/portfolio/internal/types"
)

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Runtime string `json:"runtime"`
	Version string `json:"version"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{
		OK:      true,
		Runtime: buildinfo.Runtime(),
		Version: buildinfo.Version,
	})
}

// handleExport compiles the resume in the request body. The ?health=1 probe
// is answered earlier by withHealthProbe.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	resume, err := s.decodeResume(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.export(w, r, resume)
}

// handleStoredExport compiles a resume loaded from the store.
func (s *Server) handleStoredExport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, &ErrUnavailable{Resource: "resume store"})
		return
	}

	id := chi.URLParam(r, "id")
	resume, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.export(w, r, resume)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request, resume *types.Resume) {
	res, err := s.exporter.Export(r.Context(), resume)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	writeArtifact(w, res)
}

func (s *Server) decodeResume(w http.ResponseWriter, r *http.Request) (*types.Resume, error) {
	if limit := s.cfg.Server.MaxBodyBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	var resume types.Resume
	if err := json.NewDecoder(r.Body).Decode(&resume); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		if errors.Is(err, io.EOF) {
			return nil, &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := resume.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &resume, nil
}

func writeArtifact(w http.ResponseWriter, res *export.Result) {
	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	h.Set("Content-Length", strconv.Itoa(len(res.Data)))
	h.Set("X-Export-Source", string(res.Source))
	h.Set("X-Export-Job", res.JobID)
	if res.Pages > 0 {
		h.Set("X-Page-Count", strconv.Itoa(res.Pages))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func healthRequested(r *http.Request) bool {
	switch r.URL.Query().Get("health") {
	case "1", "true":
		return true
	}
	return false
}
