package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/portfolio/internal/compiler"
	"github.com/jonathan/portfolio/internal/schemas"
	"github.com/jonathan/portfolio/internal/store"
	"github.com/jonathan/portfolio/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "remote diagnostic", err: &compiler.Diagnostic{Stage: compiler.StageRemote}, expected: http.StatusBadGateway},
		{name: "timeout diagnostic", err: &compiler.Diagnostic{Stage: compiler.StageTimeout}, expected: http.StatusGatewayTimeout},
		{name: "precheck diagnostic", err: &compiler.Diagnostic{Stage: compiler.StagePrecheck}, expected: http.StatusInternalServerError},
		{name: "wrapped diagnostic", err: fmt.Errorf("export: %w", &compiler.Diagnostic{Stage: compiler.StageRemote}), expected: http.StatusBadGateway},
		{name: "not found", err: fmt.Errorf("get: %w", store.ErrNotFound), expected: http.StatusNotFound},
		{name: "validation", err: &ErrValidation{Field: "name", Message: "required"}, expected: http.StatusBadRequest},
		{name: "schema validation", err: &schemas.ValidationError{}, expected: http.StatusBadRequest},
		{name: "too large", err: &http.MaxBytesError{Limit: 10}, expected: http.StatusRequestEntityTooLarge},
		{name: "unavailable", err: &ErrUnavailable{Resource: "resume store"}, expected: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "email", Message: "invalid format"}
	assert.Equal(t, "validation error: email - invalid format", err.Error())
}

func TestValidationError_NamesField(t *testing.T) {
	r := types.Resume{Name: "Jane", Experience: []types.Experience{{Position: "Engineer"}}}
	err := validationError(r.Validate())

	var verr *ErrValidation
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Resume.Experience[0].Company", verr.Field)
	assert.Equal(t, "failed on 'required'", verr.Message)
}

func TestDiagnosticFor(t *testing.T) {
	t.Run("unclassified error becomes internal diagnostic", func(t *testing.T) {
		body := diagnosticFor(errors.New("exec: \"tectonic\": executable file not found in $PATH"), false)
		diag, ok := body.(*compiler.Diagnostic)
		assert.True(t, ok)
		assert.Equal(t, compiler.StageInternal, diag.Stage)
		assert.Contains(t, diag.Hint, "compiler not found")
	})

	t.Run("client errors stay plain", func(t *testing.T) {
		body := diagnosticFor(store.ErrNotFound, false)
		assert.Equal(t, map[string]string{"error": "resume not found"}, body)
	})

	t.Run("stack stripped without exposure", func(t *testing.T) {
		orig := &compiler.Diagnostic{Stage: compiler.StageInternal, Message: "boom", Stack: "goroutine 1"}
		body := diagnosticFor(orig, false).(*compiler.Diagnostic)
		assert.Empty(t, body.Stack)
		assert.Equal(t, "goroutine 1", orig.Stack, "original is not mutated")

		body = diagnosticFor(orig, true).(*compiler.Diagnostic)
		assert.Equal(t, "goroutine 1", body.Stack)
	})
}
