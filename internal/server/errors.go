// Package server provides the HTTP API for resume exports.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/portfolio/internal/compiler"
	"github.com/jonathan/portfolio/internal/schemas"
	"github.com/jonathan/portfolio/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a backend the request needs is not configured.
type ErrUnavailable struct {
	Resource string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s not configured", e.Resource)
}

// validationError converts validator output into an ErrValidation naming the
// first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: fe.Namespace(), Message: fmt.Sprintf("failed on '%s'", fe.Tag())}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		diag      *compiler.Diagnostic
		valErr    *ErrValidation
		schemaErr *schemas.ValidationError
		tooLarge  *http.MaxBytesError
		unavail   *ErrUnavailable
	)
	switch {
	case errors.As(err, &diag):
		switch diag.Stage {
		case compiler.StageRemote:
			return http.StatusBadGateway
		case compiler.StageTimeout:
			return http.StatusGatewayTimeout
		default:
			return http.StatusInternalServerError
		}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &valErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &unavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// diagnosticFor returns the JSON body for err. Unclassified errors become
// internal diagnostics with a best-effort hint. The stack is dropped unless
// exposeStack is set.
func diagnosticFor(err error, exposeStack bool) any {
	var diag *compiler.Diagnostic
	if !errors.As(err, &diag) {
		if HTTPStatus(err) != http.StatusInternalServerError {
			return map[string]string{"error": err.Error()}
		}
		diag = &compiler.Diagnostic{
			Stage:   compiler.StageInternal,
			Message: err.Error(),
			Hint:    compiler.HintFor(err.Error()),
		}
	}
	if !exposeStack && diag.Stack != "" {
		d := *diag
		d.Stack = ""
		return &d
	}
	return diag
}
