package server

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/jonathan/portfolio/internal/compiler"
)

// withRecover turns a handler panic into a 500 diagnostic.
func (s *Server) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			stack := string(debug.Stack())
			s.logger.Error("handler panic", "path", r.URL.Path, "panic", rec, "stack", stack)

			msg := fmt.Sprint(rec)
			s.errorResponse(w, &compiler.Diagnostic{
				Stage:   compiler.StageInternal,
				Message: msg,
				Hint:    compiler.HintFor(msg),
				Stack:   stack,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
