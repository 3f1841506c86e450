package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/josh-kwaku/campus-ledger/internal/handler"
	"github.com/josh-kwaku/campus-ledger/internal/logging"
)

// Recovery turns a handler panic into a 500 envelope. Units of work have
// already rolled back by the time a panic reaches here. http.ErrAbortHandler
// is re-raised so net/http can drop the connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logging.FromContext(r.Context()).Error("panic recovered",
				"error", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			handler.RespondAppError(w, handler.ErrInternalError, nil)
		}()
		next.ServeHTTP(w, r)
	})
}
