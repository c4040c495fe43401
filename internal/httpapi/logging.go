package httpapi

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"sigd/internal/logging"
)

// zlog is the structured logger of the HTTP layer. Nop until SetLogger.
var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = l }

// defaultRequestLevel is the level of per-request emit logs, read once from
// SIGD_HTTP_LOG_LEVEL.
var defaultRequestLevel = logging.ParseLevel(os.Getenv("SIGD_HTTP_LOG_LEVEL"))

// requestLevel honors ?log= and then X-Log-Level before the process default.
func requestLevel(r *http.Request) zerolog.Level {
	if v := r.URL.Query().Get("log"); v != "" {
		return logging.ParseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return logging.ParseLevel(v)
	}
	return defaultRequestLevel
}

// requestLogger derives the per-request logger: the request level applies on
// top of the installed logger, and the chi request id is attached.
func requestLogger(r *http.Request) zerolog.Logger {
	l := zlog.Level(requestLevel(r))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		l = l.With().Str("request_id", rid).Logger()
	}
	return l
}
