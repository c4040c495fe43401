package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sigd/internal/signals"
	"sigd/internal/suggest"
	"sigd/pkg/types"
)

// Registry defines the registry methods required by the HTTP API layer.
type Registry interface {
	Listeners() []signals.ListenerInfo
	ListenersFor(target string) []signals.ListenerInfo
	Signals(target string) []string
	Targets() []string
	Owners() []string
	Len() int
	Count(target, signal string) int
	Emit(target, signal string, data signals.Data, policy signals.Policy) error
	RemoveOwner(owner string) int
}

// NewMux returns the HTTP handler exposing reg. Emits triggered over HTTP run
// in-process on the request goroutine.
func NewMux(reg Registry) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsConfig.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsConfig.AllowedOrigins,
			AllowedMethods: defaultIfEmpty(corsConfig.AllowedMethods, []string{"GET", "POST", "DELETE", "OPTIONS"}),
			AllowedHeaders: defaultIfEmpty(corsConfig.AllowedHeaders, []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"}),
			MaxAge:         300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.StatusResponse{
			Targets:   nonNil(reg.Targets()),
			Owners:    nonNil(reg.Owners()),
			Listeners: reg.Len(),
		})
	})

	r.Get("/listeners", func(w http.ResponseWriter, r *http.Request) {
		var infos []signals.ListenerInfo
		if target := r.URL.Query().Get("target"); target != "" {
			infos = reg.ListenersFor(target)
		} else {
			infos = reg.Listeners()
		}
		writeJSON(w, http.StatusOK, types.ListenersResponse{Listeners: toListeners(infos)})
	})

	r.Get("/targets/{target}/signals", func(w http.ResponseWriter, r *http.Request) {
		target := chi.URLParam(r, "target")
		writeJSON(w, http.StatusOK, types.SignalsResponse{Target: target, Signals: nonNil(reg.Signals(target))})
	})

	r.Post("/targets/{target}/signals/{signal}/emit", emitHandler(reg))

	r.Delete("/owners/{owner}", func(w http.ResponseWriter, r *http.Request) {
		owner := chi.URLParam(r, "owner")
		removed := reg.RemoveOwner(owner)
		zlog.Info().Str("owner", owner).Int("removed", removed).Msg("owner deregistered")
		writeJSON(w, http.StatusOK, types.DeregisterResponse{Owner: owner, Removed: removed})
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// emitHandler triggers an in-process emit.
//
// @Summary      Emit a signal
// @Description  Invokes every listener registered for the signal under the target, in registration order.
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        target  path   string  true   "Target id"
// @Param        signal  path   string  true   "Signal name"
// @Param        policy  query  string  false  "strict (default) or best_effort"
// @Success      200  {object}  types.EmitResponse
// @Failure      400  {object}  types.ErrorResponse
// @Failure      415  {object}  types.ErrorResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /targets/{target}/signals/{signal}/emit [post]
func emitHandler(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := chi.URLParam(r, "target")
		signal := chi.URLParam(r, "signal")
		policy, ok := signals.ParsePolicy(r.URL.Query().Get("policy"))
		if !ok {
			writeJSONError(w, http.StatusBadRequest, "policy must be strict or best_effort")
			return
		}
		data, err := readPayload(w, r)
		if err != nil {
			var he HTTPError
			if errors.As(err, &he) {
				writeJSONError(w, he.StatusCode(), he.Error())
				return
			}
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		resp := types.EmitResponse{Target: target, Signal: signal, Policy: policy.String()}
		resp.Matched = reg.Count(target, signal)
		if resp.Matched == 0 {
			if s, ok := suggest.Closest(signal, reg.Signals(target), suggest.DefaultDistance(signal)); ok {
				resp.Suggestion = s
			}
		}

		log := requestLogger(r)
		start := time.Now()
		log.Debug().Str("target", target).Str("signal", signal).Str("policy", resp.Policy).Int("matched", resp.Matched).Msg("emit start")
		if err := reg.Emit(target, signal, data, policy); err != nil {
			observeEmit(resp.Policy, outcomeError)
			status := http.StatusInternalServerError
			var he HTTPError
			if errors.As(err, &he) {
				status = he.StatusCode()
			}
			log.Error().Err(err).Str("target", target).Str("signal", signal).Int("status", status).Dur("dur", time.Since(start)).Msg("emit failed")
			writeJSONError(w, status, err.Error())
			return
		}
		outcome := outcomeOK
		if resp.Matched == 0 {
			outcome = outcomeUnmatched
		}
		observeEmit(resp.Policy, outcome)
		log.Info().Str("target", target).Str("signal", signal).Int("matched", resp.Matched).Dur("dur", time.Since(start)).Msg("emit done")
		writeJSON(w, http.StatusOK, resp)
	}
}

// statusError is an HTTPError raised while reading a request.
type statusError struct {
	msg  string
	code int
}

func (e statusError) Error() string   { return e.msg }
func (e statusError) StatusCode() int { return e.code }

// readPayload decodes the JSON request body into the emit payload. An empty
// body or a JSON null means no payload.
func readPayload(w http.ResponseWriter, r *http.Request) (signals.Data, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	b, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return signals.None, statusError{msg: "request body too large", code: http.StatusRequestEntityTooLarge}
		}
		return signals.None, err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return signals.None, nil
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return signals.None, statusError{msg: "Content-Type must be application/json", code: http.StatusUnsupportedMediaType}
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return signals.None, err
	}
	return signals.Some(v), nil
}

func toListeners(infos []signals.ListenerInfo) []types.Listener {
	out := make([]types.Listener, 0, len(infos))
	for _, l := range infos {
		out = append(out, types.Listener{Owner: l.Owner, Target: l.Target, Signal: l.Signal})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func defaultIfEmpty(s, def []string) []string {
	if len(s) == 0 {
		return def
	}
	return s
}
