package hooks

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"sigd/internal/logging"
	"sigd/internal/signals"
)

var hooksFiredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "sigd",
		Subsystem: "hooks",
		Name:      "fired_total",
		Help:      "Times a count hook fired",
	},
	[]string{"owner", "target", "signal"},
)

func init() {
	prometheus.MustRegister(hooksFiredTotal)
}

// Install validates all specs and, if every one is valid, registers them in
// order. Nothing is registered when any spec is invalid.
func Install(reg *signals.Registry, specs []Spec, log zerolog.Logger) error {
	var errs []error
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("hook %d (%s): %w", i, s, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	for _, s := range specs {
		reg.Register(s.Owner, s.Target, s.Signal, callback(s, log))
	}
	log.Info().Int("hooks", len(specs)).Msg("hooks installed")
	return nil
}

// Uninstall removes every listener registered by owner.
func Uninstall(reg *signals.Registry, owner string) {
	reg.DeregisterByOwner(owner)
}

func callback(s Spec, log zerolog.Logger) signals.Callback {
	switch s.Action {
	case ActionCount:
		c := hooksFiredTotal.WithLabelValues(s.Owner, s.Target, s.Signal)
		return signals.Func0(func() error {
			c.Inc()
			return nil
		})
	case ActionFail:
		msg := s.Message
		if msg == "" {
			msg = fmt.Sprintf("hook %s failed", s)
		}
		return signals.Func0(func() error { return errors.New(msg) })
	default:
		lvl, _ := logging.ParseLevelStrict(s.Level)
		msg := s.Message
		if msg == "" {
			msg = "signal received"
		}
		return func(d signals.Data) error {
			ev := log.WithLevel(lvl).
				Str("owner", s.Owner).
				Str("target", s.Target).
				Str("signal", s.Signal)
			if v, ok := d.Value(); ok {
				ev = ev.Interface("data", v)
			}
			ev.Msg(msg)
			return nil
		}
	}
}
