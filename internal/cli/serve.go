package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sigd/internal/config"
	"sigd/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Install configured hooks and serve the HTTP API",
		Example: "  sigd serve --config sigd.yaml --addr :8080",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				rt.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, rt)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envStr("SIGD_ADDR", ""), "HTTP listen address, e.g. :8080 (defaults SIGD_ADDR or config)")
	return cmd
}

// serve runs the HTTP API until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, rt *runtime) error {
	httpapi.SetLogger(rt.log.With().Str("component", "http").Logger())
	httpapi.SetMaxBodyBytes(rt.cfg.MaxBodyBytes)
	var c config.CORS
	if rt.cfg.CORS != nil {
		c = *rt.cfg.CORS
	}
	if origins := splitCSV(envStr("SIGD_CORS_ORIGINS", "")); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
	c.Enabled = c.Enabled || envBool("SIGD_CORS", false)
	httpapi.SetCORS(c)
	srv := &http.Server{
		Addr:              rt.cfg.Addr,
		Handler:           httpapi.NewMux(rt.reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rt.log.Info().
			Str("addr", rt.cfg.Addr).
			Int("listeners", rt.reg.Len()).
			Strs("targets", rt.reg.Targets()).
			Msg("sigd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		rt.log.Error().Err(err).Msg("graceful shutdown error")
		return err
	}
	rt.log.Info().Msg("sigd stopped")
	return nil
}
