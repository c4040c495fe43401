package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sigd/internal/common/fsutil"
	"sigd/internal/config"
	"sigd/internal/hooks"
	"sigd/internal/logging"
	"sigd/internal/signals"
)

// Version is set at build time with -ldflags "-X sigd/internal/cli.Version=...".
var Version = "dev"

// defaultConfigPaths are tried in order when --config is not given.
var defaultConfigPaths = []string{
	"sigd.yaml",
	"sigd.yml",
	"sigd.toml",
	"sigd.hcl",
	"sigd.json",
	"~/.config/sigd/config.yaml",
}

// Options holds the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// runtime is what a command needs after startup: the effective config, a
// logger and a registry with the configured hooks installed.
type runtime struct {
	cfg config.Config
	log zerolog.Logger
	reg *signals.Registry
}

// Execute runs the root command with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the sigd command tree with flag defaults from the environment.
func NewRootCmd() *cobra.Command {
	return buildRootCmdWith(&Options{
		ConfigPath: envStr("SIGD_CONFIG", ""),
		LogLevel:   envStr("SIGD_LOG_LEVEL", ""),
		LogFormat:  envStr("SIGD_LOG_FORMAT", ""),
	})
}

func buildRootCmdWith(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "sigd",
		Short:         "In-process signal registry daemon and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (.yaml|.json|.toml|.hcl; defaults SIGD_CONFIG or ./sigd.*)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug|info|warn|error|off (defaults SIGD_LOG_LEVEL or config)")
	root.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format: console|json (defaults SIGD_LOG_FORMAT or config)")

	root.AddCommand(
		newServeCmd(opts),
		newEmitCmd(opts),
		newListenersCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the sigd version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "sigd", Version)
				return err
			},
		},
	)
	return root
}

// loadConfig reads the config file named by opts, or the first default path
// that exists, then applies flag overrides and defaults.
func loadConfig(opts *Options) (config.Config, error) {
	var cfg config.Config
	path := opts.ConfigPath
	if path == "" {
		path = fsutil.FirstExisting(defaultConfigPaths...)
	}
	if path != "" {
		c, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = c
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.LogFormat = opts.LogFormat
	}
	return cfg.WithDefaults(), nil
}

func setup(opts *Options, logOut io.Writer) (*runtime, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	reg := signals.New(signals.WithLogger(log.With().Str("component", "signals").Logger()))
	if err := hooks.Install(reg, cfg.Hooks, log.With().Str("component", "hooks").Logger()); err != nil {
		return nil, fmt.Errorf("install hooks: %w", err)
	}
	return &runtime{cfg: cfg, log: log, reg: reg}, nil
}

// parseData turns an optional JSON argument into an emit payload.
func parseData(args []string) (signals.Data, error) {
	if len(args) == 0 {
		return signals.None, nil
	}
	var v any
	if err := json.Unmarshal([]byte(args[0]), &v); err != nil {
		return signals.None, fmt.Errorf("invalid JSON data: %w", err)
	}
	return signals.Some(v), nil
}
