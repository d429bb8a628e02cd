package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/sportradar-client/internal/config"
	"github.com/Sternrassler/sportradar-client/pkg/client"
	"github.com/Sternrassler/sportradar-client/pkg/logging"
	"github.com/Sternrassler/sportradar-client/pkg/metrics"
	"github.com/Sternrassler/sportradar-client/pkg/quota"
	"github.com/Sternrassler/sportradar-client/pkg/soccer"
	"github.com/Sternrassler/sportradar-client/pkg/sportradar"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	redis   *redis.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sportradar",
		Short: "Fetch and flatten Sportradar API data",
		Long: `sportradar calls Sportradar REST endpoints, follows X-Result/X-Max-Results
pagination until every page is merged, and prints the result as JSON or as a
flat CSV/JSON table.

Settings come from flags, SPORTRADAR_* environment variables and an optional
config.yaml, in that order of precedence.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.initialize,
		PersistentPostRunE: a.close,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml or ~/.config/sportradar/config.yaml)")
	flags.String("api-key", "", "Sportradar API key")
	flags.String("product", soccer.Product, "API product, e.g. soccer-extended")
	flags.String("access-level", client.DefaultAccessLevel, "access level (trial or production)")
	flags.String("api-version", client.DefaultVersion, "API version")
	flags.String("language", client.DefaultLanguage, "response language code")
	flags.Duration("timeout", client.DefaultTimeout, "per-request timeout")
	flags.Duration("request-delay", client.DefaultRequestDelay, "pause before every request")
	flags.BoolP("verbose", "v", false, "log every request and page")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatConsole, "log format (console or json)")
	flags.String("redis-addr", "", "Redis address for the payload cache (disabled when empty)")
	flags.Duration("cache-ttl", 0, "lifetime of cached payloads (default 30m)")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address while running")

	root.AddCommand(newFetchCmd(a), newTableCmd(a))
	return root
}

// initialize loads the configuration and prepares logging, metrics and the
// optional Redis connection.
func (a *app) initialize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Setup(logCfg)
	a.logger = logging.NewLogger("cli")

	if cfg.Metrics.Addr != "" {
		if _, err := metrics.Serve(cmd.Context(), cfg.Metrics.Addr, a.logger); err != nil {
			return err
		}
	}

	if cfg.CacheEnabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.logger.Info().
			Str("addr", cfg.Redis.Addr).
			Dur("ttl", cfg.Cache.TTL).
			Msg("Payload cache enabled")
	}

	return nil
}

func (a *app) close(cmd *cobra.Command, args []string) error {
	if a.redis == nil {
		return nil
	}
	if err := a.redis.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}

func (a *app) options() []sportradar.Option {
	if a.redis == nil {
		return nil
	}
	return []sportradar.Option{sportradar.WithCache(a.redis, a.cfg.Cache.TTL)}
}

func (a *app) logQuota(state quota.State) {
	if !state.Known() {
		return
	}
	a.logger.Info().
		Str("quota", state.String()).
		Int("remaining", state.Remaining()).
		Msg("Plan quota")
}
