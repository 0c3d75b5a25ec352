// cmd/storefront/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront/internal/chaos"
	"storefront/internal/clients"
	"storefront/internal/config"
	"storefront/internal/session"
	"storefront/internal/storefront"
	"storefront/internal/telemetry"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	endpoint       string
	timeout        time.Duration
	searchDebounce time.Duration
	sessionBackend string
	sessionFile    string
	sessionProfile string
	redisAddr      string
	logLevel       string
	chaosLatency   time.Duration
	chaosFailure   float64

	cfg     config.Client
	logger  *zap.Logger
	tracing telemetry.Shutdown
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Browse products and manage your cart from the terminal",
	Long: `storefront talks to a storefront API: it lists and searches products and
keeps your cart in sync with the service.

Log in once with "storefront login"; the token is kept in the session store
and used by the cart commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = config.NewLogger(logLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		tracing, err = telemetry.Setup(cmd.Context(), "storefront", cfg.OTLPEndpoint, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if tracing != nil {
			_ = tracing(context.Background())
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	cfg = config.LoadClient()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&endpoint, "endpoint", cfg.Endpoint, "storefront API base URL")
	flags.DurationVar(&timeout, "timeout", cfg.Timeout, "per-request timeout")
	flags.DurationVar(&searchDebounce, "search-debounce", cfg.SearchDebounce, "quiet period before a search is sent")
	flags.StringVar(&sessionBackend, "session-backend", cfg.SessionBackend, `where the login is kept: "file" or "redis"`)
	flags.StringVar(&sessionFile, "session-file", cfg.SessionFile, "session file for the file backend")
	flags.StringVar(&sessionProfile, "profile", "default", "session profile for the redis backend")
	flags.StringVar(&redisAddr, "redis-addr", cfg.RedisAddr, "redis address for the redis backend")
	flags.StringVar(&logLevel, "log-level", cfg.LogLevel, "log level")
	flags.DurationVar(&chaosLatency, "chaos-latency", 0, "inject this much latency into every request")
	flags.Float64Var(&chaosFailure, "chaos-failure-rate", 0, "fail this fraction of requests (0-1)")
	flags.MarkHidden("chaos-latency")
	flags.MarkHidden("chaos-failure-rate")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func clientOptions() clients.Options {
	opts := clients.Options{Timeout: timeout, Logger: logger}
	if chaosLatency > 0 || chaosFailure > 0 {
		opts.HTTPClient = &http.Client{
			Timeout:   timeout,
			Transport: chaos.NewTransport(nil, chaos.Fault{Latency: chaosLatency, FailureRate: chaosFailure}),
		}
		logger.Warn("fault injection enabled",
			zap.Duration("latency", chaosLatency),
			zap.Float64("failure_rate", chaosFailure),
		)
	}
	return opts
}

func openSession() (session.Store, func(), error) {
	switch sessionBackend {
	case "file":
		return session.NewFileStore(sessionFile), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:        redisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		return session.NewRedisStore(client, sessionProfile), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", sessionBackend)
	}
}

func loadSession(ctx context.Context) (session.Session, error) {
	store, closeStore, err := openSession()
	if err != nil {
		return session.Session{}, err
	}
	defer closeStore()
	return store.Load(ctx)
}

// newController builds a controller for the current session and loads the
// page state.
func newController(ctx context.Context, hooks storefront.Config) (*storefront.Controller, error) {
	sess, err := loadSession(ctx)
	if err != nil {
		return nil, err
	}

	opts := clientOptions()
	hooks.Catalog = clients.NewCatalogClient(endpoint, opts)
	hooks.Cart = clients.NewCartClient(endpoint, opts)
	hooks.Token = sess.Token
	hooks.SearchDelay = searchDebounce
	hooks.Logger = logger

	c := storefront.New(hooks)
	if err := c.Load(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
