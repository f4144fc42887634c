package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/patchworklabs/patchwork/internal/server"
	"github.com/patchworklabs/patchwork/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configFile   string
		addr         string
		cacheBackend string
		storeBackend string
		mongoURI     string
		mongoDB      string
		redisAddr    string
		listLimit    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes quilt creation, retrieval, listing, deletion, and SVG
rendering under /api/quilts. Settings come from the config file
(~/.config/patchwork/config.toml by default); flags override it.

Backends:
  cache: file (default), redis, none
  store: memory (default), mongo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			// Flags win over the config file.
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if listLimit > 0 {
				cfg.Server.ListLimit = listLimit
			}
			if cacheBackend != "" {
				cfg.Cache.Backend = cacheBackend
			}
			if redisAddr != "" {
				cfg.Cache.RedisAddr = redisAddr
			}
			if storeBackend != "" {
				cfg.Store.Backend = storeBackend
			}
			if mongoURI != "" {
				cfg.Store.MongoURI = mongoURI
			}
			if mongoDB != "" {
				cfg.Store.MongoDatabase = mongoDB
			}

			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file path (default: ~/.config/patchwork/config.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: :8080)")
	cmd.Flags().StringVar(&cacheBackend, "cache", "", "cache backend: file, redis, none")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for the redis cache backend")
	cmd.Flags().StringVar(&storeBackend, "store", "", "store backend: memory, mongo")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongodb connection URI for the mongo store backend")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "", "mongodb database name for the mongo store backend")
	cmd.Flags().IntVar(&listLimit, "list-limit", 0, "maximum quilts returned by the list endpoint")

	return cmd
}

// runServe wires the backends together and blocks until the context is
// cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, cfg Config) error {
	cc, err := newCacheBackend(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	st, err := newStoreBackend(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Error("store close failed", "error", err)
		}
	}()

	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:      cfg.Server.Addr,
		Runner:    runner,
		Store:     st,
		Logger:    c.Logger,
		ListLimit: cfg.Server.ListLimit,
	})

	c.Logger.Info("starting server",
		"addr", cfg.Server.Addr,
		"cache", cfg.Cache.Backend,
		"store", cfg.Store.Backend)
	printInfo("Listening on %s", cfg.Server.Addr)

	return srv.ListenAndServe(ctx)
}
