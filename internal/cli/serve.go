package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lycosa9527/mindgraph/internal/server"
	"github.com/lycosa9527/mindgraph/pkg/cache"
	"github.com/lycosa9527/mindgraph/pkg/pipeline"
	"github.com/lycosa9527/mindgraph/pkg/store"
)

// serveCommand creates the serve command for running the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		redisPass string
		redisDB   int
		mongoURI  string
		mongoDB   string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server exposes the enhance pipeline over REST:

  POST /api/v1/layout/graph    compute a concept-map layout
  POST /api/v1/layout/tree     compute a mind-map layout
  GET  /api/v1/diagrams/{id}   fetch a persisted diagram
  GET  /health                 liveness probe

By default layouts are cached in the local file cache. With --redis the
cache is shared across instances. With --mongo computed diagrams can be
persisted and fetched again by id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, redisPass, redisDB, mongoURI, mongoDB, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared layout cache (e.g. localhost:6379)")
	cmd.Flags().StringVar(&redisPass, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for diagram persistence (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "mindgraph", "MongoDB database name")

	return cmd
}

// runServe wires the cache, store, and runner together and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr, redisPass string, redisDB int, mongoURI, mongoDB string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var layoutCache cache.Cache
	switch {
	case noCache:
		layoutCache = cache.NewNullCache()
	case redisAddr != "":
		layoutCache, err = cache.NewRedisCache(ctx, redisAddr, redisPass, redisDB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
	default:
		layoutCache, err = newCache(false)
		if err != nil {
			return fmt.Errorf("initialize cache: %w", err)
		}
	}

	runner := pipeline.NewRunner(layoutCache, cfg, c.Logger)
	defer runner.Close()

	var st *store.Store
	if mongoURI != "" {
		st, err = store.Connect(ctx, mongoURI, mongoDB)
		if err != nil {
			return err
		}
		defer st.Close(context.Background())
		c.Logger.Info("using mongodb store", "database", mongoDB)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, st, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	c.Logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
