package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/runeport"
	"github.com/aretw0/runeport/internal/presentation/tui"
	"github.com/aretw0/runeport/pkg/adapters/file"
	httpAdapter "github.com/aretw0/runeport/pkg/adapters/http"
	"github.com/aretw0/runeport/pkg/adapters/redis"
	"github.com/aretw0/runeport/pkg/ports"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP query server",
	Long: `Loads the blueprint documents and answers compatibility queries over HTTP.
With --redis-addr the documents are read from Redis; --seed copies the documents of --dir there first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetString("port")
		quiet, _ := cmd.Flags().GetBool("quiet")

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		ctx := cmdContext(cmd)

		var store ports.DocumentStore = file.New(dir)
		if addr, _ := cmd.Flags().GetString("redis-addr"); addr != "" {
			rs, err := openRedis(ctx, cmd, addr, logger)
			if err != nil {
				return err
			}
			defer rs.Close()
			store = rs
		}

		eng, err := runeport.New(store, runeport.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := loadLenient(ctx, eng, logger); err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           httpAdapter.NewHandler(eng, httpAdapter.WithLogger(logger)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		if !quiet {
			tui.PrintBanner(cmd.ErrOrStderr(), runeport.Version)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr, "documents", len(eng.Documents()))
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

// openRedis connects to the Redis document store and, with --seed, copies
// the documents of --dir into it.
func openRedis(ctx context.Context, cmd *cobra.Command, addr string, logger *slog.Logger) (*redis.Store, error) {
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	prefix, _ := cmd.Flags().GetString("redis-prefix")
	ttl, _ := cmd.Flags().GetDuration("redis-ttl")
	seed, _ := cmd.Flags().GetBool("seed")

	rs := redis.New(addr, password, db, redis.WithPrefix(prefix), redis.WithTTL(ttl))
	if err := rs.Ping(ctx); err != nil {
		_ = rs.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	if seed {
		dir, _ := cmd.Flags().GetString("dir")
		n, err := copyDocuments(ctx, file.New(dir), rs)
		if err != nil {
			_ = rs.Close()
			return nil, err
		}
		logger.Info("seeded redis", "documents", n, "from", dir)
	}
	return rs, nil
}

func copyDocuments(ctx context.Context, from, to ports.DocumentStore) (int, error) {
	names, err := from.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, name := range names {
		data, err := from.Load(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if err := to.Save(ctx, name, data); err != nil {
			return 0, fmt.Errorf("failed to copy %s: %w", name, err)
		}
	}
	return len(names), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	serveCmd.Flags().String("redis-addr", "", "Read documents from Redis at this address")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().String("redis-prefix", redis.DefaultPrefix, "Key prefix of the documents in Redis")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration of seeded documents (0 keeps them)")
	serveCmd.Flags().Bool("seed", false, "Copy the documents of --dir into Redis before serving")
}
