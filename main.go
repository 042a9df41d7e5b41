package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"travelplanner/internal/cache"
	intconfig "travelplanner/internal/config"
	router "travelplanner/internal/http"
	"travelplanner/internal/repositories"
	"travelplanner/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "travelplanner",
		Short:         "Server functions for the travel planner app",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "config-check",
		Short: "Print which integrations and webhooks are configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			return configCheck(cmd)
		},
	})
	return root
}

func configCheck(cmd *cobra.Command) error {
	env, err := intconfig.LoadEnv()
	if err != nil {
		return err
	}
	webhooks, err := intconfig.LoadWebhooks(env)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(webhooks))
	for k := range webhooks {
		_, ok := webhooks.Lookup(k)
		keys = append(keys, fmt.Sprintf("%s=%t", k, ok))
	}
	sort.Strings(keys)

	report := map[string]any{
		"integrations": env.Integrations(),
		"webhooks":     keys,
		"db_driver":    env.DBDriver,
	}
	db, err := intconfig.ConnectDB(env)
	if err != nil {
		report["database_error"] = err.Error()
	} else if db != nil {
		defer intconfig.CloseDB()
		tables, err := repositories.CheckSchema(cmd.Context(), db, env.DBDriver)
		if err != nil {
			report["database_error"] = err.Error()
		} else {
			report["tables"] = tables
		}
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func serve() error {
	env, err := intconfig.LoadEnv()
	if err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	webhooks, err := intconfig.LoadWebhooks(env)
	if err != nil {
		return fmt.Errorf("load webhooks: %w", err)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		// Record writes answer 500 until the database is reachable.
		log.Printf("warning: database unavailable: %v", err)
	}
	defer intconfig.CloseDB()

	var geoCache cache.Cache
	if env.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedis(ctx, env.RedisAddr, env.RedisPassword, env.RedisDB)
		cancel()
		if err != nil {
			log.Printf("warning: geocode cache disabled: %v", err)
		} else {
			geoCache = rc
			defer rc.Close()
		}
	}

	svc := services.New(env, webhooks, geoCache, db)
	r := router.NewRouter(env, svc)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      env.UpstreamTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("server stopped")
	return nil
}
