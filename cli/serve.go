package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/middleware"
	"github.com/junaidrashid-git/storefront/routes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	gw, err := a.gateway(gateway.NewMemoryTokenStore(""))
	if err != nil {
		return err
	}

	hub := events.NewHub(a.log)
	publishers := events.Fanout{hub}
	if a.cfg.Kafka.Enabled {
		kafka, err := a.publisher()
		if err != nil {
			return err
		}
		publishers = append(publishers, kafka)
	}

	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	deps := &middleware.Deps{
		Gateway:     gw,
		Publisher:   publishers,
		Log:         a.log,
		AdminAPIKey: a.cfg.Auth.AdminAPIKey,
	}
	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           routes.NewRouter(deps, hub, a.cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("server listening", zap.String("port", a.cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down")
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.database(); err != nil {
				return err
			}
			printf(cmd, "Database schema is up to date.\n")
			return nil
		},
	}
}
