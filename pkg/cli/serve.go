package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/filterschema/pkg/cli/config"
	httpctrl "github.com/secmon-lab/filterschema/pkg/controller/http"
	"github.com/secmon-lab/filterschema/pkg/usecase"
	"github.com/secmon-lab/filterschema/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var secureCookie bool
	var warm bool
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var restCfg config.REST

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("FILTERSCHEMA_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "secure-cookie",
			Usage:       "Mark the session cookie Secure (serve behind HTTPS)",
			Sources:     cli.EnvVars("FILTERSCHEMA_SECURE_COOKIE"),
			Destination: &secureCookie,
		},
		&cli.BoolFlag{
			Name:        "warm-options",
			Usage:       "Prefetch options of context free fields at startup",
			Value:       true,
			Sources:     cli.EnvVars("FILTERSCHEMA_WARM_OPTIONS"),
			Destination: &warm,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, restCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			tr, registry, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load views")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			restClient, err := restCfg.Configure()
			if err != nil {
				return err
			}

			ucOpts := []usecase.Option{usecase.WithCacheTTL(restCfg.CacheTTL())}
			if restClient != nil {
				ucOpts = append(ucOpts, usecase.WithREST(restClient))
				logging.Default().Info("REST backend enabled", "rest", restCfg)
			} else {
				logging.Default().Warn("REST base URL not configured, only static options are served")
			}

			uc := usecase.New(repo, registry, tr, ucOpts...)

			if warm && restClient != nil {
				uc.Filter.WarmOptions(ctx)
			}

			server := &http.Server{
				Addr: addr,
				Handler: httpctrl.New(uc,
					httpctrl.WithSecureCookie(secureCookie),
				),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"views", len(registry.Keys()),
					"app", appCfg,
					"repository", repoCfg,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
