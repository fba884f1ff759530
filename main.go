package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/careerinsights/internal/config"
	"github.com/muhammadolammi/careerinsights/internal/identity"
	"github.com/muhammadolammi/careerinsights/internal/logger"
	"github.com/muhammadolammi/careerinsights/internal/scheduler"
	"github.com/muhammadolammi/careerinsights/internal/server"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "careerinsights",
		Short:         "AI generated industry insights with a weekly refresh",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), refreshCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads config and the logger, then wires the shared dependencies.
func setup(ctx context.Context) (*apiConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app, err := newAPIConfig(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return app, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the weekly refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Log.Sync()
			defer app.Close()

			cfg := app.Config
			if err := cfg.ValidateServe(); err != nil {
				return err
			}
			verifier, err := identity.NewVerifier(cfg.Clerk.JWTKey, cfg.Clerk.AuthorizedParties)
			if err != nil {
				return err
			}
			provider := identity.NewClerkProvider(verifier, identity.NewClerkClient(cfg.Clerk.APIURL, cfg.Clerk.SecretKey, nil))

			sched := scheduler.New(app.Service, app.Locker, cfg.RefreshSchedule, app.Log)
			if err := sched.Start(ctx); err != nil {
				return err
			}
			defer sched.Stop()

			srv := server.New(app.Service, provider, app.Log, version)
			return srv.ListenAndServe(ctx, ":"+cfg.Port)
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Regenerate every stored industry insight once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := setup(ctx)
			if err != nil {
				return err
			}
			defer app.Log.Sync()
			defer app.Close()

			sched := scheduler.New(app.Service, app.Locker, app.Config.RefreshSchedule, app.Log)
			ran, err := sched.RunOnce(ctx)
			if err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
			if !ran {
				app.Log.Info("refresh skipped, another instance holds the lock")
			}
			return nil
		},
	}
}
