package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bonhomie95/portfolio/internal/content"
	"github.com/bonhomie95/portfolio/internal/mailer"
	"github.com/bonhomie95/portfolio/internal/store"
	"github.com/bonhomie95/portfolio/internal/tui"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	p := content.Default()
	cfg := loadConfig(p.Profile.Email)

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Serve the portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, p)
		},
	}
	bindFlags(root.PersistentFlags(), &cfg)

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, p)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(p)
		},
	})

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			logger.Error().Err(err).Msg("invalid configuration")
			return err
		}
		setLogLevel(cfg.LogLevel)
		return nil
	}
	return root
}

// bindFlags lets flags override values already read from the environment.
func bindFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port (env PORT)")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (env DB_PATH)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (env LOG_LEVEL)")
}

func serve(ctx context.Context, cfg Config, p content.Portfolio) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.DBPath).Msg("opening database")
		return err
	}
	defer st.Close()

	sender := mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ToEmail)
	if !sender.Configured() {
		logger.Warn().Msg("SMTP credentials not configured; contact messages will be stored but not emailed")
	}

	srv, err := newServer(cfg, p, st, sender)
	if err != nil {
		return err
	}
	srv.cleanupOldVisits(ctx)

	router, err := srv.routes()
	if err != nil {
		return fmt.Errorf("build routes: %w", err)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", httpServer.Addr).Str("mode", gin.Mode()).Msg("listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}
	srv.tracking.Wait()
	return nil
}
