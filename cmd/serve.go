package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marispinelli3322/tutor-copilot/internal/api"
	"github.com/marispinelli3322/tutor-copilot/internal/facilitation"
	"github.com/marispinelli3322/tutor-copilot/internal/report"
	"github.com/marispinelli3322/tutor-copilot/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("report"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		analyzer := report.New(st)

		// Facilitation is optional: without a key the endpoint returns 503
		// and every report still works.
		var gen *facilitation.Generator
		if cfg.Anthropic.Key != "" {
			gen = facilitation.New(st, analyzer, anthropic.NewClient(cfg.Anthropic.Key), facilitation.Options{
				Model:         cfg.Anthropic.Model,
				MaxTokens:     int64(cfg.Anthropic.MaxTokens),
				CacheTTL:      time.Duration(cfg.Facilitation.CacheTTLHours) * time.Hour,
				RatePerMinute: cfg.Facilitation.RatePerMinute,
			})
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.New(st, analyzer, gen).Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
