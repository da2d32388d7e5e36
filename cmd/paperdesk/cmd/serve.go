package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/paperdesk/quotes"
	"github.com/rustyeddy/paperdesk/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the paper-trading desk API server",
	Long: `Start the local JSON API server with live quote streaming.

The server exposes the portfolio, trading, analysis and market-data
endpoints under /api, plus a WebSocket quote stream at /ws/quotes.

Example:
  paperdesk serve
  paperdesk serve --addr :9000 --config desk.yaml`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := openDesk()
	if err != nil {
		return err
	}
	defer d.Close()

	addr := d.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	interval, err := d.cfg.Quotes.ParseInterval()
	if err != nil {
		return fmt.Errorf("quotes interval: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := quotes.NewHub(d.store, d.cfg.Quotes.Symbols, interval, d.logger)
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(d.engine, d.portfolio, d.detector, d.store, hub, d.logger).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		d.logger.Info("server listening", "addr", addr, "db", d.cfg.Database.Path)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		d.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
