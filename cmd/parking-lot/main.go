package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"parking-allocator/internal/config"
	"parking-allocator/internal/logging"
	"parking-allocator/internal/parking"
	"parking-allocator/internal/server"
)

func main() {
	cfg := config.Load()

	mode := flag.String("mode", cfg.Mode, "Mode to run: demo, cli, server, or both")
	port := flag.String("port", cfg.Port, "Port for HTTP server")
	flag.Parse()

	cfg.Mode = *mode
	cfg.Port = *port

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		slog.Error("parking-lot failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, in io.Reader, out io.Writer) error {
	if !config.ValidMode(cfg.Mode) {
		return errors.New("invalid mode " + cfg.Mode + ": must be demo, cli, server, or both")
	}

	// The demo writes only its two lines, no telemetry or logging setup.
	if cfg.Mode == config.ModeDemo {
		parking.RunDemo(out)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	telemetry, err := newTelemetry(ctx, cfg)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(telemetry)

	logging.Init(cfg.OTelServiceName, cfg.Environment, cfg.LogLevel)

	strategy, err := parking.StrategyByName(cfg.Strategy)
	if err != nil {
		return err
	}

	prices := parking.PriceTable{
		parking.TwoWheeler:  cfg.PriceTwoWheeler,
		parking.FourWheeler: cfg.PriceFourWheeler,
	}

	lot, err := parking.NewLot(strategy, prices, telemetry)
	if err != nil {
		return err
	}

	logging.Info(ctx, "parking lot ready", "mode", cfg.Mode, "strategy", strategy.Name())

	switch cfg.Mode {
	case config.ModeCLI:
		parking.NewShell(lot, in, out, telemetry).Run(ctx)
		return nil
	case config.ModeServer:
		return runServer(ctx, cfg, lot)
	default:
		return runBoth(ctx, cancel, cfg, lot, telemetry, in, out)
	}
}

func newTelemetry(ctx context.Context, cfg *config.Config) (*parking.TelemetryProvider, error) {
	if !cfg.OTelEnabled {
		return parking.NewTelemetryProviderFromProviders(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider()), nil
	}
	return parking.NewTelemetryProvider(ctx, cfg.OTelServiceName, cfg.OTelEndpoint)
}

func runServer(ctx context.Context, cfg *config.Config, lot *parking.Lot) error {
	srv := server.NewServer(cfg.Port, lot, cfg.OTelServiceName)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	select {
	case err := <-serverDone:
		return ignoreClosed(err)
	case <-ctx.Done():
		logging.Info(context.Background(), "received shutdown signal")
	}

	return shutdownServer(srv)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, lot *parking.Lot, telemetry *parking.TelemetryProvider, in io.Reader, out io.Writer) error {
	srv := server.NewServer(cfg.Port, lot, cfg.OTelServiceName)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan struct{})
	go func() {
		parking.NewShell(lot, in, out, telemetry).Run(ctx)
		close(cliDone)
	}()

	select {
	case err := <-serverDone:
		cancel()
		return ignoreClosed(err)
	case <-cliDone:
		logging.Info(ctx, "CLI exited")
	case <-ctx.Done():
		logging.Info(context.Background(), "received shutdown signal")
	}

	return shutdownServer(srv)
}

func shutdownServer(srv *server.Server) error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func shutdownTelemetry(telemetry *parking.TelemetryProvider) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error("error shutting down telemetry", "error", err)
	}
}
