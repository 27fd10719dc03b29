package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-go/internal/adapters/api"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-go/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/config"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/database"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/logging"
	"github.com/andrescamacho/spacetraders-go/internal/infrastructure/pidfile"
	"github.com/andrescamacho/spacetraders-go/internal/supervisor"
)

var (
	forceFlag  bool
	configPath string
)

func main() {
	root := &cobra.Command{
		Use:   "spacetraders-daemon",
		Short: "Runs the autonomous SpaceTraders fleet supervisor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.Flags().BoolVar(&forceFlag, "force", false, "Kill any existing daemon and start a new one")
	root.Flags().StringVar(&configPath, "config", "", "Path to config file (defaults to ./config.yaml)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("SpaceTraders Daemon")
	fmt.Println("====================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(configPath)

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		if !forceFlag {
			return fmt.Errorf("failed to acquire PID file lock: %w\nUse --force to kill the existing daemon", err)
		}
		fmt.Println("Force mode enabled - attempting to kill existing daemon...")
		if killErr := pf.KillExisting(); killErr != nil {
			return fmt.Errorf("failed to kill existing daemon: %w", killErr)
		}
		if err := pf.Acquire(); err != nil {
			return fmt.Errorf("failed to acquire PID file lock after killing existing daemon: %w", err)
		}
	}
	defer func() {
		if err := pf.Release(); err != nil {
			fmt.Printf("warning: failed to release PID file: %v\n", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected and migrated")

	startMetrics(cfg)

	gw := api.NewGateway(
		api.WithBaseURL(cfg.API.BaseURL),
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)
	store := persistence.NewGormGateway(db)
	clock := shared.NewRealClock()

	sup := supervisor.New(gw, store, db, cfg, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	logger := logging.NewStdLogger("daemon")
	ctx = logging.WithLogger(ctx, logger)

	fmt.Println("Daemon is running. Press Ctrl+C to stop")
	if err := sup.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervisor stopped: %w", err)
	}

	fmt.Println("Daemon stopped")
	return nil
}

// startMetrics wires the Prometheus registry and HTTP exporter the same way
// the teacher's DaemonServer.startMetricsServer does, pushed up into the
// composition root since this daemon has no gRPC server of its own.
func startMetrics(cfg *config.Config) {
	if !cfg.Metrics.Enabled {
		return
	}

	metrics.InitRegistry()

	shipCollector := metrics.NewShipMachineMetricsCollector()
	if err := shipCollector.Register(); err != nil {
		fmt.Printf("warning: failed to register ship metrics: %v\n", err)
	} else {
		metrics.SetGlobalShipCollector(shipCollector)
	}

	financialCollector := metrics.NewFinancialMetricsCollector()
	if err := financialCollector.Register(); err != nil {
		fmt.Printf("warning: failed to register financial metrics: %v\n", err)
	} else {
		metrics.SetGlobalFinancialCollector(financialCollector)
	}

	apiCollector := metrics.NewAPIMetricsCollector()
	if err := apiCollector.Register(); err != nil {
		fmt.Printf("warning: failed to register API metrics: %v\n", err)
	} else {
		metrics.SetGlobalAPICollector(apiCollector)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{EnableOpenMetrics: true}))
	addr := fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port)
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics server error: %v\n", err)
		}
	}()
	fmt.Printf("Metrics server listening on %s%s\n", addr, cfg.Metrics.Path)
}
