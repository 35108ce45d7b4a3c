package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LilVoxy/sensor_dashboard/config"
	"github.com/LilVoxy/sensor_dashboard/dashboard"
	"github.com/LilVoxy/sensor_dashboard/database"
	"github.com/LilVoxy/sensor_dashboard/dataset"
	"github.com/LilVoxy/sensor_dashboard/metrics"
	"github.com/LilVoxy/sensor_dashboard/routes"
	"github.com/LilVoxy/sensor_dashboard/utils"
	"github.com/LilVoxy/sensor_dashboard/websocket"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var version = "dev"

const shutdownTimeout = 5 * time.Second

const (
	flagConfig     = "config"
	flagData       = "data"
	flagAddr       = "addr"
	flagMySQLDSN   = "mysql-dsn"
	flagMySQLTable = "mysql-table"
	flagDebug      = "debug"
	flagLogStdout  = "log-stdout"
	flagLogFile    = "log-file"
)

func newRootCmd() *cobra.Command {
	defaults := config.Default()
	cmd := &cobra.Command{
		Use:           "sensor_dashboard",
		Short:         "Serve sensor trend charts with per-metric linear regression",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	flags := cmd.Flags()
	flags.String(flagConfig, "", "YAML configuration file")
	flags.String(flagData, defaults.Data.Path, "CSV dataset path (.sz or .snappy for snappy-framed input)")
	flags.String(flagAddr, defaults.Server.Addr, "listen address")
	flags.String(flagMySQLDSN, "", "load readings from MySQL instead of CSV")
	flags.String(flagMySQLTable, defaults.Database.Table, "MySQL table holding the readings")
	flags.Bool(flagDebug, false, "debug logging with source locations")
	flags.Bool(flagLogStdout, false, "write JSON logs to stdout")
	flags.String(flagLogFile, "", "write logs to this file")
	return cmd
}

// resolveConfig loads the optional YAML file and lets explicitly set flags
// override it.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	cfg := config.Default()
	if path, _ := flags.GetString(flagConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if flags.Changed(flagData) {
		cfg.Data.Path, _ = flags.GetString(flagData)
	}
	if flags.Changed(flagAddr) {
		cfg.Server.Addr, _ = flags.GetString(flagAddr)
	}
	if flags.Changed(flagMySQLDSN) {
		cfg.Database.DSN, _ = flags.GetString(flagMySQLDSN)
	}
	if flags.Changed(flagMySQLTable) {
		cfg.Database.Table, _ = flags.GetString(flagMySQLTable)
	}
	if flags.Changed(flagDebug) {
		cfg.Logging.Debug, _ = flags.GetBool(flagDebug)
	}
	if flags.Changed(flagLogStdout) {
		cfg.Logging.Stdout, _ = flags.GetBool(flagLogStdout)
	}
	if flags.Changed(flagLogFile) {
		cfg.Logging.File, _ = flags.GetString(flagLogFile)
	}
	return cfg, nil
}

func loadDataset(ctx context.Context, cfg config.Config) (*dataset.Dataset, error) {
	opts := dataset.LoadOptions{DateLayouts: cfg.Data.DateLayouts}
	if !cfg.UseDatabase() {
		return dataset.LoadCSV(cfg.Data.Path, opts)
	}
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Warn("close database", slog.String("error", err.Error()))
		}
	}(db)
	return dataset.LoadMySQL(ctx, db, cfg.Database.Table, opts)
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := utils.InitLogger(utils.LogOptions{
		Debug:  cfg.Logging.Debug,
		Stdout: cfg.Logging.Stdout,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	slog.Info("starting", slog.String("version", version), slog.Int("pid", os.Getpid()), slog.Any("args", os.Args))

	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "load dataset")
	}
	slog.Info("dataset loaded",
		slog.Int("rows", ds.Len()),
		slog.Int("dropped", ds.Dropped()),
		slog.Int("sensors", len(ds.SensorIDs())))

	m := metrics.New()
	m.SetDataset(ds.Len(), ds.Dropped())
	viewer := dashboard.NewViewer(ds)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wsManager := websocket.NewManager(viewer, m)
	go wsManager.Run(ctx)

	router := mux.NewRouter()
	router.Use(routes.LoggingMiddleware)
	routes.SetupRoutes(router, routes.Deps{
		Viewer:    viewer,
		Observer:  m,
		Websocket: wsManager.HandleConnections,
		Metrics:   m.Handler(),
		Title:     cfg.Dashboard.Title,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", "http://"+server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "serve")
	case sig := <-stop:
		slog.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", slog.String("error", err.Error()))
	}
	cancel()
	<-wsManager.Stopped()
	slog.Info("stopped")
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
