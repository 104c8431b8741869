package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"golang-stock-intel/internal/pipeline/config"
	delivery "golang-stock-intel/internal/pipeline/delivery/http"
	"golang-stock-intel/internal/pipeline/delivery/scheduler"
	_ "golang-stock-intel/internal/pipeline/docs"
	"golang-stock-intel/pkg/logger"
	"golang-stock-intel/pkg/utils"
)

var (
	configPath string
	runDate    string
	runForce   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the read API and the daily scheduler",
	Run:   runServe,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Starts the daily scheduler without the API",
	Run:   runSchedule,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the pipeline once and exits",
	Run:   runOnce,
}

// bootstrap loads configuration and wires the application. Failures here are fatal.
func bootstrap(ctx context.Context) (*application, *logger.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables and config file")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger.Info("Starting stock pipeline",
		logger.Field("name", cfg.App.Name),
		logger.StringField("symbol", cfg.Stock.Symbol),
	)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", logger.ErrorField(err))
	}
	return app, appLogger
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runDate != "" {
		if err := utils.ValidateDate(runDate); err != nil {
			log.Fatalf("Invalid --date: %v", err)
		}
	}

	app, appLogger := bootstrap(ctx)
	defer func() { _ = appLogger.Sync() }()
	defer app.Close()

	report, err := app.pipeline.RunDaily(ctx, runDate, runForce)
	if report != nil {
		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
	}
	if err != nil {
		appLogger.Error("Pipeline run failed", logger.ErrorField(err))
		app.Close()
		_ = appLogger.Sync()
		os.Exit(1)
	}
}

func runSchedule(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, appLogger := bootstrap(ctx)
	defer func() { _ = appLogger.Sync() }()
	defer app.Close()

	sched := startScheduler(ctx, app)

	<-ctx.Done()
	appLogger.Info("Shutting down scheduler...")
	sched.Stop()
	appLogger.Info("Scheduler exiting")
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, appLogger := bootstrap(ctx)
	defer func() { _ = appLogger.Sync() }()
	defer app.Close()

	sched := startScheduler(ctx, app)

	e := delivery.NewServer(app.reports, app.pipeline, appLogger)

	go func() {
		addr := fmt.Sprintf("%s:%d", app.cfg.API.Host, app.cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	sched.Stop()

	appLogger.Info("Server exiting")
}

func startScheduler(ctx context.Context, app *application) *scheduler.Scheduler {
	loc, err := utils.LoadLocation(app.cfg.Stock.Timezone)
	if err != nil {
		app.logger.Fatal("Invalid stock timezone", logger.ErrorField(err))
	}

	sched, err := scheduler.NewScheduler(ctx, app.pipeline, app.cfg.Scheduler.RunHour, loc, app.logger)
	if err != nil {
		app.logger.Fatal("Failed to create scheduler", logger.ErrorField(err))
	}

	if app.cfg.Scheduler.RunOnStart {
		sched.RunInBackground()
	}
	sched.Start()
	app.logger.Info("Next scheduled run", logger.Field("at", sched.NextRun()))
	return sched
}

// @title Stock Intelligence API
// @version 1.0
// @description Read API over daily stock observations and their AI analyses.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "pipeline"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	runCmd.Flags().StringVar(&runDate, "date", "", "Trading day to process (YYYY-MM-DD), defaults to yesterday")
	runCmd.Flags().BoolVar(&runForce, "force", false, "Re-analyse even when an analysis already exists")

	rootCmd.AddCommand(serveCmd, scheduleCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing pipeline CLI: %s\n", err)
		os.Exit(1)
	}
}
