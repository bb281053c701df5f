package serve

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/omarcoswillian/monitora-prymo-sub000/docs"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/config"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/events"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/history"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/incidents"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
	monitorhttp "github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor/http"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/notifications"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/pages"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/reports"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/scheduler"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/settings"
)

// Command returns the serve subcommand
func Command(logger *logger.Logger) *cobra.Command {
	var (
		port         int
		dbPath       string
		configPath   string
		useScheduler bool
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the monitoring API server",
		Long: `Start the HTTP API server and the background check scheduler.
For example:
  monitora serve --port 8100`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load(configPath)
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Listen.Port = port
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = dbPath
			}
			if cmd.Flags().Changed("scheduler") {
				cfg.Scheduler.Enabled = useScheduler
			}

			if err := run(cfg, logger); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8100, "Port to run the HTTP server on")
	serveCmd.Flags().StringVar(&dbPath, "db", "data/monitora.db", "Path to SQLite database file")
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	serveCmd.Flags().BoolVar(&useScheduler, "scheduler", true, "Run the background check scheduler")

	return serveCmd
}

func run(cfg *config.Config, logger *logger.Logger) error {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	queries := db.New(database)
	ctx := context.Background()

	// Services
	pagesService := pages.NewService(queries, logger)
	historyService := history.NewService(queries, logger)
	incidentsService := incidents.NewService(queries, logger)
	settingsService := settings.NewSettingsService(queries, logger)
	notificationService := notifications.NewService(queries, logger)
	eventsService := events.NewService(queries, logger, events.DefaultConfig())
	defer eventsService.Close()

	if _, err := settingsService.InitializeDefaultSettings(ctx); err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}

	monitorService := monitor.NewService(monitor.ServiceDeps{
		History:  historyService,
		Status:   pagesService,
		Incident: incidentsService,
		Events:   eventsService,
		Policies: settingsService,
		Notifier: notificationService,
		Logger:   logger,
	})

	reportsService := reports.NewService(queries, cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)

	// Scheduler
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(monitorService, pagesService, settingsService, logger)
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer sched.Stop()
	} else {
		logger.Info("Scheduler disabled, checks run only on demand")
	}

	router := setupRouter(
		pages.NewHandler(pagesService),
		history.NewHandler(historyService, logger),
		incidents.NewHandler(incidentsService, logger),
		events.NewHandler(eventsService, logger),
		settings.NewHandler(settingsService, logger),
		notifications.NewHandler(notificationService, logger),
		reports.NewHandler(reportsService, logger),
		monitorhttp.NewHandler(monitorService, pagesService, pagesService, logger),
	)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Listen.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", cfg.Listen.Port, "db", cfg.Database.Path)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

func setupRouter(handlers ...routeRegistrar) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		for _, handler := range handlers {
			handler.RegisterRoutes(r)
		}
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
