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

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/database"
	"autodelete-after-play/internal/filesystem"
	"autodelete-after-play/internal/handlers"
	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/metrics"
	"autodelete-after-play/internal/middleware"
	"autodelete-after-play/internal/playback"
	"autodelete-after-play/internal/settings"
	"autodelete-after-play/internal/startup"
)

const (
	metricsInterval = time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	store := settings.NewStore(db, config.SettingsDefaults)
	loadErr := store.Load(context.Background())
	startup.LogSettingsLoaded(store.Get(), loadErr)

	fs := filesystem.NewLocal(config.TrashDir,
		filesystem.WithVolumes(filesystem.NewVolumeResolver(config.MediaVolumes)),
		filesystem.WithObserver(metrics.NewFilesystemObserver()),
	)
	startup.LogTrashInit(fs.TrashDir(), fs.SupportsTrash())

	observer := metrics.NewAutodeleteObserver()
	engine := autodelete.NewEngine(fs,
		autodelete.WithRetry(config.Retry),
		autodelete.WithObserver(observer),
	)
	listener := autodelete.NewListener(playback.NewTracker(), engine, store,
		autodelete.WithListenerObserver(observer),
	)

	metrics.InitializeMetrics()
	buildInfo := startup.GetBuildInfo()
	metrics.AppInfo.WithLabelValues(buildInfo.Version, buildInfo.Commit, buildInfo.GoVersion).Set(1)

	collector := metrics.NewCollector(&listenerStatsAdapter{listener: listener}, config.DatabasePath, metricsInterval)
	collector.Start()

	// Cancelled on shutdown so in-flight retry loops give up.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	h := handlers.New(listener, store, db, handlers.WithBaseContext(baseCtx))
	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           wrapHandler(router, config.LogHealthChecks),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // stop requests wait for the retry loop
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = newMetricsServer(config.MetricsPort)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		handleShutdown(srv, metricsSrv, collector, listener, cancelBase)
		close(done)
	}()

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
	<-done
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/playback/start", h.PlaybackStarted).Methods("POST")
	api.HandleFunc("/playback/stop", h.PlaybackStopped).Methods("POST")
	api.HandleFunc("/playback/sessions", h.ListSessions).Methods("GET")
	api.HandleFunc("/settings", h.GetSettings).Methods("GET")
	api.HandleFunc("/settings", h.UpdateSettings).Methods("PUT")

	return r
}

func wrapHandler(router http.Handler, logHealthChecks bool) http.Handler {
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = logHealthChecks
	return middleware.RequestID(middleware.Logger(loggingConfig)(router))
}

func newMetricsServer(port string) *http.Server {
	serveMux := http.NewServeMux()
	serveMux.Handle("/metrics", promhttp.Handler())
	serveMux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:              ":" + port,
		Handler:           serveMux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// listenerStatsAdapter adapts the listener to metrics.StatsProvider
type listenerStatsAdapter struct {
	listener *autodelete.Listener
}

func (a *listenerStatsAdapter) GetStats() metrics.Stats {
	return metrics.Stats{
		PendingSessions: len(a.listener.PendingSessions()),
		TrashSupported:  a.listener.TrashSupported(),
	}
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector, listener *autodelete.Listener, cancelBase context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	startup.LogShutdownStep("Cancelling pending deletions")
	cancelBase()
	startup.LogShutdownStepComplete("Deletions cancelled")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Discarding pending sessions")
	pending := len(listener.PendingSessions())
	listener.Shutdown()
	startup.LogShutdownStepComplete(fmt.Sprintf("Discarded %d pending session(s)", pending))

	startup.LogShutdownComplete()
}
