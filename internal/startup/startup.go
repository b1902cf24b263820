package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/filesystem"
	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/settings"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	DataDir         string
	Port            string
	MetricsPort     string
	LogHealthChecks bool
	MetricsEnabled  bool
	TrashDir        string
	MediaVolumes    map[string]string
	Retry           autodelete.RetryConfig

	// Derived paths
	DatabasePath string

	// SettingsDefaults apply to every key not yet stored in the database.
	SettingsDefaults settings.Settings
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	dataDir := getEnv("DATA_DIR", "/data")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	trashDir := getEnv("TRASH_DIR", filesystem.DefaultTrashDir())
	volumes := filesystem.ParseVolumes(os.Getenv("MEDIA_VOLUMES"))
	retry := autodelete.RetryConfig{
		MaxAttempts: getEnvInt("DELETE_MAX_ATTEMPTS", autodelete.DefaultMaxAttempts),
		Interval:    getEnvDuration("DELETE_RETRY_INTERVAL", autodelete.DefaultRetryInterval),
	}
	defaults := settingsDefaultsFromEnv()

	logging.Info("  DATA_DIR:              %s", dataDir)
	logging.Info("  PORT:                  %s", port)
	logging.Info("  METRICS_PORT:          %s", metricsPort)
	logging.Info("  METRICS_ENABLED:       %v", metricsEnabled)
	logging.Info("  TRASH_DIR:             %s", displayOrNone(trashDir))
	logging.Info("  MEDIA_VOLUMES:         %s", formatVolumes(volumes))
	logging.Info("  DELETE_MAX_ATTEMPTS:   %d", retry.MaxAttempts)
	logging.Info("  DELETE_RETRY_INTERVAL: %v", retry.Interval)
	logging.Info("  LOG_HEALTH_CHECKS:     %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())
	logging.Info("")
	logging.Info("  Settings defaults (used until changed through the API):")
	logging.Info("    AUTODELETE_PERCENT:  %d", defaults.PercentPlayedRequired)
	logging.Info("    AUTODELETE_FOLDERS:  %s", displayOrNone(defaults.AutoDeleteFolderPaths))
	logging.Info("    AUTODELETE_RECYCLE:  %v", defaults.MoveToRecycleBin)

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	dataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	logging.Info("  Data directory (absolute): %s", dataDir)

	if err := ensureDirectory(dataDir, "data"); err != nil {
		return nil, fmt.Errorf("data directory error: %w", err)
	}

	logging.Debug("  Testing data directory write access...")
	if err := testWriteAccess(dataDir); err != nil {
		return nil, fmt.Errorf("data directory is not writable (required for database): %w", err)
	}
	logging.Info("  [OK] Data directory is writable")

	return &Config{
		DataDir:          dataDir,
		Port:             port,
		MetricsPort:      metricsPort,
		LogHealthChecks:  logHealthChecks,
		MetricsEnabled:   metricsEnabled,
		TrashDir:         trashDir,
		MediaVolumes:     volumes,
		Retry:            retry,
		DatabasePath:     filepath.Join(dataDir, "autodelete.db"),
		SettingsDefaults: defaults,
	}, nil
}

// settingsDefaultsFromEnv builds the settings defaults, letting the
// AUTODELETE_* variables override the built-in ones.
func settingsDefaultsFromEnv() settings.Settings {
	d := settings.Defaults()
	d.PercentPlayedRequired = getEnvInt("AUTODELETE_PERCENT", d.PercentPlayedRequired)
	if err := d.Validate(); err != nil {
		logging.Warn("  Invalid AUTODELETE_PERCENT: %v, using default: %d", err, autodelete.DefaultMinPlayedPercent)
		d.PercentPlayedRequired = autodelete.DefaultMinPlayedPercent
	}
	d.AutoDeleteFolderPaths = getEnv("AUTODELETE_FOLDERS", d.AutoDeleteFolderPaths)
	d.MoveToRecycleBin = getEnvBool("AUTODELETE_RECYCLE", d.MoveToRecycleBin)
	d.DeleteVideo = getEnvBool("AUTODELETE_VIDEO", d.DeleteVideo)
	d.DeleteAudio = getEnvBool("AUTODELETE_AUDIO", d.DeleteAudio)
	d.DeleteImage = getEnvBool("AUTODELETE_IMAGE", d.DeleteImage)
	return d
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

func displayOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func formatVolumes(volumes map[string]string) string {
	if len(volumes) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(volumes))
	for name := range volumes {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+volumes[name])
	}
	return strings.Join(parts, ", ")
}

// LogDatabaseInit logs database initialization
func LogDatabaseInit(duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DATABASE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Database initialized in %v", duration)
}

// LogSettingsLoaded logs the effective settings after loading
func LogSettingsLoaded(s settings.Settings, loadErr error) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SETTINGS")
	logging.Info("------------------------------------------------------------")
	if loadErr != nil {
		logging.Error("  Settings could not be loaded, defaults are in effect: %v", loadErr)
	}
	logging.Info("  Minimum played:   %d%%", s.PercentPlayedRequired)
	logging.Info("  Allowed folders:  %s", displayOrNone(s.AutoDeleteFolderPaths))
	logging.Info("  Move to trash:    %v", s.MoveToRecycleBin)
	logging.Info("  Media types:      video=%s audio=%s image=%s",
		enabledString(s.DeleteVideo), enabledString(s.DeleteAudio), enabledString(s.DeleteImage))
}

// LogTrashInit logs whether the trash can be used
func LogTrashInit(dir string, supported bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("TRASH")
	logging.Info("------------------------------------------------------------")
	if supported {
		logging.Info("  [OK] Trash available at %s", dir)
		return
	}
	logging.Warn("  Trash unavailable (%s)", displayOrNone(dir))
	logging.Warn("  Played files will be deleted permanently")
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}
		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes at debug level
func LogHTTPRoutes(router *mux.Router, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}
			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
		}
	}

	if logHealthChecks {
		logging.Info("  Health check logging: ON")
	} else {
		logging.Info("  Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Webhooks:      http://0.0.0.0:%s/api/playback", config.Port)
	logging.Info("    Settings:      http://0.0.0.0:%s/api/settings", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
   autodelete-after-play
   removes media files once they have been watched
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed < 0 {
		logging.Warn("Invalid duration for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
