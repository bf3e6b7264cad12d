package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/lightsd/cmd"
	"github.com/smazurov/lightsd/internal/api"
	"github.com/smazurov/lightsd/internal/config"
	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/logging"
	"github.com/smazurov/lightsd/internal/metrics"
	"github.com/smazurov/lightsd/internal/metrics/exporters"
	"github.com/smazurov/lightsd/internal/systemd"
	"github.com/smazurov/lightsd/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Address to listen on" short:"p" default:":8091" toml:"server.port" env:"SERVER_PORT"`

	// Device settings
	Hardware  string `help:"Hardware identifier, detected from the device tree when empty" toml:"device.hardware" env:"HARDWARE"`
	SysfsRoot string `help:"Prefix for every sysfs path (testing on a fake tree)" toml:"device.sysfs_root" env:"SYSFS_ROOT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username, auth is off when empty" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Metrics settings
	MetricsEnabled bool `help:"Serve Prometheus metrics at /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingLights string `help:"Lights logging level" toml:"logging.modules.lights" env:"LOGGING_LIGHTS"`
	LoggingAPI    string `help:"API logging level" toml:"logging.modules.api" env:"LOGGING_API"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Flags given on the command line win over env and the config file.
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		file, fileErr := config.LoadFile(opts.Config)
		if fileErr != nil {
			slog.Warn("Failed to load config file sections", "error", fileErr)
		}

		loggingConfig := file.Logging
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		if loggingConfig.Modules == nil {
			loggingConfig.Modules = make(map[string]string)
		}
		if opts.LoggingLights != "" {
			loggingConfig.Modules["lights"] = opts.LoggingLights
		}
		if opts.LoggingAPI != "" {
			loggingConfig.Modules["api"] = opts.LoggingAPI
		}
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")
		logger.Info("lightsd starting", "version", version.String())

		eventBus := events.New()
		notifier := systemd.NewNotifier(logger)

		dev := cmd.OpenDevice(opts.Hardware, opts.SysfsRoot, file.Paths, eventBus, logging.GetLogger("lights"))

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Hardware:     dev.Hardware,
			Table:        dev.Table,
			Controller:   dev.Controller,
			EventBus:     eventBus,
		}

		var unsubMetrics func()
		if opts.MetricsEnabled {
			unsubMetrics = metrics.Subscribe(eventBus)
			apiOpts.MetricsHandler = exporters.HTTPHandler(logging.GetLogger("http"))
		}

		server := api.NewServer(apiOpts)

		configLogger := logging.GetLogger("config")
		watcher := config.NewConfigWatcher(opts.Config, config.LoadFile, configLogger)
		watcher.OnReload(func(f config.File) {
			notifier.Reloading()
			logging.ApplyLevels(f.Logging)
			eventBus.Publish(events.ConfigReloadedEvent{
				Path:      opts.Config,
				Timestamp: time.Now().Format(time.RFC3339),
			})
			notifier.Ready()
		})

		hooks.OnStart(func() {
			if startErr := watcher.Start(); startErr != nil {
				configLogger.Warn("Config watcher not started", "path", opts.Config, "error", startErr)
			}

			notifier.Ready()
			notifier.Status("serving on " + opts.Port)

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			notifier.Stopping()

			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopErr := watcher.Stop(); stopErr != nil {
				logger.Warn("Error stopping config watcher", "error", stopErr)
			}
			if unsubMetrics != nil {
				unsubMetrics()
			}
		})
	})

	cli.Root().Version = version.String()
	cli.Root().AddCommand(cmd.CreateSetCmd())
	cli.Root().AddCommand(cmd.CreateEncodeCmd())

	cli.Run()
}
