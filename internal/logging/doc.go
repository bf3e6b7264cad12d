// Package logging provides structured logging with per-module log levels.
//
// Loggers are plain *slog.Logger values tagged with a "module" attribute.
// Records are written to stdout and, when journald is running, to the
// systemd journal under the "lightsd" identifier.
//
// Initialize once at startup, then fetch loggers by module:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",
//		Format:  "text",
//		Modules: map[string]string{"lights": "debug"},
//	})
//	logger := logging.GetLogger("lights")
//	logger.Info("Light table ready", "lights", available)
//
// Levels can be changed later without rebuilding handlers, either for all
// modules with ApplyLevels (used on config reload) or for one module with
// SetModuleLevel.
//
// Viewing logs on the device:
//
//	journalctl -t lightsd -f
//	journalctl -t lightsd MODULE=lights LIGHT=battery
package logging
