// Package cmd holds the lightsd subcommands.
package cmd

import (
	"log/slog"

	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/lights"
)

// Device is an opened light controller with its handler table.
type Device struct {
	Hardware   string
	Controller *lights.Controller
	Table      *lights.Table
}

// OpenDevice builds the controller for hardware, detecting it when empty.
// Paths are moved under sysfsRoot when it is set. bus may be nil.
func OpenDevice(hardware, sysfsRoot string, paths lights.Paths, bus *events.Bus, logger *slog.Logger) *Device {
	if hardware == "" {
		hardware = lights.DetectHardware(lights.CPUInfoPath)
	}
	logger.Info("Opening lights", "hardware", hardware, "sysfs_root", sysfsRoot)

	c := lights.NewController(lights.Options{
		Paths:  paths.Rooted(sysfsRoot),
		Logger: logger,
		Bus:    bus,
	})
	return &Device{
		Hardware:   hardware,
		Controller: c,
		Table:      lights.NewTable(c, lights.KeyboardPresent(hardware), logger),
	}
}
