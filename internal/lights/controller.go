package lights

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/lightsd/internal/events"
)

// Light identifies one of the lights exposed by the device.
type Light string

// Light identifiers, as used by the host platform.
const (
	Backlight     Light = "backlight"
	Keyboard      Light = "keyboard"
	Battery       Light = "battery"
	Notifications Light = "notifications"
	Attention     Light = "attention"
)

// Source names the stored request that is currently rendered on the LED.
type Source string

const (
	SourceNone         Source = ""
	SourceBattery      Source = "battery"
	SourceNotification Source = "notifications"
)

// Snapshot is a copy of the arbiter state.
type Snapshot struct {
	Battery      State
	Notification State
	Rendered     Source
}

// Options configures a Controller.
type Options struct {
	Writer Writer
	Paths  Paths
	Logger *slog.Logger
	Bus    *events.Bus // optional
}

// Controller owns the lighting hardware. A single mutex serializes every
// entry point together with the device writes it triggers.
type Controller struct {
	mu           sync.Mutex
	writer       Writer
	paths        Paths
	logger       *slog.Logger
	bus          *events.Bus
	battery      State
	notification State
	rendered     Source
}

// NewController creates a Controller with both LED requests switched off.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	writer := opts.Writer
	if writer == nil {
		writer = NewSysfsWriter(logger)
	}
	return &Controller{
		writer: writer,
		paths:  opts.Paths,
		logger: logger,
		bus:    opts.Bus,
	}
}

// SetBacklight writes the luma of s to the display backlight.
func (c *Controller) SetBacklight(s State) error {
	brightness := Brightness(s)

	c.mu.Lock()
	err := c.writeInt(c.paths.Backlight, brightness)
	c.mu.Unlock()

	c.publish(Backlight, s, SourceNone, err)
	return err
}

// SetKeyboard writes the luma of s to every keyboard channel. The loop stops
// at the first failing channel; channels already written keep their value.
func (c *Controller) SetKeyboard(s State) error {
	brightness := Brightness(s)

	c.mu.Lock()
	var err error
	for i := 0; i < c.paths.KeyboardChannels; i++ {
		if err = c.writeInt(c.paths.Keyboard(i), brightness); err != nil {
			c.logger.Warn("Keyboard channel write failed", "channel", i, "error", err)
			break
		}
	}
	c.mu.Unlock()

	c.publish(Keyboard, s, SourceNone, err)
	return err
}

// SetBattery stores the battery request and re-renders the LED.
func (c *Controller) SetBattery(s State) error {
	c.mu.Lock()
	c.battery = s
	c.logger.Debug("Battery light set", "color", FormatColor(s.Color), "flash", s.FlashMode.String())
	rendered, err := c.renderArbitratedLocked()
	c.mu.Unlock()

	c.publish(Battery, s, rendered, err)
	return err
}

// SetNotification stores the notification request and re-renders the LED.
func (c *Controller) SetNotification(s State) error {
	c.mu.Lock()
	c.notification = s
	c.logger.Debug("Notification light set", "color", FormatColor(s.Color), "flash", s.FlashMode.String())
	rendered, err := c.renderArbitratedLocked()
	c.mu.Unlock()

	c.publish(Notifications, s, rendered, err)
	return err
}

// Snapshot returns the stored battery and notification requests.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Battery:      c.battery,
		Notification: c.notification,
		Rendered:     c.rendered,
	}
}

// Paths returns the device attributes this controller writes to.
func (c *Controller) Paths() Paths {
	return c.paths
}

func (c *Controller) writeString(path, value string) error {
	return c.writer.Write(path, value)
}

func (c *Controller) writeInt(path string, value int) error {
	return c.writer.Write(path, fmt.Sprintf("%d\n", value))
}

func (c *Controller) publish(light Light, s State, rendered Source, err error) {
	if c.bus == nil {
		return
	}
	ev := events.LightChangedEvent{
		Light:      string(light),
		Color:      FormatColor(s.Color),
		FlashMode:  s.FlashMode.String(),
		FlashOnMS:  s.FlashOnMS,
		FlashOffMS: s.FlashOffMS,
		Brightness: Brightness(s),
		Rendered:   string(rendered),
		Status:     Status(err),
		Timestamp:  time.Now().Format(time.RFC3339),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	c.bus.Publish(ev)
}
