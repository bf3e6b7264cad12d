package lights

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Writer writes one value to one device attribute.
type Writer interface {
	Write(path, value string) error
}

// DeviceError reports a failed open or write on a device attribute.
type DeviceError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the wrapped error as is when it already names the
// operation and path, as the errors from os do.
func (e *DeviceError) Error() string {
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ErrNotSupported is returned for lights this device does not expose.
var ErrNotSupported = fmt.Errorf("light not supported: %w", unix.EINVAL)

// Status converts an error from this package into the negative errno the
// host platform expects. nil maps to 0 and errors without an errno to -EIO.
func Status(err error) int {
	if err == nil {
		return 0
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return -int(errno)
	}
	return -int(unix.EIO)
}

// sysfs implements Writer on top of sysfs attributes. Every call opens the
// file, issues a single write and closes it again. O_TRUNC matches what a
// shell redirect does and keeps plain files usable as fake attributes.
type sysfs struct {
	logger *slog.Logger
}

// NewSysfsWriter returns a Writer for real sysfs attributes.
func NewSysfsWriter(logger *slog.Logger) Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &sysfs{logger: logger}
}

func (s *sysfs) Write(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		s.logger.Error("Failed to open device file", "path", path, "error", err)
		return &DeviceError{Op: "open", Path: path, Err: err}
	}
	_, err = f.WriteString(value)
	f.Close()
	if err != nil {
		return &DeviceError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Paths holds the sysfs attributes driven by the Controller.
type Paths struct {
	Backlight        string `toml:"backlight"`
	KeyboardTemplate string `toml:"keyboard_template"`
	KeyboardChannels int    `toml:"keyboard_channels"`
	LEDBrightness    string `toml:"led_brightness"`
	EngineMode       string `toml:"engine_mode"`
	EngineLoad       string `toml:"engine_load"`
}

// DefaultPaths returns the attribute layout of the N9/N950 kernel.
func DefaultPaths() Paths {
	return Paths{
		Backlight:        "/sys/devices/omapdss/display0/backlight/display0/brightness",
		KeyboardTemplate: "/sys/class/leds/lp5523:channel%d/brightness",
		KeyboardChannels: 6,
		LEDBrightness:    "/sys/devices/platform/i2c_omap.2/i2c-2/2-0032/leds/lp5521:channel0/brightness",
		EngineMode:       "/sys/devices/platform/i2c_omap.2/i2c-2/2-0032/engine1_mode",
		EngineLoad:       "/sys/devices/platform/i2c_omap.2/i2c-2/2-0032/engine1_load",
	}
}

// Keyboard returns the brightness attribute of keyboard channel i.
func (p Paths) Keyboard(i int) string {
	return fmt.Sprintf(p.KeyboardTemplate, i)
}

// Rooted returns a copy of p with every path moved under root.
// An empty root returns p unchanged.
func (p Paths) Rooted(root string) Paths {
	if root == "" {
		return p
	}
	p.Backlight = filepath.Join(root, p.Backlight)
	p.KeyboardTemplate = filepath.Join(root, p.KeyboardTemplate)
	p.LEDBrightness = filepath.Join(root, p.LEDBrightness)
	p.EngineMode = filepath.Join(root, p.EngineMode)
	p.EngineLoad = filepath.Join(root, p.EngineLoad)
	return p
}
