package lights

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode"
)

const (
	// CPUInfoPath carries the "Hardware" line the board is identified by.
	CPUInfoPath = "/proc/cpuinfo"

	unknownHardware = "unknown"

	// noKeyboardHardware is the N9 board, which ships without a keyboard.
	noKeyboardHardware = "nokiarm-696board"
)

// Handler applies one request to one light.
type Handler func(State) error

// Table maps light identifiers to their handlers. It is fixed at
// construction time.
type Table struct {
	handlers map[Light]Handler
	order    []Light
}

// NewTable builds the handler table for c. The keyboard light is only
// registered when keyboardPresent is true.
func NewTable(c *Controller, keyboardPresent bool, logger *slog.Logger) *Table {
	if logger == nil {
		logger = slog.Default()
	}

	t := &Table{handlers: make(map[Light]Handler)}
	t.add(Backlight, c.SetBacklight)
	if keyboardPresent {
		t.add(Keyboard, c.SetKeyboard)
	} else {
		logger.Warn("Keyboard light not present on this hardware")
	}
	t.add(Battery, c.SetBattery)
	t.add(Notifications, c.SetNotification)
	t.add(Attention, c.SetAttention)

	logger.Info("Light table ready", "lights", t.order)
	return t
}

func (t *Table) add(light Light, h Handler) {
	t.handlers[light] = h
	t.order = append(t.order, light)
}

// Open returns the handler for name. Unknown or absent lights fail with an
// error whose Status is -EINVAL.
func (t *Table) Open(name string) (Handler, error) {
	h, ok := t.handlers[Light(name)]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotSupported)
	}
	return h, nil
}

// Set opens name and applies s in one step.
func (t *Table) Set(name string, s State) error {
	h, err := t.Open(name)
	if err != nil {
		return err
	}
	return h(s)
}

// Available returns the registered lights in registration order.
func (t *Table) Available() []Light {
	out := make([]Light, len(t.order))
	copy(out, t.order)
	return out
}

// KeyboardPresent reports whether the given hardware identifier has a
// keyboard backlight.
func KeyboardPresent(hardware string) bool {
	return hardware != noKeyboardHardware
}

// DetectHardware derives the hardware identifier from the "Hardware" line
// of a cpuinfo file, normally CPUInfoPath. The value is lower-cased and
// stripped of whitespace, so "Nokia RM-696 board" becomes
// "nokiarm-696board". It returns "unknown" when the file or the line is
// missing.
func DetectHardware(cpuinfoPath string) string {
	f, err := os.Open(cpuinfoPath)
	if err != nil {
		return unknownHardware
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Hardware" {
			continue
		}
		hw := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return unicode.ToLower(r)
		}, value)
		if hw != "" {
			return hw
		}
	}
	return unknownHardware
}
