package lights

// Engine mode values understood by the LP5521 driver.
const (
	engineLoad     = "load\n"
	engineRun      = "run\n"
	engineDisabled = "disabled\n"
)

// renderArbitratedLocked picks the request shown on the LED. A lit battery
// request with a timed flash always wins; anything else shows the
// notification request as it is. Callers hold c.mu.
func (c *Controller) renderArbitratedLocked() (Source, error) {
	if IsLit(c.battery) && c.battery.FlashMode == FlashTimed {
		c.rendered = SourceBattery
		return SourceBattery, c.renderLEDLocked(c.battery)
	}
	c.rendered = SourceNotification
	return SourceNotification, c.renderLEDLocked(c.notification)
}

// renderLEDLocked drives the LED for s. Timed flashes are programmed into
// engine 1 with a load, data, run sequence; everything else disables the
// engine and sets a solid brightness. The first failing write ends the
// sequence and earlier writes are left in place.
func (c *Controller) renderLEDLocked(s State) error {
	if onMS, offMS, ok := timedFlash(s); ok {
		pattern := FlashPattern(onMS, offMS)
		c.logger.Debug("Loading blink engine", "color", s.Color, "on_ms", onMS, "off_ms", offMS, "pattern", pattern)

		if err := c.writeInt(c.paths.LEDBrightness, 0); err != nil {
			return err
		}
		if err := c.writeString(c.paths.EngineMode, engineLoad); err != nil {
			return err
		}
		if err := c.writeString(c.paths.EngineLoad, pattern+"\n"); err != nil {
			return err
		}
		return c.writeString(c.paths.EngineMode, engineRun)
	}

	if err := c.writeString(c.paths.EngineMode, engineDisabled); err != nil {
		return err
	}
	return c.writeInt(c.paths.LEDBrightness, Brightness(s))
}
