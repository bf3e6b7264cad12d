package lights

// SetAttention accepts attention requests without touching the hardware.
// The LED is shared with battery and notifications, so attention is
// registered but left inert.
func (c *Controller) SetAttention(s State) error {
	c.logger.Debug("Attention light not driven (no-op)",
		"color", s.Color,
		"flash", s.FlashMode.String())
	return nil
}
