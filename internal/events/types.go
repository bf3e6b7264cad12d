package events

// Event type constants for kelindar/event.
const (
	TypeLightChanged uint32 = iota + 1
	TypeConfigReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// LightChangedEvent is published after every light update that reached the
// device layer, successful or not.
type LightChangedEvent struct {
	Light      string `json:"light" example:"notifications" doc:"Light identifier"`
	Color      string `json:"color" example:"0xff00ff00" doc:"Requested color as 0xAARRGGBB"`
	FlashMode  string `json:"flash_mode" example:"timed" doc:"Requested flash mode"`
	FlashOnMS  uint32 `json:"flash_on_ms" example:"500" doc:"Flash on time in milliseconds"`
	FlashOffMS uint32 `json:"flash_off_ms" example:"2000" doc:"Flash off time in milliseconds"`
	Brightness int    `json:"brightness" example:"149" doc:"Luma brightness derived from the color"`
	Rendered   string `json:"rendered,omitempty" example:"battery" doc:"Request currently rendered on the LED engine"`
	Status     int    `json:"status" example:"0" doc:"0 on success, negative errno on failure"`
	Error      string `json:"error,omitempty" doc:"Device error, if any"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for LightChangedEvent.
func (e LightChangedEvent) Type() uint32 { return TypeLightChanged }

// ConfigReloadedEvent is published when the configuration file was reloaded.
type ConfigReloadedEvent struct {
	Path      string `json:"path" example:"/etc/lightsd/config.toml" doc:"Reloaded configuration file"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for ConfigReloadedEvent.
func (e ConfigReloadedEvent) Type() uint32 { return TypeConfigReloaded }
