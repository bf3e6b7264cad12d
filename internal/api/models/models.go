package models

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"1.0.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.11" doc:"Go runtime version"`
	Platform  string `json:"platform" example:"linux/arm" doc:"Build platform"`
}

type VersionResponse struct {
	Body VersionData
}

// LightState mirrors a stored light request.
type LightState struct {
	Color      string `json:"color" example:"0xff00ff00" doc:"Color as 0xAARRGGBB"`
	FlashMode  string `json:"flash_mode" example:"timed" enum:"none,timed,hardware" doc:"Flash mode"`
	FlashOnMS  uint32 `json:"flash_on_ms" example:"500" doc:"Flash on time in milliseconds"`
	FlashOffMS uint32 `json:"flash_off_ms" example:"2000" doc:"Flash off time in milliseconds"`
	Lit        bool   `json:"lit" example:"true" doc:"Whether any color channel is non-zero"`
	Brightness int    `json:"brightness" example:"149" doc:"Luma brightness derived from the color"`
}

type LightsData struct {
	Hardware     string     `json:"hardware" example:"nokiarm-696board" doc:"Detected or configured hardware identifier"`
	Lights       []string   `json:"lights" doc:"Lights available on this hardware"`
	Battery      LightState `json:"battery" doc:"Stored battery request"`
	Notification LightState `json:"notification" doc:"Stored notification request"`
	Rendered     string     `json:"rendered" example:"notifications" doc:"Request currently rendered on the LED engine, empty if none"`
}

type LightsResponse struct {
	Body LightsData
}

type SetLightRequest struct {
	Light string `path:"light" example:"notifications" doc:"Light identifier"`
	Body  struct {
		Color      string `json:"color" example:"#00ff00" doc:"Color as #RRGGBB, #AARRGGBB or 0xAARRGGBB"`
		FlashMode  string `json:"flash_mode,omitempty" example:"timed" enum:"none,timed,hardware" doc:"Flash mode, defaults to none"`
		FlashOnMS  uint32 `json:"flash_on_ms,omitempty" example:"500" doc:"Flash on time in milliseconds"`
		FlashOffMS uint32 `json:"flash_off_ms,omitempty" example:"2000" doc:"Flash off time in milliseconds"`
	}
}

type SetLightData struct {
	Light  string `json:"light" example:"notifications" doc:"Light identifier"`
	Status int    `json:"status" example:"0" doc:"0 on success, negative errno on failure"`
}

type SetLightResponse struct {
	Body SetLightData
}
