// Package metrics provides Prometheus metrics for light updates.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/smazurov/lightsd/internal/events"
)

// Result label values for updates_total.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	lightUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lightsd",
		Subsystem: "lights",
		Name:      "updates_total",
		Help:      "Light updates that reached the device layer",
	}, []string{"light", "result"})

	lightBrightness = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lightsd",
		Subsystem: "lights",
		Name:      "brightness",
		Help:      "Last requested brightness per light",
	}, []string{"light"})

	ledRendered = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lightsd",
		Subsystem: "led",
		Name:      "rendered",
		Help:      "1 for the request currently rendered on the LED engine",
	}, []string{"source"})

	configReloads = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lightsd",
		Subsystem: "config",
		Name:      "reloads_total",
		Help:      "Configuration file reloads",
	})
)

var ledSources = []string{"battery", "notifications"}

// ObserveLight records a light update.
func ObserveLight(e events.LightChangedEvent) {
	result := ResultOK
	if e.Status != 0 {
		result = ResultError
	}
	lightUpdates.WithLabelValues(e.Light, result).Inc()
	lightBrightness.WithLabelValues(e.Light).Set(float64(e.Brightness))

	if e.Light != "battery" && e.Light != "notifications" {
		return
	}
	for _, src := range ledSources {
		v := 0.0
		if src == e.Rendered {
			v = 1
		}
		ledRendered.WithLabelValues(src).Set(v)
	}
}

// ObserveConfigReload records a configuration reload.
func ObserveConfigReload(events.ConfigReloadedEvent) {
	configReloads.Inc()
}

// Subscribe feeds bus events into the metrics. The returned function
// removes the subscriptions.
func Subscribe(bus *events.Bus) func() {
	unsubLight := bus.Subscribe(ObserveLight)
	unsubConfig := bus.Subscribe(ObserveConfigReload)
	return func() {
		unsubLight()
		unsubConfig()
	}
}
