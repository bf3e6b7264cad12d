package exporters

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smazurov/lightsd/internal/events"
	"github.com/smazurov/lightsd/internal/metrics"
)

func TestHTTPHandler(t *testing.T) {
	metrics.ObserveLight(events.LightChangedEvent{Light: "keyboard", Brightness: 200})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	HTTPHandler(slog.Default()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{
		`lightsd_lights_updates_total{light="keyboard",result="ok"}`,
		`lightsd_lights_brightness{light="keyboard"} 200`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in response", want)
		}
	}
}
