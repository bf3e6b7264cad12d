package lights

import (
	"errors"
	"log/slog"
	"os"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/smazurov/lightsd/internal/events"
)

type write struct {
	path  string
	value string
}

// recordingWriter records every write and fails on configured paths.
type recordingWriter struct {
	mu     sync.Mutex
	writes []write
	fail   map[string]error
}

func (w *recordingWriter) Write(path, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err, ok := w.fail[path]; ok {
		return &DeviceError{Op: "write", Path: path, Err: err}
	}
	w.writes = append(w.writes, write{path, value})
	return nil
}

func (w *recordingWriter) reset() {
	w.mu.Lock()
	w.writes = nil
	w.mu.Unlock()
}

func testPaths() Paths {
	return Paths{
		Backlight:        "/lcd",
		KeyboardTemplate: "/kbd%d",
		KeyboardChannels: 6,
		LEDBrightness:    "/led",
		EngineMode:       "/mode",
		EngineLoad:       "/load",
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestController(w Writer) *Controller {
	return NewController(Options{Writer: w, Paths: testPaths(), Logger: newTestLogger()})
}

func timedState(color, on, off uint32) State {
	return State{Color: color, FlashMode: FlashTimed, FlashOnMS: on, FlashOffMS: off}
}

func patternWrites(on, off uint32) []write {
	return []write{
		{"/led", "0\n"},
		{"/mode", "load\n"},
		{"/load", FlashPattern(on, off) + "\n"},
		{"/mode", "run\n"},
	}
}

func solidWrites(brightness string) []write {
	return []write{
		{"/mode", "disabled\n"},
		{"/led", brightness + "\n"},
	}
}

func TestController_Backlight(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	if err := c.SetBacklight(State{Color: 0xffffffff}); err != nil {
		t.Fatalf("SetBacklight() error: %v", err)
	}

	want := []write{{"/lcd", "255\n"}}
	if !reflect.DeepEqual(w.writes, want) {
		t.Errorf("writes = %v, want %v", w.writes, want)
	}
}

func TestController_Keyboard(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	if err := c.SetKeyboard(State{Color: 0x00ff00}); err != nil {
		t.Fatalf("SetKeyboard() error: %v", err)
	}

	if len(w.writes) != 6 {
		t.Fatalf("got %d writes, want 6", len(w.writes))
	}
	for i, got := range w.writes {
		want := write{testPaths().Keyboard(i), "149\n"}
		if got != want {
			t.Errorf("write %d = %v, want %v", i, got, want)
		}
	}
}

func TestController_KeyboardStopsAtFailingChannel(t *testing.T) {
	w := &recordingWriter{fail: map[string]error{"/kbd2": unix.EACCES}}
	c := newTestController(w)

	err := c.SetKeyboard(State{Color: 0xffffff})
	if err == nil {
		t.Fatal("SetKeyboard() should fail when channel 2 fails")
	}
	if got := Status(err); got != -int(unix.EACCES) {
		t.Errorf("Status = %d, want %d", got, -int(unix.EACCES))
	}

	want := []write{{"/kbd0", "255\n"}, {"/kbd1", "255\n"}}
	if !reflect.DeepEqual(w.writes, want) {
		t.Errorf("writes = %v, want %v", w.writes, want)
	}
}

func TestController_NotificationSolid(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	if err := c.SetNotification(State{Color: 0xff0000}); err != nil {
		t.Fatalf("SetNotification() error: %v", err)
	}

	if !reflect.DeepEqual(w.writes, solidWrites("76")) {
		t.Errorf("writes = %v, want %v", w.writes, solidWrites("76"))
	}
}

func TestController_NotificationTimed(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	if err := c.SetNotification(timedState(0x0000ff, 500, 2000)); err != nil {
		t.Fatalf("SetNotification() error: %v", err)
	}

	if !reflect.DeepEqual(w.writes, patternWrites(500, 2000)) {
		t.Errorf("writes = %v, want %v", w.writes, patternWrites(500, 2000))
	}
}

func TestController_FlashWithoutDurationsIsSolid(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{"hardware", State{Color: 0xffffff, FlashMode: FlashHardware, FlashOnMS: 500, FlashOffMS: 500}},
		{"timed zero on", timedState(0xffffff, 0, 500)},
		{"timed zero off", timedState(0xffffff, 500, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recordingWriter{}
			c := newTestController(w)

			if err := c.SetNotification(tt.state); err != nil {
				t.Fatalf("SetNotification() error: %v", err)
			}
			if !reflect.DeepEqual(w.writes, solidWrites("255")) {
				t.Errorf("writes = %v, want %v", w.writes, solidWrites("255"))
			}
		})
	}
}

func TestController_BatteryTimedPreemptsNotification(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	if err := c.SetNotification(State{Color: 0xff0000}); err != nil {
		t.Fatal(err)
	}
	w.reset()

	if err := c.SetBattery(timedState(0x00ff00, 67, 134)); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(w.writes, patternWrites(67, 134)) {
		t.Errorf("writes = %v, want battery pattern %v", w.writes, patternWrites(67, 134))
	}

	// Notification updates keep rendering the battery pattern.
	for _, n := range []State{{Color: 0x0000ff}, timedState(0xffffff, 1000, 1000), {}} {
		w.reset()
		if err := c.SetNotification(n); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(w.writes, patternWrites(67, 134)) {
			t.Errorf("after notification %+v writes = %v, want battery pattern", n, w.writes)
		}
	}

	if got := c.Snapshot().Rendered; got != SourceBattery {
		t.Errorf("Rendered = %q, want %q", got, SourceBattery)
	}
}

func TestController_BatteryNotTimedFallsBackToNotification(t *testing.T) {
	tests := []struct {
		name    string
		battery State
	}{
		{"battery off", State{}},
		{"battery solid", State{Color: 0x00ff00}},
		{"battery timed but dark", timedState(0xff000000, 500, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recordingWriter{}
			c := newTestController(w)

			if err := c.SetNotification(timedState(0xff0000, 500, 2000)); err != nil {
				t.Fatal(err)
			}
			w.reset()

			if err := c.SetBattery(tt.battery); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(w.writes, patternWrites(500, 2000)) {
				t.Errorf("writes = %v, want notification pattern %v", w.writes, patternWrites(500, 2000))
			}

			snap := c.Snapshot()
			if snap.Rendered != SourceNotification {
				t.Errorf("Rendered = %q, want %q", snap.Rendered, SourceNotification)
			}
			if snap.Battery != tt.battery {
				t.Errorf("Battery = %+v, want %+v", snap.Battery, tt.battery)
			}
		})
	}
}

func TestController_BatteryReleasedRestoresNotification(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	_ = c.SetNotification(State{Color: 0x00ff00})
	_ = c.SetBattery(timedState(0xff0000, 500, 500))
	w.reset()

	if err := c.SetBattery(State{}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(w.writes, solidWrites("149")) {
		t.Errorf("writes = %v, want %v", w.writes, solidWrites("149"))
	}
}

func TestController_EngineSequenceAbortsOnFailure(t *testing.T) {
	w := &recordingWriter{fail: map[string]error{"/load": unix.ENOENT}}
	c := newTestController(w)

	err := c.SetNotification(timedState(0xffffff, 500, 500))
	if !errors.Is(err, unix.ENOENT) {
		t.Fatalf("SetNotification() error = %v, want ENOENT", err)
	}
	if got := Status(err); got != -int(unix.ENOENT) {
		t.Errorf("Status = %d, want %d", got, -int(unix.ENOENT))
	}

	// The run write never happens and earlier writes are not undone.
	want := []write{{"/led", "0\n"}, {"/mode", "load\n"}}
	if !reflect.DeepEqual(w.writes, want) {
		t.Errorf("writes = %v, want %v", w.writes, want)
	}

	// The request is still stored.
	if got := c.Snapshot().Notification; got != timedState(0xffffff, 500, 500) {
		t.Errorf("Notification = %+v, not stored", got)
	}
}

func TestController_Attention(t *testing.T) {
	w := &recordingWriter{}
	c := newTestController(w)

	for _, s := range []State{{}, {Color: 0xffffff}, timedState(0xff0000, 100, 100), {FlashMode: FlashHardware, FlashOnMS: 10}} {
		if err := c.SetAttention(s); err != nil {
			t.Errorf("SetAttention(%+v) = %v, want nil", s, err)
		}
	}
	if len(w.writes) != 0 {
		t.Errorf("SetAttention wrote %v, want no writes", w.writes)
	}
	if snap := c.Snapshot(); snap != (Snapshot{}) {
		t.Errorf("SetAttention changed arbiter state: %+v", snap)
	}
}

func TestController_PublishesEvents(t *testing.T) {
	bus := events.New()
	received := make(chan events.LightChangedEvent, 4)
	unsub := bus.Subscribe(func(e events.LightChangedEvent) {
		received <- e
	})
	defer unsub()

	w := &recordingWriter{fail: map[string]error{"/lcd": unix.EROFS}}
	c := NewController(Options{Writer: w, Paths: testPaths(), Logger: newTestLogger(), Bus: bus})

	_ = c.SetBacklight(State{Color: 0xffffff})

	select {
	case e := <-received:
		if e.Light != string(Backlight) {
			t.Errorf("Light = %q, want %q", e.Light, Backlight)
		}
		if e.Status != -int(unix.EROFS) {
			t.Errorf("Status = %d, want %d", e.Status, -int(unix.EROFS))
		}
		if e.Brightness != 255 || e.Color != "0x00ffffff" {
			t.Errorf("unexpected event %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for LightChangedEvent")
	}
}

// overlapWriter fails the test if two writes are ever in flight at once.
type overlapWriter struct {
	t        *testing.T
	inFlight atomic.Int32
	count    atomic.Int32
}

func (w *overlapWriter) Write(_, _ string) error {
	if w.inFlight.Add(1) != 1 {
		w.t.Error("concurrent device writes detected")
	}
	time.Sleep(10 * time.Microsecond)
	w.count.Add(1)
	w.inFlight.Add(-1)
	return nil
}

func TestController_SerializesEntryPoints(t *testing.T) {
	w := &overlapWriter{t: t}
	c := newTestController(w)
	if err := c.SetBattery(timedState(0xff0000, 500, 500)); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(4)
		go func() { defer wg.Done(); _ = c.SetBacklight(State{Color: uint32(i)}) }()
		go func() { defer wg.Done(); _ = c.SetKeyboard(State{Color: uint32(i)}) }()
		go func() { defer wg.Done(); _ = c.SetBattery(timedState(0xff0000, 500, 500)) }()
		go func() { defer wg.Done(); _ = c.SetNotification(State{Color: uint32(i)}) }()
	}
	wg.Wait()

	// backlight 1 + keyboard 6 + battery 4 + notification 4 (battery wins)
	if got, want := w.count.Load(), int32(4+20*(1+6+4+4)); got != want {
		t.Errorf("write count = %d, want %d", got, want)
	}
}
