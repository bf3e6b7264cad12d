package events

import (
	"sync"
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	received := make(chan LightChangedEvent, 1)

	unsub := bus.Subscribe(func(e LightChangedEvent) {
		received <- e
	})
	defer unsub()

	event := LightChangedEvent{
		Light:      "notifications",
		Color:      "0x00ff0000",
		FlashMode:  "timed",
		Brightness: 76,
		Timestamp:  "2025-01-27T10:30:00Z",
	}
	bus.Publish(event)

	got := <-received
	if got != event {
		t.Errorf("got %+v, want %+v", got, event)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	received := make(chan ConfigReloadedEvent, 1)

	unsub := bus.Subscribe(func(e ConfigReloadedEvent) {
		received <- e
	})

	bus.Publish(ConfigReloadedEvent{Path: "a.toml"})
	<-received

	unsub()

	bus.Publish(ConfigReloadedEvent{Path: "b.toml"})
	select {
	case <-received:
		t.Fatal("Should not have received event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_TypeSafety(t *testing.T) {
	bus := New()

	lightReceived := make(chan bool, 1)
	configReceived := make(chan bool, 1)

	unsub1 := bus.Subscribe(func(_ LightChangedEvent) {
		lightReceived <- true
	})
	defer unsub1()

	unsub2 := bus.Subscribe(func(_ ConfigReloadedEvent) {
		configReceived <- true
	})
	defer unsub2()

	bus.Publish(LightChangedEvent{Light: "battery"})
	<-lightReceived

	select {
	case <-configReceived:
		t.Fatal("Config subscriber should NOT have received LightChangedEvent")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_UnknownHandler(t *testing.T) {
	bus := New()

	unsub := bus.Subscribe(func(string) {})
	if unsub == nil {
		t.Fatal("Subscribe returned nil unsubscribe for unknown handler")
	}
	unsub()
}

func TestBus_ThreadSafety(_ *testing.T) {
	bus := New()
	var wg sync.WaitGroup
	numGoroutines := 10
	eventsPerGoroutine := 100
	expected := numGoroutines * eventsPerGoroutine

	receivedCh := make(chan bool, expected)

	unsub := bus.Subscribe(func(_ LightChangedEvent) {
		receivedCh <- true
	})
	defer unsub()

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range eventsPerGoroutine {
				bus.Publish(LightChangedEvent{
					Light:     "backlight",
					Timestamp: time.Now().Format(time.RFC3339),
				})
			}
		}()
	}

	wg.Wait()

	for range expected {
		<-receivedCh
	}
}

func TestSubscribeToChannel_DropsWhenFull(t *testing.T) {
	bus := New()
	ch := make(chan any, 1)

	unsub := SubscribeToChannel[LightChangedEvent](bus, ch)
	defer unsub()

	bus.Publish(LightChangedEvent{Light: "battery"})
	bus.Publish(LightChangedEvent{Light: "notifications"})

	select {
	case ev := <-ch:
		if _, ok := ev.(LightChangedEvent); !ok {
			t.Fatalf("got %T, want LightChangedEvent", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}
