package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Barinzaya/remote-wheel/internal/config"
	"github.com/Barinzaya/remote-wheel/internal/oscwire"
	"github.com/Barinzaya/remote-wheel/internal/vmc"
)

func axisMappingForTest() vmc.AxisMapping {
	return vmc.AxisMapping{
		Blendshapes: []vmc.BlendshapeTarget{{Name: "throttle", Range: vmc.Range{A: 0, B: 100}}},
	}
}

func buttonMappingForTest() vmc.ButtonMapping {
	return vmc.ButtonMapping{
		OnPress: []vmc.ButtonOneShot{{Name: "horn", Value: 100}},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Input.Address = "127.0.0.1:0"
	cfg.Output.Address = "127.0.0.1:0"

	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { e.Close() })
	return e
}

func TestHandleDatagramAppliesAndCountsStats(t *testing.T) {
	e := newTestEngine(t)

	msg, err := oscwire.EncodeMessage(nil, "/VMC/Ext/OK", []interface{}{int32(1)})
	if err != nil {
		t.Fatal(err)
	}

	e.handleDatagram(msg)

	if e.stats.received != 1 {
		t.Errorf("received = %d, want 1", e.stats.received)
	}
	if !e.tracking.Tracking {
		t.Error("expected Tracking flag to be set")
	}
}

func TestHandleEventAxisUpdatesBlendshape(t *testing.T) {
	e := newTestEngine(t)
	e.axisMap["throttle"] = axisMappingForTest()

	e.handleEvent(Event{Axis: &AxisUpdate{ID: "throttle", Value: 1}})

	bs := e.tracking.Blendshapes()
	if len(bs) != 1 || bs[0].Value != 1 {
		t.Errorf("blendshapes = %+v", bs)
	}
}

func TestHandleEventButtonFiresOneShotOnlyOnTransition(t *testing.T) {
	e := newTestEngine(t)
	e.buttonMap["horn"] = buttonMappingForTest()

	e.handleEvent(Event{Button: &ButtonUpdate{ID: "horn", Pressed: true}})
	if len(e.tracking.Blendshapes()) != 1 {
		t.Fatalf("expected the one-shot to fire on first press, got %+v", e.tracking.Blendshapes())
	}

	e.tracking.UpdateBlendshape("horn", 0)
	e.handleEvent(Event{Button: &ButtonUpdate{ID: "horn", Pressed: true}})
	if bs := e.tracking.Blendshapes(); len(bs) != 1 || bs[0].Value != 0 {
		t.Errorf("expected a repeated press not to re-fire the one-shot, got %+v", bs)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	e := newTestEngine(t)
	events := make(chan Event)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, events) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
