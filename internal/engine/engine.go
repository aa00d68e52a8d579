// Package engine runs the single-threaded cooperative loop that owns the
// pose, the device map and the tracking data: it decodes incoming VMC
// datagrams, fuses configured devices onto the pose, re-encodes and sends
// the result, folds semantic axis/button events into the tracking state,
// and emits a periodic summary report.
package engine

import (
	"context"
	"log"
	"net"
	"time"

	"github.com/Barinzaya/remote-wheel/internal/avatar"
	"github.com/Barinzaya/remote-wheel/internal/config"
	"github.com/Barinzaya/remote-wheel/internal/device"
	"github.com/Barinzaya/remote-wheel/internal/oscwire"
	"github.com/Barinzaya/remote-wheel/internal/vmc"
)

// AxisUpdate is one semantic axis event: v is expected in [0, 1].
type AxisUpdate struct {
	ID    string
	Value float32
}

// ButtonUpdate is one semantic button event.
type ButtonUpdate struct {
	ID      string
	Pressed bool
}

// Event is a single semantic event received from the input broadcast.
// Exactly one of Axis or Button is set.
type Event struct {
	Axis   *AxisUpdate
	Button *ButtonUpdate
}

type deviceRegistry map[string]device.Device

func (r deviceRegistry) Device(name string) (device.Device, bool) {
	d, ok := r[name]
	return d, ok
}

// Engine is the runtime loop built from a loaded configuration.
type Engine struct {
	conn    net.PacketConn
	outAddr net.Addr

	devices   []avatar.Entry
	registry  deviceRegistry
	axisMap   map[string]vmc.AxisMapping
	buttonMap map[string]vmc.ButtonMapping
	pressed   map[string]bool

	tracking *vmc.TrackingData

	reportInterval time.Duration
	warnedOversize bool

	stats stats
}

type stats struct {
	received        int
	min, max, total time.Duration
}

func (s *stats) record(d time.Duration) {
	if s.received == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.total += d
	s.received++
}

func (s *stats) reset() { *s = stats{} }

func (s stats) avg() time.Duration {
	if s.received == 0 {
		return 0
	}
	return s.total / time.Duration(s.received)
}

// New builds an Engine from cfg: it binds the input UDP socket, resolves
// the output address, and constructs the configured devices and mappings.
func New(cfg *config.Config) (*Engine, error) {
	conn, err := net.ListenPacket("udp", cfg.Input.Address)
	if err != nil {
		return nil, err
	}

	outAddr, err := net.ResolveUDPAddr("udp", cfg.Output.Address)
	if err != nil {
		conn.Close()
		return nil, err
	}

	entries, byName, err := buildDevices(cfg.Device)
	if err != nil {
		conn.Close()
		return nil, err
	}

	interval := time.Duration(0)
	if cfg.ReportInterval > 0 {
		interval = time.Duration(cfg.ReportInterval * float64(time.Second))
	}

	return &Engine{
		conn:           conn,
		outAddr:        outAddr,
		devices:        entries,
		registry:       byName,
		axisMap:        buildAxisMappings(cfg.Mapping.Axis),
		buttonMap:      buildButtonMappings(cfg.Mapping.Button),
		pressed:        make(map[string]bool),
		tracking:       vmc.New(),
		reportInterval: interval,
	}, nil
}

// Close releases the engine's UDP socket.
func (e *Engine) Close() error {
	return e.conn.Close()
}

// Run drives the engine's cooperative loop until ctx is cancelled or
// events is closed. UDP datagrams take priority over report ticks, which
// take priority over semantic events, so a burst of events cannot starve
// the VMC pump.
func (e *Engine) Run(ctx context.Context, events <-chan Event) error {
	datagrams := make(chan []byte, 16)
	readErrs := make(chan error, 1)
	go e.readLoop(ctx, datagrams, readErrs)

	var tickC <-chan time.Time
	if e.reportInterval > 0 {
		ticker := time.NewTicker(e.reportInterval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	for {
		select {
		case buf := <-datagrams:
			e.handleDatagram(buf)
			continue
		default:
		}

		select {
		case <-tickC:
			e.emitReport()
			continue
		default:
		}

		select {
		case buf := <-datagrams:
			e.handleDatagram(buf)
		case <-tickC:
			e.emitReport()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.handleEvent(ev)
		case err := <-readErrs:
			return err
		case <-ctx.Done():
			return nil
		}
	}
}

func (e *Engine) readLoop(ctx context.Context, out chan<- []byte, errs chan<- error) {
	buf := make([]byte, 16*1024)
	for {
		if ctx.Err() != nil {
			return
		}

		n, _, err := e.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errs <- err
			return
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		select {
		case out <- datagram:
		case <-ctx.Done():
			return
		}
	}
}

func (e *Engine) handleDatagram(buf []byte) {
	start := time.Now()

	p, err := oscwire.DecodePacket(buf)
	if err != nil {
		log.Printf("engine: decode error: %v", err)
		return
	}
	e.tracking.ApplyPacket(p)

	avatar.Apply(e.tracking.Pose, e.devices)

	out, err := e.tracking.Encode(nil)
	if err != nil {
		log.Printf("engine: encode error: %v", err)
		return
	}

	if len(out) > vmc.MTUWarningSize && !e.warnedOversize {
		e.warnedOversize = true
		log.Printf("engine: encoded packet is %d bytes, over the typical UDP MTU of %d", len(out), vmc.MTUWarningSize)
	}

	if _, err := e.conn.WriteTo(out, e.outAddr); err != nil {
		log.Printf("engine: send error: %v", err)
	}

	e.stats.record(time.Since(start))
}

func (e *Engine) handleEvent(ev Event) {
	switch {
	case ev.Axis != nil:
		if m, ok := e.axisMap[ev.Axis.ID]; ok {
			e.tracking.UpdateAxis(m, ev.Axis.Value, e.registry)
		}

	case ev.Button != nil:
		if m, ok := e.buttonMap[ev.Button.ID]; ok {
			prev := e.pressed[ev.Button.ID]
			transitioned := prev != ev.Button.Pressed
			e.pressed[ev.Button.ID] = ev.Button.Pressed
			e.tracking.UpdateButton(m, ev.Button.Pressed, transitioned, e.registry)
		}
	}
}

func (e *Engine) emitReport() {
	log.Printf("engine: %d packet(s) received, processing time min=%s avg=%s max=%s",
		e.stats.received, e.stats.min, e.stats.avg(), e.stats.max)
	e.stats.reset()
}
