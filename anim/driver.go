package anim

import (
	"time"

	"github.com/rs/zerolog/log"
)

// A Driver is a ticker-backed FrameScheduler that fires frames at a fixed
// rate. All callbacks run on the goroutine that called Run; code on other
// goroutines reaches the frame loop through Call.
type Driver struct {
	interval time.Duration
	next     Handle
	pending  map[Handle]func()
	order    []Handle
	calls    chan func()
	stop     chan struct{}

	// OnFrame, when set before Run, fires at the end of every frame after
	// all callbacks have run.
	OnFrame func()
}

// NewDriver creates an instance of a Driver at the given frame rate.
func NewDriver(frameRate float64) *Driver {
	d := new(Driver)
	d.interval = time.Duration(float64(time.Second) / frameRate)
	d.pending = make(map[Handle]func())
	d.calls = make(chan func(), 64)
	d.stop = make(chan struct{})
	return d
}

// RequestFrame queues fn to run on the next frame.
func (d *Driver) RequestFrame(fn func()) Handle {
	d.next++
	d.pending[d.next] = fn
	d.order = append(d.order, d.next)
	return d.next
}

// CancelFrame stops a pending callback from firing, even when the cancel
// happens mid-frame and the callback is later in the same frame's batch.
func (d *Driver) CancelFrame(h Handle) {
	delete(d.pending, h)
}

// After runs fn on the frame goroutine once the delay has elapsed.
func (d *Driver) After(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		d.Call(fn)
	})
}

// Call marshals fn onto the frame goroutine, where it runs before the next
// frame's callbacks. Safe to call from any goroutine.
func (d *Driver) Call(fn func()) {
	d.calls <- fn
}

// Tick runs a single frame: pending cross-goroutine calls first, then every
// callback queued for this frame in request order, then the OnFrame hook.
// Callbacks requested while ticking run on the following frame.
func (d *Driver) Tick() {
drain:
	for {
		select {
		case fn := <-d.calls:
			fn()
		default:
			break drain
		}
	}

	batch := d.order
	d.order = nil
	for _, h := range batch {
		fn, ok := d.pending[h]
		if !ok {
			continue
		}
		delete(d.pending, h)
		fn()
	}

	if d.OnFrame != nil {
		d.OnFrame()
	}
}

// Run fires frames continuously until Stop is called.
func (d *Driver) Run() {
	log.Info().Dur("interval", d.interval).Msg("frame driver running")
	frameTimer := time.NewTicker(d.interval)
	defer frameTimer.Stop()
	for {
		select {
		case <-frameTimer.C:
			d.Tick()
		case fn := <-d.calls:
			fn()
		case <-d.stop:
			return
		}
	}
}

// Stop terminates a running driver.
func (d *Driver) Stop() {
	close(d.stop)
}
